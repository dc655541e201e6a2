package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks the server-side lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// OrderItem is a line of a placed order with the product snapshot the server
// captured at placement time.
type OrderItem struct {
	ID                string            `json:"id"`
	ProductID         string            `json:"product_id"`
	ProductName       string            `json:"product_name"`
	VariantAttributes map[string]string `json:"variant_attributes,omitempty"`
	SKU               string            `json:"sku"`
	Quantity          int               `json:"quantity"`
	UnitPrice         decimal.Decimal   `json:"unit_price"`
	TotalPrice        decimal.Decimal   `json:"total_price"`
	Image             string            `json:"image,omitempty"`
}

// Order is a server-owned order; the client fetches it per view and never
// caches it in the long-lived store.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress Address         `json:"shipping_address"`
	Status          OrderStatus     `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CancelledReason string          `json:"cancelled_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
