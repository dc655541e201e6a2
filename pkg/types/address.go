package types

// AddressType labels the kind of shipping address.
type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

// Address is a server-owned shipping address; the client holds transient
// copies fetched per view.
type Address struct {
	ID           string      `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Phone        string      `json:"phone"`
	AddressLine1 string      `json:"address_line1"`
	AddressLine2 string      `json:"address_line2,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Country      string      `json:"country"`
	ZipCode      string      `json:"zip_code"`
	IsDefault    bool        `json:"is_default"`
	AddressType  AddressType `json:"address_type,omitempty"`
}
