package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/electrofy/storefront-client/internal/addresses"
	"github.com/electrofy/storefront-client/internal/catalog"
	"github.com/electrofy/storefront-client/internal/checkout"
	"github.com/electrofy/storefront-client/internal/gateway"
	"github.com/electrofy/storefront-client/internal/orders"
	"github.com/electrofy/storefront-client/internal/store"
	"github.com/electrofy/storefront-client/pkg/config"
	"github.com/electrofy/storefront-client/pkg/logger"
	"github.com/electrofy/storefront-client/pkg/metrics"
	"github.com/electrofy/storefront-client/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const guestSessionTTL = 30 * 24 * time.Hour

// logNotifier is the headless stand-in for a UI toaster: operation outcomes
// land in the log instead of on screen.
type logNotifier struct {
	logg *logger.Logger
}

func (n logNotifier) Success(message string) {
	n.logg.Info(context.Background(), message)
}

func (n logNotifier) Error(message string) {
	n.logg.Warn(context.Background(), message)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	// Reuse the device's guest session across restarts so the server-side
	// cart survives; fall back to a fresh id when redis has none.
	deviceID, err := os.Hostname()
	if err != nil {
		deviceID = "local"
	}
	sessionID, err := redisClient.EnsureGuestSession(context.Background(), deviceID, gateway.NewSessionID(), guestSessionTTL)
	if err != nil {
		logg.Warn(context.Background(), "guest session lookup failed, using a fresh session")
		sessionID = gateway.NewSessionID()
	}

	gatewayMetrics := metrics.NewGatewayMetrics(prometheus.DefaultRegisterer)

	client, err := gateway.NewClient(cfg.Gateway, logg,
		gateway.WithSessionID(sessionID),
		gateway.WithMetrics(gatewayMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create gateway client", err)
		os.Exit(1)
	}

	notifier := logNotifier{logg: logg}

	commerceStore, err := store.New(store.Params{
		Gateway:        client,
		Notifier:       notifier,
		Logger:         logg,
		Authenticated:  client.Authenticated,
		TaxRatePercent: cfg.Checkout.TaxRatePercent,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create store", err)
		os.Exit(1)
	}

	flow, err := checkout.NewFlow(checkout.Params{
		Cart:      commerceStore,
		Slot:      checkout.NewRedisSlot(redisClient, cfg.Checkout.SlotTTL()),
		Orders:    orders.NewService(client),
		Addresses: addresses.NewService(client),
		Notifier:  notifier,
		Logger:    logg,
		SessionID: client.SessionID(),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout flow", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := commerceStore.Initialize(ctx); err != nil {
		logg.Warn(ctx, "store initialized with errors")
	}

	summary := commerceStore.CartSummary()
	fmt.Printf("session %s: %d products loaded, cart total %s (shipping %s)\n",
		client.SessionID(), len(commerceStore.Products()),
		summary.Total(), catalog.ShippingLabel(summary.Shipping))

	if view, err := flow.BeginShipping(ctx); err == nil {
		fmt.Printf("checkout entry resolves to the %s step\n", view.Step)
	}
}
