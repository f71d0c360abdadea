package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/nikolayk812/cartsync/internal/broadcast"
	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/products"
	"github.com/nikolayk812/cartsync/internal/repository"
	"github.com/nikolayk812/cartsync/internal/service"
	"github.com/nikolayk812/cartsync/internal/storage"
	"github.com/nikolayk812/cartsync/internal/view"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Demo wiring: two storage contexts stand for two open tabs sharing one
// local store. Tab A mutates the cart, tab B observes convergence, then a
// checkout runs end to end.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	backend := storage.Backend(storage.NewMemory())
	if dir := os.Getenv("STOREFRONT_STATE_DIR"); dir != "" {
		fileBackend, err := storage.NewFile(dir)
		if err != nil {
			logger.Fatal("opening state directory failed", zap.String("dir", dir), zap.Error(err))
		}
		backend = fileBackend
	}

	code := os.Getenv("STOREFRONT_CURRENCY")
	if code == "" {
		code = "USD"
	}
	format, err := view.NewFormatter(code)
	if err != nil {
		logger.Fatal("invalid currency code", zap.String("code", code), zap.Error(err))
	}

	hub := storage.NewHub(backend)

	tabA := openTab("tab-a", hub, format, logger)
	tabB := openTab("tab-b", hub, format, logger)

	widget := domain.Product{ID: "1", Title: "Widget", Price: decimal.NewFromInt(25), Category: "Tools"}
	gadget := domain.Product{ID: "2", Title: "Gadget", Price: decimal.RequireFromString("19.99")}

	_ = tabA.carts.AddItem(widget, 1)
	_ = tabA.carts.AddItem(widget, 2)
	_ = tabA.carts.AddItem(gadget, 1)
	_ = tabB.carts.UpdateQuantity(widget.ID, 1)

	logger.Info("counts converged",
		zap.Int("tab_a", tabA.carts.Count()),
		zap.Int("tab_b", tabB.carts.Count()))

	result := tabA.checkout.Finalize()
	logger.Info("checkout before sign-in",
		zap.String("state", string(result.State)),
		zap.String("reason", string(result.Reason)),
		zap.String("navigate_to", string(result.NavigateTo)))

	// The auth subsystem owns the user key; simulate its write here.
	user, _ := json.Marshal(domain.User{UID: "u-1", Email: "ada@example.com", DisplayName: "Ada"})
	if err := tabA.store.Set(repository.UserKey, string(user)); err != nil {
		logger.Fatal("writing user record failed", zap.Error(err))
	}

	result = tabA.checkout.Finalize()
	if result.State == service.CheckoutStateFinalized {
		logger.Info("checkout finalized",
			zap.String("order_number", result.Order.OrderNumber),
			zap.String("total", format.Amount(result.Order.Totals.Total).String()),
			zap.String("navigate_to", string(result.NavigateTo)))
	}

	if base := os.Getenv("STOREFRONT_PRODUCT_API"); base != "" {
		browseCatalog(base, tabA, logger)
	}
}

func browseCatalog(base string, tab *tab, logger *zap.Logger) {
	client, err := products.NewClient(base, nil, logger)
	if err != nil {
		logger.Error("building catalog client failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	list, err := client.Products(ctx)
	if err != nil {
		logger.Error("fetching catalog failed", zap.Error(err))
		return
	}

	logger.Info("catalog fetched", zap.Int("products", len(list)))
	if len(list) > 0 {
		_, _ = tab.wishlist.Toggle(list[0])
	}
}

type tab struct {
	name     string
	store    *storage.Context
	carts    *service.CartService
	wishlist *service.WishlistService
	checkout *service.CheckoutService
}

func openTab(name string, hub *storage.Hub, format view.Formatter, logger *zap.Logger) *tab {
	logger = logger.Named(name)

	store := hub.Attach()
	sync := broadcast.New(store, logger)

	cartRepo := repository.NewCart(store, logger)
	orderRepo := repository.NewOrder(store, logger)
	userRepo := repository.NewUser(store, logger)
	wishRepo := repository.NewWishlist(store, logger)

	notifier := consoleNotifier{logger: logger}

	carts := service.NewCart(cartRepo, sync, notifier, logger)
	wishlist := service.NewWishlist(wishRepo, sync, notifier, logger)
	checkout := service.NewCheckout(carts, orderRepo, userRepo, notifier, logger)

	publisher := view.NewPublisher(cartRepo, wishRepo, format, view.Bindings{
		CartCount: func(text string, visible bool) {
			logger.Info("cart badge", zap.String("count", text), zap.Bool("visible", visible))
		},
		Summary: func(s view.Summary) {
			logger.Info("summary",
				zap.String("subtotal", s.Subtotal),
				zap.String("shipping", s.Shipping),
				zap.String("tax", s.Tax),
				zap.String("total", s.Total))
		},
		CheckoutEnabled: func(enabled bool) {
			logger.Info("checkout button", zap.Bool("enabled", enabled))
		},
	}, logger)
	publisher.Attach(sync)

	return &tab{
		name:     name,
		store:    store,
		carts:    carts,
		wishlist: wishlist,
		checkout: checkout,
	}
}

type consoleNotifier struct {
	logger *zap.Logger
}

func (n consoleNotifier) Show(message string, severity port.Severity) {
	n.logger.Info("toast",
		zap.String("severity", string(severity)),
		zap.String("message", message))
}
