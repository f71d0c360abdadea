package repository

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartKey is the storage key holding the cart as a JSON array of line items.
const CartKey = "cart"

type cartRepository struct {
	store  *storage.Context
	logger *zap.Logger
}

func NewCart(store *storage.Context, logger *zap.Logger) port.CartRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &cartRepository{
		store:  store,
		logger: logger,
	}
}

// Get never fails: absent, corrupt or wrongly shaped state comes back as an
// empty cart, so one bad write cannot wedge every later page load.
func (r *cartRepository) Get() domain.Cart {
	raw, ok := r.store.Get(CartKey)
	if !ok {
		return domain.Cart{}
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn("stored cart is not a valid item array, substituting empty cart",
			zap.String("key", CartKey), zap.Error(err))
		return domain.Cart{}
	}

	return domain.Cart{Items: r.sanitize(items)}
}

// sanitize drops rows without a product id and floors quantities at 1,
// mirroring how partially written rows were repaired on load historically.
func (r *cartRepository) sanitize(items []domain.LineItem) []domain.LineItem {
	kept := make([]domain.LineItem, 0, len(items))

	for _, item := range items {
		if item.ProductID == "" {
			r.logger.Warn("dropping stored cart row without product id",
				zap.String("title", item.Title))
			continue
		}

		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.UnitPrice.IsNegative() {
			item.UnitPrice = decimal.Zero
		}

		kept = append(kept, item)
	}

	return kept
}

func (r *cartRepository) Save(cart domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.store.Set(CartKey, string(data)); err != nil {
		return fmt.Errorf("store.Set: %w", err)
	}

	return nil
}

func (r *cartRepository) Clear() error {
	if err := r.Save(domain.Cart{}); err != nil {
		return fmt.Errorf("r.Save: %w", err)
	}
	return nil
}
