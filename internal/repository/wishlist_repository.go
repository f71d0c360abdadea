package repository

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/storage"
	"go.uber.org/zap"
)

// WishlistKey holds the wishlist as a JSON array of products.
const WishlistKey = "wishlist"

type wishlistRepository struct {
	store  *storage.Context
	logger *zap.Logger
}

func NewWishlist(store *storage.Context, logger *zap.Logger) port.WishlistRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &wishlistRepository{
		store:  store,
		logger: logger,
	}
}

func (r *wishlistRepository) Get() []domain.Product {
	raw, ok := r.store.Get(WishlistKey)
	if !ok {
		return nil
	}

	var items []domain.Product
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn("stored wishlist is not valid, substituting empty wishlist",
			zap.String("key", WishlistKey), zap.Error(err))
		return nil
	}

	return items
}

func (r *wishlistRepository) Save(items []domain.Product) error {
	if items == nil {
		items = []domain.Product{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.store.Set(WishlistKey, string(data)); err != nil {
		return fmt.Errorf("store.Set: %w", err)
	}

	return nil
}
