package port

import (
	"github.com/nikolayk812/cartsync/internal/domain"
)

// CartRepository persists the whole cart as one document. Reads are
// fail-soft: missing or corrupt state yields an empty cart, never an error.
type CartRepository interface {
	Get() domain.Cart
	Save(cart domain.Cart) error
	Clear() error
}

type WishlistRepository interface {
	Get() []domain.Product
	Save(items []domain.Product) error
}
