package service

import (
	"fmt"
	"slices"

	"github.com/nikolayk812/cartsync/internal/broadcast"
	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/repository"
	"go.uber.org/zap"
)

// WishlistService mirrors the cart's persist-then-notify discipline on the
// wishlist key. Wishlist entries are plain products, no quantities.
type WishlistService struct {
	repo     port.WishlistRepository
	sync     *broadcast.Synchronizer
	notifier port.Notifier
	logger   *zap.Logger
}

func NewWishlist(repo port.WishlistRepository, sync *broadcast.Synchronizer, notifier port.Notifier, logger *zap.Logger) *WishlistService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WishlistService{
		repo:     repo,
		sync:     sync,
		notifier: notifier,
		logger:   logger,
	}
}

// Toggle adds the product when absent and removes it when present,
// reporting whether it ended up on the list.
func (s *WishlistService) Toggle(product domain.Product) (bool, error) {
	if product.ID == "" {
		return false, ErrInvalidProduct
	}

	items := s.repo.Get()
	idx := slices.IndexFunc(items, func(p domain.Product) bool { return p.ID == product.ID })

	added := idx < 0
	if added {
		items = append(items, product)
	} else {
		items = slices.Delete(items, idx, idx+1)
	}

	if err := s.commit(items); err != nil {
		return false, err
	}

	if added {
		s.show(fmt.Sprintf("%s added to wishlist", product.Title), port.SeveritySuccess)
	} else {
		s.show(fmt.Sprintf("%s removed from wishlist", product.Title), port.SeverityInfo)
	}

	return added, nil
}

func (s *WishlistService) Contains(productID string) bool {
	return slices.ContainsFunc(s.repo.Get(), func(p domain.Product) bool {
		return p.ID == productID
	})
}

func (s *WishlistService) Remove(productID string) error {
	items := s.repo.Get()

	idx := slices.IndexFunc(items, func(p domain.Product) bool { return p.ID == productID })
	if idx < 0 {
		return ErrItemNotFound
	}

	return s.commit(slices.Delete(items, idx, idx+1))
}

func (s *WishlistService) Items() []domain.Product {
	return s.repo.Get()
}

func (s *WishlistService) Count() int {
	return len(s.repo.Get())
}

// MoveToCart adds the wishlist entry to the cart and removes it from the
// list only once the cart write succeeded.
func (s *WishlistService) MoveToCart(productID string, carts *CartService) error {
	items := s.repo.Get()

	idx := slices.IndexFunc(items, func(p domain.Product) bool { return p.ID == productID })
	if idx < 0 {
		return ErrItemNotFound
	}

	if err := carts.AddItem(items[idx], 1); err != nil {
		return fmt.Errorf("carts.AddItem: %w", err)
	}

	return s.commit(slices.Delete(items, idx, idx+1))
}

func (s *WishlistService) commit(items []domain.Product) error {
	if err := s.repo.Save(items); err != nil {
		s.logger.Error("persisting wishlist failed", zap.Error(err))
		s.show("Could not save your wishlist. Storage may be full.", port.SeverityDanger)
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	s.sync.Notify(repository.WishlistKey)
	return nil
}

func (s *WishlistService) show(message string, severity port.Severity) {
	if s.notifier == nil {
		s.logger.Debug("no notifier configured", zap.String("message", message))
		return
	}
	s.notifier.Show(message, severity)
}
