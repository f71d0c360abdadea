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

// CartService is the sole mutator of the persisted cart. It keeps no cart
// copy of its own: every operation re-reads the store, mutates a working
// copy and commits it back, so any number of instances in the same context
// stay consistent.
type CartService struct {
	repo     port.CartRepository
	sync     *broadcast.Synchronizer
	notifier port.Notifier
	logger   *zap.Logger
}

func NewCart(repo port.CartRepository, sync *broadcast.Synchronizer, notifier port.Notifier, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CartService{
		repo:     repo,
		sync:     sync,
		notifier: notifier,
		logger:   logger,
	}
}

// AddItem puts quantity units of product into the cart. An existing line
// for the same product gains quantity instead of a duplicate row; there is
// no upper bound, inventory limits are an external concern.
func (s *CartService) AddItem(product domain.Product, quantity int) error {
	if product.ID == "" {
		s.logger.Error("add rejected, product has no id", zap.String("title", product.Title))
		s.show("Could not add this product to the cart.", port.SeverityDanger)
		return ErrInvalidProduct
	}

	if quantity < 1 {
		quantity = 1
	}

	cart := s.repo.Get()

	if idx, ok := cart.Find(product.ID); ok {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.NewLineItem(product, quantity))
	}

	if err := s.commit(cart); err != nil {
		return err
	}

	title := product.Title
	if title == "" {
		title = domain.DefaultTitle
	}
	s.show(fmt.Sprintf("%s added to cart!", title), port.SeveritySuccess)

	return nil
}

// UpdateQuantity sets the line's quantity. Dropping to zero or below removes
// the line entirely; the floor of 1 only applies to lines that stay.
func (s *CartService) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}

	cart := s.repo.Get()

	idx, ok := cart.Find(productID)
	if !ok {
		s.show("That item is no longer in your cart.", port.SeverityWarning)
		return ErrItemNotFound
	}

	cart.Items[idx].Quantity = quantity
	return s.commit(cart)
}

func (s *CartService) RemoveItem(productID string) error {
	cart := s.repo.Get()

	idx, ok := cart.Find(productID)
	if !ok {
		s.show("That item is no longer in your cart.", port.SeverityWarning)
		return ErrItemNotFound
	}

	cart.Items = slices.Delete(cart.Items, idx, idx+1)
	return s.commit(cart)
}

func (s *CartService) Clear() error {
	return s.commit(domain.Cart{})
}

// Cart re-reads the persisted cart; callers must not hold onto the result
// across change notifications.
func (s *CartService) Cart() domain.Cart {
	return s.repo.Get()
}

func (s *CartService) Count() int {
	return s.repo.Get().Count()
}

func (s *CartService) Totals() domain.Totals {
	return domain.ComputeTotals(s.repo.Get())
}

// commit persists the working copy and, only after the write lands,
// notifies same-context observers. Other contexts learn of the write from
// the storage hub. On failure the stored cart is unchanged.
func (s *CartService) commit(cart domain.Cart) error {
	if err := s.repo.Save(cart); err != nil {
		s.logger.Error("persisting cart failed", zap.Error(err))
		s.show("Could not save your cart. Storage may be full.", port.SeverityDanger)
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	s.sync.Notify(repository.CartKey)
	return nil
}

func (s *CartService) show(message string, severity port.Severity) {
	if s.notifier == nil {
		s.logger.Debug("no notifier configured", zap.String("message", message))
		return
	}
	s.notifier.Show(message, severity)
}
