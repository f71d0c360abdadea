package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/storage"
	"go.uber.org/zap"
)

const (
	// CurrentOrderKey holds the most recent checkout snapshot, read by the
	// order-confirmation view.
	CurrentOrderKey = "currentOrder"
	// OrderHistoryKey holds the JSON array of all finalized orders.
	OrderHistoryKey = "orders"
)

var ErrNotFound = errors.New("order not found")

type orderRepository struct {
	store  *storage.Context
	logger *zap.Logger
}

func NewOrder(store *storage.Context, logger *zap.Logger) port.OrderRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orderRepository{
		store:  store,
		logger: logger,
	}
}

func (r *orderRepository) SaveCurrent(order domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.store.Set(CurrentOrderKey, string(data)); err != nil {
		return fmt.Errorf("store.Set: %w", err)
	}

	return nil
}

func (r *orderRepository) GetCurrent() (domain.Order, error) {
	var o domain.Order

	raw, ok := r.store.Get(CurrentOrderKey)
	if !ok {
		return o, ErrNotFound
	}

	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return o, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return o, nil
}

func (r *orderRepository) AppendHistory(order domain.Order) error {
	history := append(r.History(), order)

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.store.Set(OrderHistoryKey, string(data)); err != nil {
		return fmt.Errorf("store.Set: %w", err)
	}

	return nil
}

// History is fail-soft like the cart: corrupt state reads as no history.
func (r *orderRepository) History() []domain.Order {
	raw, ok := r.store.Get(OrderHistoryKey)
	if !ok {
		return nil
	}

	var history []domain.Order
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		r.logger.Warn("stored order history is not valid, substituting empty history",
			zap.String("key", OrderHistoryKey), zap.Error(err))
		return nil
	}

	return history
}
