package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"go.uber.org/zap"
)

type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "Idle"
	CheckoutStateValidating CheckoutState = "Validating"
	CheckoutStateFinalized  CheckoutState = "Finalized"
	CheckoutStateRejected   CheckoutState = "Rejected"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateFinalized || s == CheckoutStateRejected
}

type RejectReason string

const (
	ReasonNotAuthenticated RejectReason = "NotAuthenticated"
	ReasonEmptyCart        RejectReason = "EmptyCart"
	ReasonStorageFailed    RejectReason = "StorageFailed"
)

// Navigation is a signal to the caller; actual navigation is external.
type Navigation string

const (
	NavigateNone         Navigation = ""
	NavigateLogin        Navigation = "login"
	NavigateConfirmation Navigation = "confirmation"
)

// CheckoutResult is the terminal state of one Finalize attempt.
type CheckoutResult struct {
	State      CheckoutState
	Reason     RejectReason
	NavigateTo Navigation
	Order      domain.Order // zero value unless State is Finalized
}

// CheckoutService snapshots the cart into an order record and clears the
// cart, as one logical transition: a failed order write leaves the cart
// intact.
type CheckoutService struct {
	carts    *CartService
	orders   port.OrderRepository
	users    port.UserRepository
	notifier port.Notifier
	logger   *zap.Logger

	now func() time.Time
}

func NewCheckout(carts *CartService, orders port.OrderRepository, users port.UserRepository, notifier port.Notifier, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Finalize runs Idle → Validating → Finalized, or rejects without mutating
// anything.
func (s *CheckoutService) Finalize() CheckoutResult {
	user, signedIn := s.users.Get()
	if !signedIn {
		s.show("Please sign in to complete your order.", port.SeverityWarning)
		return CheckoutResult{
			State:      CheckoutStateRejected,
			Reason:     ReasonNotAuthenticated,
			NavigateTo: NavigateLogin,
		}
	}

	cart := s.carts.Cart()
	if cart.IsEmpty() {
		s.show("Your cart is empty. Add items before checkout.", port.SeverityWarning)
		return CheckoutResult{
			State:  CheckoutStateRejected,
			Reason: ReasonEmptyCart,
		}
	}

	order := domain.Order{
		OrderNumber: newOrderNumber(s.now()),
		CreatedAt:   s.now().UTC(),
		Items:       cart.Clone().Items,
		Totals:      domain.ComputeTotals(cart),
		Status:      domain.OrderStatusProcessing,
		Customer: domain.OrderCustomer{
			UID:         user.UID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	}

	if err := s.orders.SaveCurrent(order); err != nil {
		s.logger.Error("persisting order failed, cart left intact",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
		s.show("Could not place your order. Storage may be full.", port.SeverityDanger)
		return CheckoutResult{
			State:  CheckoutStateRejected,
			Reason: ReasonStorageFailed,
		}
	}

	// History is best effort: the order record itself is already durable.
	if err := s.orders.AppendHistory(order); err != nil {
		s.logger.Warn("appending order history failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	if err := s.carts.Clear(); err != nil {
		s.logger.Error("clearing cart after checkout failed", zap.Error(err))
	}

	s.logger.Info("order finalized",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Totals.Total.StringFixed(2)))

	return CheckoutResult{
		State:      CheckoutStateFinalized,
		NavigateTo: NavigateConfirmation,
		Order:      order,
	}
}

func (s *CheckoutService) show(message string, severity port.Severity) {
	if s.notifier == nil {
		s.logger.Debug("no notifier configured", zap.String("message", message))
		return
	}
	s.notifier.Show(message, severity)
}

// newOrderNumber is time-based with a random suffix, unique enough for a
// single browser profile without coordination.
func newOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}
