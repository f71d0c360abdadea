package service_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nikolayk812/cartsync/internal/broadcast"
	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/repository"
	"github.com/nikolayk812/cartsync/internal/service"
	"github.com/nikolayk812/cartsync/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type checkoutServiceSuite struct {
	suite.Suite

	backend  *flakyBackend
	store    *storage.Context
	notifier *recordingNotifier

	carts  *service.CartService
	orders port.OrderRepository
	svc    *service.CheckoutService
}

// entry point to run the tests in the suite
func TestCheckoutServiceSuite(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(checkoutServiceSuite))
}

func (suite *checkoutServiceSuite) SetupTest() {
	suite.backend = &flakyBackend{Memory: storage.NewMemory()}
	hub := storage.NewHub(suite.backend)

	suite.store = hub.Attach()
	sync := broadcast.New(suite.store, nil)
	suite.notifier = &recordingNotifier{}

	cartRepo := repository.NewCart(suite.store, nil)
	suite.orders = repository.NewOrder(suite.store, nil)
	userRepo := repository.NewUser(suite.store, nil)

	suite.carts = service.NewCart(cartRepo, sync, nil, nil)
	suite.svc = service.NewCheckout(suite.carts, suite.orders, userRepo, suite.notifier, nil)
}

func (suite *checkoutServiceSuite) signIn() domain.User {
	user := domain.User{UID: "u-1", Email: "ada@example.com", DisplayName: "Ada"}

	data, err := json.Marshal(user)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Set(repository.UserKey, string(data)))

	return user
}

func (suite *checkoutServiceSuite) TestRejectedWhenNotAuthenticated() {
	t := suite.T()

	require.NoError(t, suite.carts.AddItem(fakeProduct(), 1))

	result := suite.svc.Finalize()

	assert.Equal(t, service.CheckoutStateRejected, result.State)
	assert.Equal(t, service.ReasonNotAuthenticated, result.Reason)
	assert.Equal(t, service.NavigateLogin, result.NavigateTo)
	assert.True(t, result.State.IsTerminal())

	assert.Equal(t, 1, suite.carts.Count(), "rejection must not touch the cart")
	_, err := suite.orders.GetCurrent()
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func (suite *checkoutServiceSuite) TestRejectedWhenCartEmpty() {
	t := suite.T()

	suite.signIn()

	result := suite.svc.Finalize()

	assert.Equal(t, service.CheckoutStateRejected, result.State)
	assert.Equal(t, service.ReasonEmptyCart, result.Reason)
	assert.Equal(t, service.NavigateNone, result.NavigateTo)
}

func (suite *checkoutServiceSuite) TestFinalize() {
	t := suite.T()

	user := suite.signIn()

	require.NoError(t, suite.carts.AddItem(domain.Product{ID: "1", Title: "Widget", Price: decimal.NewFromInt(20)}, 2))
	require.NoError(t, suite.carts.AddItem(domain.Product{ID: "2", Title: "Gadget", Price: decimal.NewFromInt(15)}, 1))

	result := suite.svc.Finalize()

	require.Equal(t, service.CheckoutStateFinalized, result.State)
	assert.Equal(t, service.NavigateConfirmation, result.NavigateTo)

	order := result.Order
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, user.Email, order.Customer.Email)

	// subtotal 55 clears the free-shipping threshold
	assert.True(t, order.Totals.Subtotal.Equal(decimal.NewFromInt(55)))
	assert.True(t, order.Totals.Shipping.Equal(decimal.Zero))
	assert.True(t, order.Totals.Tax.Equal(decimal.RequireFromString("5.5")))
	assert.True(t, order.Totals.Total.Equal(decimal.RequireFromString("60.5")))

	assert.True(t, suite.carts.Cart().IsEmpty(), "checkout empties the cart")

	persisted, err := suite.orders.GetCurrent()
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, persisted.OrderNumber)
	assert.Len(t, suite.orders.History(), 1)
}

func (suite *checkoutServiceSuite) TestOrderSnapshotIsImmutable() {
	t := suite.T()

	suite.signIn()
	require.NoError(t, suite.carts.AddItem(fakeProduct(), 1))

	result := suite.svc.Finalize()
	require.Equal(t, service.CheckoutStateFinalized, result.State)

	// later cart activity must not leak into the snapshot
	require.NoError(t, suite.carts.AddItem(fakeProduct(), 5))

	persisted, err := suite.orders.GetCurrent()
	require.NoError(t, err)
	assert.Len(t, persisted.Items, 1)
	assert.Equal(t, result.Order.OrderNumber, persisted.OrderNumber)
}

func (suite *checkoutServiceSuite) TestOrderWriteFailureKeepsCart() {
	t := suite.T()

	suite.signIn()
	product := fakeProduct()
	require.NoError(t, suite.carts.AddItem(product, 2))

	suite.backend.failWrites = true

	result := suite.svc.Finalize()

	assert.Equal(t, service.CheckoutStateRejected, result.State)
	assert.Equal(t, service.ReasonStorageFailed, result.Reason)

	suite.backend.failWrites = false

	cart := suite.carts.Cart()
	require.Len(t, cart.Items, 1, "cart must survive a failed order write")
	assert.Equal(t, 2, cart.Items[0].Quantity)

	_, err := suite.orders.GetCurrent()
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// The browsing flow end to end: add, merge, shrink, remove, then a checkout
// attempt on the emptied cart.
func (suite *checkoutServiceSuite) TestEndToEndScenario() {
	t := suite.T()

	suite.signIn()
	widget := domain.Product{ID: "1", Title: "Widget", Price: decimal.NewFromInt(25)}

	require.NoError(t, suite.carts.AddItem(widget, 1))
	assert.Equal(t, 1, suite.carts.Count())
	assert.True(t, suite.carts.Totals().Subtotal.Equal(decimal.NewFromInt(25)))

	require.NoError(t, suite.carts.AddItem(widget, 2))
	assert.Equal(t, 3, suite.carts.Count())

	require.NoError(t, suite.carts.UpdateQuantity(widget.ID, 1))
	assert.Equal(t, 1, suite.carts.Count())

	require.NoError(t, suite.carts.RemoveItem(widget.ID))
	assert.True(t, suite.carts.Cart().IsEmpty())

	result := suite.svc.Finalize()
	assert.Equal(t, service.CheckoutStateRejected, result.State)
	assert.Equal(t, service.ReasonEmptyCart, result.Reason)
}
