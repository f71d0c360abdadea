// Package view projects persisted state into display values: count badges,
// currency-formatted totals and checkout enablement. It holds no state of
// its own and is safe to re-run at any time.
package view

import (
	"strconv"

	"github.com/nikolayk812/cartsync/internal/broadcast"
	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/repository"
	"go.uber.org/zap"
)

// Bindings are the render targets. Nil members are skipped silently, the
// analogue of a page that does not contain that element.
type Bindings struct {
	CartCount       func(text string, visible bool)
	WishlistCount   func(text string, visible bool)
	Summary         func(s Summary)
	CheckoutEnabled func(enabled bool)
}

// Summary carries the formatted totals strings for display.
type Summary struct {
	Subtotal string
	Shipping string
	Tax      string
	Total    string
}

type Publisher struct {
	carts     port.CartRepository
	wishlists port.WishlistRepository // optional
	format    Formatter
	bindings  Bindings
	logger    *zap.Logger
}

func NewPublisher(carts port.CartRepository, wishlists port.WishlistRepository, format Formatter, bindings Bindings, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Publisher{
		carts:     carts,
		wishlists: wishlists,
		format:    format,
		bindings:  bindings,
		logger:    logger,
	}
}

// Attach subscribes to change notifications from both channels and renders
// once from current state.
func (p *Publisher) Attach(sync *broadcast.Synchronizer) {
	sync.Watch(repository.CartKey, p.Refresh)
	if p.wishlists != nil {
		sync.Watch(repository.WishlistKey, p.refreshWishlist)
	}

	p.Refresh()
	p.refreshWishlist()
}

// Refresh re-reads the persisted cart and pushes every derived view. The
// previously rendered state is never trusted.
func (p *Publisher) Refresh() {
	cart := p.carts.Get()
	count := cart.Count()

	if p.bindings.CartCount != nil {
		p.bindings.CartCount(strconv.Itoa(count), count > 0)
	}

	if p.bindings.Summary != nil {
		totals := domain.ComputeTotals(cart)
		p.bindings.Summary(Summary{
			Subtotal: p.format.Price(totals.Subtotal),
			Shipping: p.format.Price(totals.Shipping),
			Tax:      p.format.Price(totals.Tax),
			Total:    p.format.Price(totals.Total),
		})
	}

	if p.bindings.CheckoutEnabled != nil {
		p.bindings.CheckoutEnabled(!cart.IsEmpty())
	}

	p.logger.Debug("views refreshed", zap.Int("count", count))
}

func (p *Publisher) refreshWishlist() {
	if p.wishlists == nil || p.bindings.WishlistCount == nil {
		return
	}

	n := len(p.wishlists.Get())
	p.bindings.WishlistCount(strconv.Itoa(n), n > 0)
}
