package domain

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Display defaults for products that arrive without the optional fields.
const (
	DefaultTitle    = "Unknown Product"
	DefaultImageURL = "https://via.placeholder.com/80"
	DefaultCategory = "General"
)

// LineItem is one product entry in the cart. ProductID is unique within a
// cart; adding the same product again increments Quantity instead.
type LineItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	ImageURL  string          `json:"imageUrl"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewLineItem builds a cart line from a product, substituting display
// defaults for fields the product source did not supply.
func NewLineItem(p Product, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}

	item := LineItem{
		ProductID: p.ID,
		Title:     p.Title,
		UnitPrice: p.Price,
		ImageURL:  p.Image,
		Category:  p.Category,
		Quantity:  quantity,
	}

	if item.Title == "" {
		item.Title = DefaultTitle
	}
	if item.ImageURL == "" {
		item.ImageURL = DefaultImageURL
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	if item.UnitPrice.IsNegative() {
		item.UnitPrice = decimal.Zero
	}

	return item
}

// Cart is the ordered collection of line items, insertion order preserved.
type Cart struct {
	Items []LineItem
}

func (c Cart) Count() int {
	return lo.SumBy(c.Items, func(i LineItem) int { return i.Quantity })
}

func (c Cart) Subtotal() decimal.Decimal {
	return lo.Reduce(c.Items, func(sum decimal.Decimal, i LineItem, _ int) decimal.Decimal {
		return sum.Add(i.LineTotal())
	}, decimal.Zero)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the index of the line holding productID, or false.
func (c Cart) Find(productID string) (int, bool) {
	for idx, item := range c.Items {
		if item.ProductID == productID {
			return idx, true
		}
	}
	return 0, false
}

// Clone deep-copies the cart so snapshots stay immutable after later mutations.
func (c Cart) Clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
