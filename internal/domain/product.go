package domain

import "github.com/shopspring/decimal"

// Product is the shape the product source supplies to the cart. The cart
// never fetches products itself.
type Product struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}
