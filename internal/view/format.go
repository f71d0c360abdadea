package view

import (
	"fmt"

	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// symbols covers the currencies the storefront actually sells in; anything
// else falls back to the ISO code prefix.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
}

// Formatter renders amounts as symbol-prefixed strings with fixed two
// decimal places.
type Formatter struct {
	unit   currency.Unit
	symbol string
}

// NewFormatter parses the configured ISO 4217 code, e.g. "USD".
func NewFormatter(code string) (Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	symbol, ok := symbols[unit.String()]
	if !ok {
		symbol = unit.String() + " "
	}

	return Formatter{unit: unit, symbol: symbol}, nil
}

func (f Formatter) Price(amount decimal.Decimal) string {
	return f.symbol + amount.StringFixed(2)
}

func (f Formatter) Amount(amount decimal.Decimal) domain.Money {
	return domain.Money{Amount: amount, Currency: f.unit}
}

func (f Formatter) Unit() currency.Unit {
	return f.unit
}
