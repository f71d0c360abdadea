package domain

import (
	"time"
)

// Order is an immutable snapshot of a finalized cart. Items are copied at
// checkout time; mutating the cart afterwards does not affect the record.
type Order struct {
	OrderNumber string        `json:"orderNumber"`
	CreatedAt   time.Time     `json:"createdAt"`
	Items       []LineItem    `json:"items"`
	Totals      Totals        `json:"totals"`
	Status      OrderStatus   `json:"status"`
	Customer    OrderCustomer `json:"customer"`
}

type OrderCustomer struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
