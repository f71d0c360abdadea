package service

import "errors"

var (
	// ErrInvalidProduct means add was called with a product lacking an id.
	ErrInvalidProduct = errors.New("product has no id")

	// ErrItemNotFound means update/remove named a product not in the cart.
	ErrItemNotFound = errors.New("item not found in cart")

	// ErrStorageWrite means the persistent store rejected the write; the
	// previously stored state is unchanged.
	ErrStorageWrite = errors.New("failed to persist state")

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCart        = errors.New("cart is empty")
)
