package port

import (
	"github.com/nikolayk812/cartsync/internal/domain"
)

type OrderRepository interface {
	SaveCurrent(order domain.Order) error
	GetCurrent() (domain.Order, error)

	AppendHistory(order domain.Order) error
	History() []domain.Order
}

// UserRepository reads the identity record owned by the auth subsystem.
type UserRepository interface {
	Get() (domain.User, bool)
}
