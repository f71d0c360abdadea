package repository

import (
	"encoding/json"

	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/nikolayk812/cartsync/internal/port"
	"github.com/nikolayk812/cartsync/internal/storage"
	"go.uber.org/zap"
)

// UserKey is written by the authentication subsystem; this module only reads it.
const UserKey = "user"

type userRepository struct {
	store  *storage.Context
	logger *zap.Logger
}

func NewUser(store *storage.Context, logger *zap.Logger) port.UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &userRepository{
		store:  store,
		logger: logger,
	}
}

// Get reports false when no usable identity record exists, whatever the
// cause. A record without an email cannot gate checkout and counts as absent.
func (r *userRepository) Get() (domain.User, bool) {
	var u domain.User

	raw, ok := r.store.Get(UserKey)
	if !ok {
		return u, false
	}

	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		r.logger.Warn("stored user record is not valid, treating as signed out",
			zap.String("key", UserKey), zap.Error(err))
		return domain.User{}, false
	}

	if u.Email == "" {
		return domain.User{}, false
	}

	return u, true
}
