package broadcast

import (
	"sync"

	"github.com/nikolayk812/cartsync/internal/storage"
	"go.uber.org/zap"
)

// Synchronizer ties one storage context to per-key buses. Services call
// Notify after a successful local mutation; the storage hub raises events in
// other contexts on its own when the write lands.
type Synchronizer struct {
	store  *storage.Context
	logger *zap.Logger

	mu    sync.Mutex
	buses map[string]*Bus
}

func New(store *storage.Context, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synchronizer{
		store:  store,
		logger: logger,
		buses:  make(map[string]*Bus),
	}
}

// Watch registers handler for changes to key from both channels. Handlers
// must re-read persisted state rather than trust any cached copy.
func (s *Synchronizer) Watch(key string, handler func()) {
	s.bus(key).Subscribe(handler)

	s.store.Subscribe(key, func(event storage.Event) {
		s.logger.Debug("change received from another context", zap.String("key", event.Key))
		handler()
	})
}

// Notify announces a committed local mutation of key to same-context
// observers.
func (s *Synchronizer) Notify(key string) {
	s.logger.Debug("local change committed", zap.String("key", key))
	s.bus(key).Publish()
}

func (s *Synchronizer) bus(key string) *Bus {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buses[key]
	if !ok {
		b = NewBus()
		s.buses[key] = b
	}
	return b
}
