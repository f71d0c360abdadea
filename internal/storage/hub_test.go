package storage_test

import (
	"testing"

	"github.com/nikolayk812/cartsync/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBackends(t *testing.T) {
	file, err := storage.NewFile(t.TempDir())
	require.NoError(t, err)

	backends := map[string]storage.Backend{
		"memory": storage.NewMemory(),
		"file":   file,
	}

	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			_, ok := backend.Get("cart")
			assert.False(t, ok)

			require.NoError(t, backend.Set("cart", `[{"productId":"1"}]`))

			v, ok := backend.Get("cart")
			require.True(t, ok)
			assert.Equal(t, `[{"productId":"1"}]`, v)

			require.NoError(t, backend.Set("cart", "[]"))
			v, _ = backend.Get("cart")
			assert.Equal(t, "[]", v)

			require.NoError(t, backend.Delete("cart"))
			_, ok = backend.Get("cart")
			assert.False(t, ok)

			// deleting an absent key is a no-op
			require.NoError(t, backend.Delete("cart"))
		})
	}
}

func TestFileBackendSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := storage.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("cart", "[]"))
	require.NoError(t, first.Set("user", "{}"))

	second, err := storage.NewFile(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"cart", "user"}, second.Keys())

	v, ok := second.Get("user")
	require.True(t, ok)
	assert.Equal(t, "{}", v)
}

func TestHubEventsSkipWriter(t *testing.T) {
	hub := storage.NewHub(storage.NewMemory())

	writer := hub.Attach()
	other := hub.Attach()

	var writerEvents, otherEvents []storage.Event
	writer.Subscribe("cart", func(e storage.Event) { writerEvents = append(writerEvents, e) })
	other.Subscribe("cart", func(e storage.Event) { otherEvents = append(otherEvents, e) })

	require.NoError(t, writer.Set("cart", "[]"))

	assert.Empty(t, writerEvents, "events must not fire in the writing context")
	require.Len(t, otherEvents, 1)
	assert.Equal(t, storage.Event{Key: "cart", NewValue: "[]"}, otherEvents[0])
}

func TestHubEventsFilterByKey(t *testing.T) {
	hub := storage.NewHub(storage.NewMemory())

	writer := hub.Attach()
	other := hub.Attach()

	var events []storage.Event
	other.Subscribe("cart", func(e storage.Event) { events = append(events, e) })

	require.NoError(t, writer.Set("wishlist", "[]"))
	assert.Empty(t, events)
}

func TestHubDeleteEvents(t *testing.T) {
	hub := storage.NewHub(storage.NewMemory())

	writer := hub.Attach()
	other := hub.Attach()

	var events []storage.Event
	other.Subscribe("cart", func(e storage.Event) { events = append(events, e) })

	// deleting an absent key raises nothing
	require.NoError(t, writer.Delete("cart"))
	assert.Empty(t, events)

	require.NoError(t, writer.Set("cart", "[]"))
	require.NoError(t, writer.Delete("cart"))

	require.Len(t, events, 2)
	assert.Equal(t, storage.Event{Key: "cart", OldValue: "[]"}, events[1])
}

func TestHubDetach(t *testing.T) {
	hub := storage.NewHub(storage.NewMemory())

	writer := hub.Attach()
	other := hub.Attach()

	var events int
	other.Subscribe("cart", func(storage.Event) { events++ })

	require.NoError(t, writer.Set("cart", "[]"))
	hub.Detach(other)
	require.NoError(t, writer.Set("cart", "[1]"))

	assert.Equal(t, 1, events)
}
