package products_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikolayk812/cartsync/internal/products"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientProducts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "bare array payload",
			body: `[{"id":1,"title":"Widget","price":25.5,"image":"https://cdn/w.png","category":"tools"},
				{"id":2,"title":"Gadget","price":9.99,"thumbnail":"https://cdn/g.png"}]`,
		},
		{
			name: "wrapped payload",
			body: `{"products":[{"id":1,"title":"Widget","price":25.5,"thumbnail":"https://cdn/w.png","category":"tools"},
				{"id":2,"title":"Gadget","price":9.99,"image":"https://cdn/g.png"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/products", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := products.NewClient(server.URL, server.Client(), nil)
			require.NoError(t, err)

			list, err := client.Products(t.Context())
			require.NoError(t, err)
			require.Len(t, list, 2)

			assert.Equal(t, "1", list[0].ID)
			assert.Equal(t, "Widget", list[0].Title)
			assert.True(t, list[0].Price.Equal(decimal.RequireFromString("25.5")))
			assert.Equal(t, "tools", list[0].Category)
			assert.Equal(t, "https://cdn/w.png", list[0].Image)
			assert.Equal(t, "https://cdn/g.png", list[1].Image)
		})
	}
}

func TestClientProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"title":"Lamp","price":12,"category":"home"}`))
	}))
	defer server.Close()

	client, err := products.NewClient(server.URL, server.Client(), nil)
	require.NoError(t, err)

	p, err := client.Product(t.Context(), "7")
	require.NoError(t, err)

	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "Lamp", p.Title)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(12)))
}

func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := products.NewClient(server.URL, server.Client(), nil)
	require.NoError(t, err)

	_, err = client.Products(t.Context())
	assert.Error(t, err)
}
