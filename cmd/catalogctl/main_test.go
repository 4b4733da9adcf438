package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const burger = `{
	"id":"p1","name":"Burger","description":"Beef burger","images":[],"productTypeId":"t1",
	"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z",
	"productType":{"id":"t1","name":"Food","description":null,"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"},
	"variants":[
		{"id":"v-big","size":"Large","color":null,"price":8,"stock":2,"sku":"B-L","productId":"p1","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"},
		{"id":"v-small","size":"Small","color":null,"price":5,"stock":4,"sku":"B-S","productId":"p1","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}
	],
	"addOns":[
		{"id":"a-cheese","name":"Cheese","description":null,"price":1,"productId":"p1","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}
	]
}`

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"OK","message":"Catalog API is running"}`)
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "["+burger+"]")
	})
	mux.HandleFunc("/api/product-types", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"t1","name":"Food","description":null,"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z","_count":{"products":1}}]`)
	})
	mux.HandleFunc("/api/products/p1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, burger)
	})
	mux.HandleFunc("/api/products/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Product not found"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", srv.URL + "/api"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestHealthCommand(t *testing.T) {
	out, err := run(t, fakeAPI(t), "health")
	require.NoError(t, err)
	assert.Equal(t, "OK: Catalog API is running\n", out)
}

func TestProductsCommandGroupsByType(t *testing.T) {
	out, err := run(t, fakeAPI(t), "products")
	require.NoError(t, err)
	assert.Contains(t, out, "[All Products (1)]  Food (1)")
	assert.Contains(t, out, "Food  1 product")
	assert.Contains(t, out, "₹415.00 - ₹664.00")
	assert.Contains(t, out, "1 add-on")
}

func TestShowCommandPricesSelection(t *testing.T) {
	out, err := run(t, fakeAPI(t), "show", "p1", "--addon", "a-cheese")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected: Size: Small, ₹415.00 4 in stock")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "₹498.00")
	assert.Contains(t, out, "Add to Cart")
}

func TestShowCommandSwitchesVariant(t *testing.T) {
	out, err := run(t, fakeAPI(t), "show", "p1", "--variant", "v-big")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected: Size: Large, ₹664.00 2 in stock")
	assert.NotContains(t, out, "[x]")
}

func TestShowCommandReportsLoadFailure(t *testing.T) {
	_, err := run(t, fakeAPI(t), "show", "missing")
	assert.EqualError(t, err, "Failed to load product details. Please try again later.")
}
