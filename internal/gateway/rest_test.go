package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRest(RestConfig{BaseURL: srv.URL, AnonKey: "chave-anon"})
}

func TestListProductsDecodesDecimalPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/products", r.URL.Path)
		require.Equal(t, "chave-anon", r.Header.Get("apikey"))
		require.Equal(t, "Bearer chave-anon", r.Header.Get("Authorization"))
		require.Equal(t, "created_at.desc", r.URL.Query().Get("order"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Camiseta","price":49.90,"image":"","image_2":null,"category":"Roupas","sizes":["P","M"],"stock":3,"status":"active"}]`))
	})

	items, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 4990, items[0].PriceCents)
	require.True(t, c.Connected())
}

func TestInsertProductSendsDecimalAndPrefer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, 49.90, body["price"])
		require.Nil(t, body["image_2"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":7,"name":"Camiseta","price":49.90,"image":"","image_2":null,"category":"Roupas","sizes":[],"stock":3,"status":"active"}]`))
	})

	p, err := c.InsertProduct(context.Background(), ProductInput{Name: "Camiseta", PriceCents: 4990, Category: "Roupas", Stock: 3, Status: StatusActive})
	require.NoError(t, err)
	require.Equal(t, int64(7), p.ID)
}

func TestUpdateFiltersByID(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		gotQuery = r.URL.Query().Get("id")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.UpdateProductStatus(context.Background(), 42, StatusInactive))
	require.Equal(t, "eq.42", gotQuery)
}

func TestGetSettingsEmptyListIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	_, err := c.GetSettings(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	// o backend respondeu, então a conexão está de pé
	require.True(t, c.Connected())
}

func TestTransportFailureFlipsConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	c := NewRest(RestConfig{BaseURL: srv.URL, AnonKey: "k"})

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.True(t, c.Connected())

	srv.Close()
	_, err = c.ListProducts(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.False(t, c.Connected())
}

func TestDecrementCouponUsageRPC(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/rpc/decrement_coupon_usage", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "DEZ", body["p_coupon_code"])
		_, _ = w.Write([]byte(`true`))
	})

	ok, err := c.DecrementCouponUsage(context.Background(), "DEZ")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidateAdminLoginRPC(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/rpc/validate_admin_login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin", body["input_username"])
		_, _ = w.Write([]byte(`[{"id":1,"username":"admin","email":"","full_name":"Dona","is_active":true}]`))
	})

	users, err := c.ValidateAdminLogin(context.Background(), "admin", "segredo")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.True(t, users[0].IsActive)
}

func TestServerErrorKeepsBodySnippet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"permission denied"}`))
	})

	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "permission denied")
	require.Contains(t, err.Error(), "500")
}
