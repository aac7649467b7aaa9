package mockapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupServer(t *testing.T, seed []catalog.Product, cfg Config) http.Handler {
	t.Helper()
	return NewServer(cfg, NewStore(seed), quietLogger()).Handler()
}

func noLimit() Config {
	cfg := DefaultConfig()
	cfg.RPS = 0
	return cfg
}

func seedProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Caneca", Description: "Cerâmica", Category: "Cozinha", Price: 19.9, PictureURL: "a.png"},
		{ID: 5, Name: "Mochila", Description: "Lona", Category: "Acessórios", Price: 129, PictureURL: "b.png"},
	}
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func validDraft() catalog.Draft {
	return catalog.Draft{
		Name:        "Garrafa",
		Description: "Inox",
		Price:       59.9,
		Category:    "Cozinha",
		PictureURL:  "c.png",
	}
}

func TestListProducts(t *testing.T) {
	h := setupServer(t, seedProducts(), noLimit())

	rr := doRequest(t, h, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got []catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, seedProducts(), got)
}

func TestListProducts_Empty(t *testing.T) {
	h := setupServer(t, nil, noLimit())

	rr := doRequest(t, h, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetProduct(t *testing.T) {
	h := setupServer(t, seedProducts(), noLimit())

	rr := doRequest(t, h, http.MethodGet, "/products/5", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Mochila", got.Name)

	for _, path := range []string{"/products/2", "/products/abc", "/products/-1"} {
		rr := doRequest(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestCreateProduct_AssignsNextID(t *testing.T) {
	h := setupServer(t, seedProducts(), noLimit())

	rr := doRequest(t, h, http.MethodPost, "/products", validDraft())
	require.Equal(t, http.StatusCreated, rr.Code)

	var created catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, 6, created.ID)
	assert.Equal(t, "Garrafa", created.Name)

	rr = doRequest(t, h, http.MethodGet, "/products", nil)
	var all []catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, 6, all[2].ID, "new products are listed last")
}

func TestCreateProduct_FirstIDIsOne(t *testing.T) {
	h := setupServer(t, nil, noLimit())

	rr := doRequest(t, h, http.MethodPost, "/products", validDraft())
	require.Equal(t, http.StatusCreated, rr.Code)

	var created catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
}

func TestCreateProduct_Invalid(t *testing.T) {
	h := setupServer(t, nil, noLimit())

	draft := validDraft()
	draft.Name = ""
	draft.Price = 0
	rr := doRequest(t, h, http.MethodPost, "/products", draft)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var payload jsonError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, "validation_error", payload.Error)
	assert.Contains(t, payload.Details, "name")
	assert.Contains(t, payload.Details, "price")

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("{"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReplaceAndDeleteProduct(t *testing.T) {
	h := setupServer(t, seedProducts(), noLimit())

	draft := validDraft()
	rr := doRequest(t, h, http.MethodPut, "/products/1", draft)
	require.Equal(t, http.StatusOK, rr.Code)

	var replaced catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &replaced))
	assert.Equal(t, 1, replaced.ID)
	assert.Equal(t, "Garrafa", replaced.Name)

	rr = doRequest(t, h, http.MethodPut, "/products/99", draft)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, h, http.MethodDelete, "/products/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = doRequest(t, h, http.MethodDelete, "/products/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, h, http.MethodGet, "/products/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealthAndRequestID(t *testing.T) {
	h := setupServer(t, seedProducts(), noLimit())

	rr := doRequest(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.EqualValues(t, 2, payload["products"])
}

func TestUnknownRoute(t *testing.T) {
	h := setupServer(t, nil, noLimit())

	rr := doRequest(t, h, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, h, http.MethodPatch, "/products/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RPS = 0.001
	cfg.Burst = 2
	h := setupServer(t, nil, cfg)

	assert.Equal(t, http.StatusOK, doRequest(t, h, http.MethodGet, "/products", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, h, http.MethodGet, "/products", nil).Code)

	rr := doRequest(t, h, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	content := `{"products": [
		{"id": 3, "name": "A", "price": 1},
		{"name": "B", "price": 2},
		{"id": 3, "name": "C", "price": 3}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	products, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, 3, products[0].ID)
	assert.Equal(t, 4, products[1].ID)
	assert.Equal(t, 5, products[2].ID, "duplicate ids are reassigned")

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestStoreReset_ServedInSeedOrder(t *testing.T) {
	store := NewStore(seedProducts())
	h := NewServer(noLimit(), store, quietLogger()).Handler()

	reloaded := []catalog.Product{
		{ID: 9, Name: "Vaso", Description: "Barro", Category: "Casa", Price: 45, PictureURL: "v.png"},
		{ID: 3, Name: "Tapete", Description: "Sisal", Category: "Casa", Price: 210, PictureURL: "t.png"},
	}
	store.Reset(reloaded)

	rr := doRequest(t, h, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got []catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, reloaded, got)

	_, found := store.Get(1)
	assert.False(t, found, "products missing from the new seed are gone")
	assert.Equal(t, 10, doCreate(t, h).ID, "ids continue after the reloaded max")
}

func doCreate(t *testing.T, h http.Handler) catalog.Product {
	t.Helper()
	rr := doRequest(t, h, http.MethodPost, "/products", validDraft())
	require.Equal(t, http.StatusCreated, rr.Code)
	var p catalog.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}
