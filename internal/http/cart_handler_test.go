package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/cart"
	httphandler "github.com/MasuRii/Luv-Charms-E-commerce/internal/http"
)

type memoryStorage struct {
	items []cart.LineItem
}

func (m *memoryStorage) Load(_ context.Context) ([]cart.LineItem, error) {
	out := make([]cart.LineItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryStorage) Save(_ context.Context, items []cart.LineItem) error {
	m.items = make([]cart.LineItem, len(items))
	copy(m.items, items)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newCartHandler(t *testing.T) *httphandler.CartHandler {
	t.Helper()
	manager := cart.NewManager(func(string) (cart.Storage, error) {
		return &memoryStorage{}, nil
	}, testLogger())
	return httphandler.NewCartHandler(manager)
}

type cartBody struct {
	Items         []cart.LineItem `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    float64         `json:"totalPrice"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func addItem(t *testing.T, handler *httphandler.CartHandler, session string, item map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(item)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/cart/"+session+"/items", bytes.NewReader(payload))
	r.SetPathValue("sessionId", session)
	w := httptest.NewRecorder()
	handler.AddItem(w, r)
	return w
}

func TestAddItem(t *testing.T) {
	handler := newCartHandler(t)

	w := addItem(t, handler, "s1", map[string]any{
		"id": "p1", "name": "Heart Charm", "price": 10.0, "image": "img-1", "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.TotalQuantity)
	assert.Equal(t, 20.0, body.TotalPrice)

	// Same product again merges instead of duplicating.
	w = addItem(t, handler, "s1", map[string]any{
		"id": "p1", "name": "Heart Charm", "price": 10.0, "quantity": 3,
	})
	body = decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 5, body.Items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	handler := newCartHandler(t)

	cases := []struct {
		name string
		item map[string]any
	}{
		{"missing id", map[string]any{"name": "x", "price": 1.0, "quantity": 1}},
		{"zero quantity", map[string]any{"id": "p1", "price": 1.0, "quantity": 0}},
		{"negative quantity", map[string]any{"id": "p1", "price": 1.0, "quantity": -2}},
		{"negative price", map[string]any{"id": "p1", "price": -1.0, "quantity": 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := addItem(t, handler, "s1", tc.item)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAddItemMissingSession(t *testing.T) {
	handler := newCartHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/cart//items", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	handler.AddItem(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	handler := newCartHandler(t)

	addItem(t, handler, "s1", map[string]any{"id": "p1", "name": "Heart Charm", "price": 10.0, "quantity": 1})

	r := httptest.NewRequest(http.MethodGet, "/api/cart/s2", nil)
	r.SetPathValue("sessionId", "s2")
	w := httptest.NewRecorder()
	handler.GetCart(w, r)

	body := decodeCart(t, w)
	assert.Empty(t, body.Items)
}

func TestRemoveItem(t *testing.T) {
	handler := newCartHandler(t)
	addItem(t, handler, "s1", map[string]any{"id": "p1", "name": "Heart Charm", "price": 10.0, "quantity": 1})
	addItem(t, handler, "s1", map[string]any{"id": "p2", "name": "Star Charm", "price": 15.0, "quantity": 2})

	r := httptest.NewRequest(http.MethodDelete, "/api/cart/s1/items/p1", nil)
	r.SetPathValue("sessionId", "s1")
	r.SetPathValue("productId", "p1")
	w := httptest.NewRecorder()
	handler.RemoveItem(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "p2", body.Items[0].ID)

	// Removing an id that is not there is still a 200 no-op.
	r = httptest.NewRequest(http.MethodDelete, "/api/cart/s1/items/ghost", nil)
	r.SetPathValue("sessionId", "s1")
	r.SetPathValue("productId", "ghost")
	w = httptest.NewRecorder()
	handler.RemoveItem(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCart(t, w).Items, 1)
}

func adjust(t *testing.T, handler *httphandler.CartHandler, session, productID, action string) *httptest.ResponseRecorder {
	t.Helper()
	payload := []byte(`{"action":"` + action + `"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/cart/"+session+"/items/"+productID+"/quantity", bytes.NewReader(payload))
	r.SetPathValue("sessionId", session)
	r.SetPathValue("productId", productID)
	w := httptest.NewRecorder()
	handler.AdjustQuantity(w, r)
	return w
}

func TestAdjustQuantity(t *testing.T) {
	handler := newCartHandler(t)
	addItem(t, handler, "s1", map[string]any{"id": "p1", "name": "Heart Charm", "price": 10.0, "quantity": 1})

	w := adjust(t, handler, "s1", "p1", "inc")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeCart(t, w).Items[0].Quantity)

	w = adjust(t, handler, "s1", "p1", "dec")
	assert.Equal(t, 1, decodeCart(t, w).Items[0].Quantity)

	// dec at quantity 1 drops the item.
	w = adjust(t, handler, "s1", "p1", "dec")
	assert.Empty(t, decodeCart(t, w).Items)
}

func TestAdjustQuantityUnknownAction(t *testing.T) {
	handler := newCartHandler(t)
	addItem(t, handler, "s1", map[string]any{"id": "p1", "name": "Heart Charm", "price": 10.0, "quantity": 1})

	w := adjust(t, handler, "s1", "p1", "double")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearCart(t *testing.T) {
	handler := newCartHandler(t)
	addItem(t, handler, "s1", map[string]any{"id": "p1", "name": "Heart Charm", "price": 10.0, "quantity": 3})

	r := httptest.NewRequest(http.MethodDelete, "/api/cart/s1", nil)
	r.SetPathValue("sessionId", "s1")
	w := httptest.NewRecorder()
	handler.ClearCart(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeCart(t, w)
	assert.Empty(t, body.Items)
	assert.Equal(t, 0, body.TotalQuantity)
	assert.Equal(t, 0.0, body.TotalPrice)
}

func TestNewCartHandlerNilManagerPanics(t *testing.T) {
	assert.Panics(t, func() {
		httphandler.NewCartHandler(nil)
	})
}
