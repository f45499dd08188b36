package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/cart"
)

type CartHandler struct {
	carts *cart.Manager
}

func NewCartHandler(carts *cart.Manager) *CartHandler {
	if carts == nil {
		panic("http: NewCartHandler called with nil cart manager")
	}
	return &CartHandler{carts: carts}
}

type cartResponse struct {
	Items         []cart.LineItem `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    float64         `json:"totalPrice"`
}

func snapshot(s *cart.Store) cartResponse {
	items := s.Items()
	if items == nil {
		items = []cart.LineItem{}
	}
	return cartResponse{
		Items:         items,
		TotalQuantity: s.TotalQuantity(),
		TotalPrice:    s.TotalPrice(),
	}
}

func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, context.Context, context.CancelFunc, bool) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return nil, nil, nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)

	s, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		cancel()
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return nil, nil, nil, false
	}
	return s, ctx, cancel, true
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, _, cancel, ok := h.store(w, r)
	if !ok {
		return
	}
	defer cancel()

	writeJSON(w, http.StatusOK, snapshot(s))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ctx, cancel, ok := h.store(w, r)
	if !ok {
		return
	}
	defer cancel()

	var body struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Image    string  `json:"image"`
		Quantity int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ID == "" {
		writeError(w, http.StatusBadRequest, "missing product id")
		return
	}
	if body.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if body.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	s.Add(ctx, cart.Product{ID: body.ID, Name: body.Name, Price: body.Price, Image: body.Image}, body.Quantity)
	writeJSON(w, http.StatusOK, snapshot(s))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ctx, cancel, ok := h.store(w, r)
	if !ok {
		return
	}
	defer cancel()

	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	s.Remove(ctx, productID)
	writeJSON(w, http.StatusOK, snapshot(s))
}

func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	s, ctx, cancel, ok := h.store(w, r)
	if !ok {
		return
	}
	defer cancel()

	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	switch body.Action {
	case "inc":
		s.AdjustQuantity(ctx, productID, cart.Increment)
	case "dec":
		s.AdjustQuantity(ctx, productID, cart.Decrement)
	default:
		writeError(w, http.StatusBadRequest, "action must be inc or dec")
		return
	}

	writeJSON(w, http.StatusOK, snapshot(s))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ctx, cancel, ok := h.store(w, r)
	if !ok {
		return
	}
	defer cancel()

	s.Clear(ctx)
	writeJSON(w, http.StatusOK, snapshot(s))
}
