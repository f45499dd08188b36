package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/cart"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/order"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/share"
)

// OrderPublisher emits the checkout event when a broker is configured.
type OrderPublisher interface {
	PublishOrderSubmitted(ctx context.Context, sessionKey, referenceID, message string, items []cart.LineItem, total float64) error
}

type CheckoutHandler struct {
	carts      *cart.Manager
	formatter  *order.Formatter
	recipients share.Recipients
	phone      string
	publisher  OrderPublisher // nil when publishing is disabled
	log        *logrus.Logger
}

func NewCheckoutHandler(carts *cart.Manager, formatter *order.Formatter, recipients share.Recipients, phone string, publisher OrderPublisher, logger *logrus.Logger) *CheckoutHandler {
	if carts == nil || formatter == nil {
		panic("http: NewCheckoutHandler called with nil dependencies")
	}
	return &CheckoutHandler{
		carts:      carts,
		formatter:  formatter,
		recipients: recipients,
		phone:      phone,
		publisher:  publisher,
		log:        logger,
	}
}

type checkoutResponse struct {
	ReferenceID string      `json:"referenceId"`
	Message     string      `json:"message"`
	Links       share.Links `json:"links"`
	Phone       string      `json:"phone"`
}

// Checkout formats the session's cart into an order message, builds the
// outbound links, publishes the event when a broker is wired, and clears
// the cart. A publish failure does not fail the checkout; the shopper
// still gets the message and delivers it over the messaging links.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	items := s.Items()
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}
	total := s.TotalPrice()

	message, referenceID := h.formatter.Format(items, total)
	links := share.BuildLinks(message, h.recipients)

	if h.publisher != nil {
		if err := h.publisher.PublishOrderSubmitted(ctx, sessionID, referenceID, message, items, total); err != nil {
			h.log.WithError(err).Error("publish order submitted failed")
		}
	}

	s.Clear(ctx)

	writeJSON(w, http.StatusOK, checkoutResponse{
		ReferenceID: referenceID,
		Message:     message,
		Links:       links,
		Phone:       "tel:" + h.phone,
	})
}
