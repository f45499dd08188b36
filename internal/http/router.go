package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/middleware"
)

// RouterDeps collects everything the router wires into handlers.
type RouterDeps struct {
	Catalog     *CatalogHandler
	Cart        *CartHandler
	Checkout    *CheckoutHandler
	Prefs       *PrefsHandler
	CORSOrigins []string
	Logger      *logrus.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler)

	mux.HandleFunc("GET /api/products", deps.Catalog.ListProducts)
	mux.HandleFunc("GET /api/products/featured", deps.Catalog.FeaturedProducts)
	mux.HandleFunc("GET /api/products/{slug}", deps.Catalog.GetProduct)
	mux.HandleFunc("GET /api/settings", deps.Catalog.GetSettings)

	mux.HandleFunc("GET /api/cart/{sessionId}", deps.Cart.GetCart)
	mux.HandleFunc("POST /api/cart/{sessionId}/items", deps.Cart.AddItem)
	mux.HandleFunc("DELETE /api/cart/{sessionId}/items/{productId}", deps.Cart.RemoveItem)
	mux.HandleFunc("POST /api/cart/{sessionId}/items/{productId}/quantity", deps.Cart.AdjustQuantity)
	mux.HandleFunc("DELETE /api/cart/{sessionId}", deps.Cart.ClearCart)
	mux.HandleFunc("POST /api/cart/{sessionId}/checkout", deps.Checkout.Checkout)

	mux.HandleFunc("GET /api/preferences/{sessionId}", deps.Prefs.GetPreferences)
	mux.HandleFunc("PUT /api/preferences/{sessionId}", deps.Prefs.PutPreferences)

	var handler http.Handler = mux
	handler = middleware.CORS(deps.CORSOrigins)(handler)
	handler = middleware.Recover(deps.Logger)(handler)
	handler = middleware.CorrelationID(handler)
	return handler
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "service": "storefront"}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
