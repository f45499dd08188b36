package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/catalog"
)

// CatalogReader is the slice of the content client the handlers use.
type CatalogReader interface {
	FeaturedProducts(ctx context.Context, limit int, opts catalog.QueryOptions) ([]catalog.Product, error)
	ListProducts(ctx context.Context, opts catalog.QueryOptions) ([]catalog.Product, error)
	ProductBySlug(ctx context.Context, slug string, opts catalog.QueryOptions) (*catalog.Product, error)
	SiteSettings(ctx context.Context, opts catalog.QueryOptions) (*catalog.SiteSettings, error)
}

type CatalogHandler struct {
	reader          CatalogReader
	defaultTitle    string
	defaultFeatured int
	log             *logrus.Logger
}

func NewCatalogHandler(reader CatalogReader, defaultTitle string, defaultFeatured int, logger *logrus.Logger) *CatalogHandler {
	if reader == nil {
		panic("http: NewCatalogHandler called with nil reader")
	}
	return &CatalogHandler{
		reader:          reader,
		defaultTitle:    defaultTitle,
		defaultFeatured: defaultFeatured,
		log:             logger,
	}
}

// ListProducts serves the shop page: every product, always fresh, with a
// graceful empty list when the content store is unreachable.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := h.reader.ListProducts(ctx, catalog.QueryOptions{Fresh: true})
	if err != nil {
		h.log.WithError(err).Error("list products failed")
		products = nil
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// FeaturedProducts serves the home page selection, limited by site
// settings (falling back to the configured default).
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit := h.defaultFeatured
	if settings, err := h.reader.SiteSettings(ctx, catalog.QueryOptions{}); err != nil {
		h.log.WithError(err).Warn("site settings fetch failed, using default limit")
	} else if settings != nil && settings.FeaturedProductsLimit > 0 {
		limit = settings.FeaturedProductsLimit
	}

	products, err := h.reader.FeaturedProducts(ctx, limit, catalog.QueryOptions{})
	if err != nil {
		h.log.WithError(err).Error("featured products failed")
		products = nil
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct serves a product detail page by slug.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "missing slug")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := h.reader.ProductBySlug(ctx, slug, catalog.QueryOptions{Fresh: true})
	if err != nil {
		h.log.WithError(err).Error("get product failed")
		writeError(w, http.StatusBadGateway, "content store unavailable")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetSettings serves the site settings with configured fallbacks when the
// document is absent or the store is unreachable.
func (h *CatalogHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.reader.SiteSettings(ctx, catalog.QueryOptions{})
	if err != nil {
		h.log.WithError(err).Warn("site settings fetch failed, using defaults")
		settings = nil
	}
	if settings == nil {
		settings = &catalog.SiteSettings{
			Title:                 h.defaultTitle,
			FeaturedProductsLimit: h.defaultFeatured,
		}
	}
	writeJSON(w, http.StatusOK, settings)
}
