package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

const productProjection = `{_id, name, slug, price, images, "category": category->name, stockStatus, isFeatured, isPopular, _createdAt}`

// Client issues GROQ queries against a Sanity-compatible content API.
// Reads go through the CDN host by default; pass Fresh to hit the live
// API host instead (the equivalent of a no-store fetch).
type Client struct {
	apiURL    *url.URL
	cdnURL    *url.URL
	projectID string
	dataset   string
	token     string
	http      *http.Client
	log       *logrus.Entry
}

// QueryOptions controls a single read.
type QueryOptions struct {
	// Fresh bypasses the CDN and always returns current data.
	Fresh bool
}

func NewClient(projectID, dataset, apiVersion, token string, httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parse := func(host string) *url.URL {
		raw := fmt.Sprintf("https://%s.%s/v%s/data/query/%s", projectID, host, apiVersion, dataset)
		u, err := url.Parse(raw)
		if err != nil {
			// Fail fast: config error
			panic(fmt.Sprintf("invalid content api url %q: %v", raw, err))
		}
		return u
	}

	return &Client{
		apiURL:    parse("api.sanity.io"),
		cdnURL:    parse("apicdn.sanity.io"),
		projectID: projectID,
		dataset:   dataset,
		token:     token,
		http:      httpClient,
		log:       logrus.NewEntry(logger).WithField("component", "catalog"),
	}
}

// FeaturedProducts returns up to limit products ordered by popularity,
// featured flag, then newest first.
func (c *Client) FeaturedProducts(ctx context.Context, limit int, opts QueryOptions) ([]Product, error) {
	query := fmt.Sprintf(`*[_type == "product"] | order(isPopular desc, isFeatured desc, _createdAt desc) [0...$limit] %s`, productProjection)
	params := map[string]any{"limit": limit}

	var products []Product
	if err := c.fetch(ctx, query, params, opts, &products); err != nil {
		return nil, fmt.Errorf("fetch featured products: %w", err)
	}
	return products, nil
}

// ListProducts returns every product, most popular and newest first.
func (c *Client) ListProducts(ctx context.Context, opts QueryOptions) ([]Product, error) {
	query := fmt.Sprintf(`*[_type == "product"] | order(isPopular desc, isFeatured desc, _createdAt desc) %s`, productProjection)

	var products []Product
	if err := c.fetch(ctx, query, nil, opts, &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

// ProductBySlug returns the product with the given slug, or nil if no such
// product exists. Absence is a valid outcome, not an error.
func (c *Client) ProductBySlug(ctx context.Context, slug string, opts QueryOptions) (*Product, error) {
	query := fmt.Sprintf(`*[_type == "product" && slug.current == $slug][0] %s`, productProjection)
	params := map[string]any{"slug": slug}

	var product *Product
	if err := c.fetch(ctx, query, params, opts, &product); err != nil {
		return nil, fmt.Errorf("fetch product %q: %w", slug, err)
	}
	return product, nil
}

// SiteSettings returns the site settings document, or nil when none has
// been published yet.
func (c *Client) SiteSettings(ctx context.Context, opts QueryOptions) (*SiteSettings, error) {
	query := `*[_type == "siteSettings"][0] {title, featuredProductsLimit}`

	var settings *SiteSettings
	if err := c.fetch(ctx, query, nil, opts, &settings); err != nil {
		return nil, fmt.Errorf("fetch site settings: %w", err)
	}
	return settings, nil
}

func (c *Client) fetch(ctx context.Context, query string, params map[string]any, opts QueryOptions, out any) error {
	base := c.cdnURL
	if opts.Fresh {
		base = c.apiURL
	}

	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	u := *base
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("content fetch failed")
		return fmt.Errorf("content api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.WithField("status", resp.StatusCode).Warn("content fetch failed")
		return fmt.Errorf("content api status %d: %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	// A missing document comes back as a JSON null result.
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
