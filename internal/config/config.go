package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting for the storefront service. Values are
// read from the environment with the STOREFRONT_ prefix, e.g.
// STOREFRONT_PORT, STOREFRONT_SANITY_PROJECT_ID.
type Config struct {
	Port string `default:"8080"`

	// Content API (Sanity-compatible).
	SanityProjectID  string `split_words:"true"`
	SanityDataset    string `split_words:"true" default:"production"`
	SanityAPIVersion string `envconfig:"SANITY_API_VERSION" default:"2025-12-04"`
	SanityToken      string `split_words:"true"`

	// Cart persistence. When CartDSN is set the Postgres backend is used,
	// otherwise snapshots are written as JSON files under CartDataDir.
	CartDSN     string `envconfig:"CART_DB_DSN"`
	CartDataDir string `split_words:"true" default:"./data"`

	// Optional checkout event publishing. Requires CartDSN for sequences.
	RabbitURL string `envconfig:"RABBITMQ_URL"`

	// Checkout recipients. Empty values fall back to generic links.
	WhatsAppNumber    string `envconfig:"WHATSAPP_NUMBER"`
	MessengerUsername string `split_words:"true"`
	ContactPhone      string `split_words:"true" default:"+639264163675"`

	SiteTitle             string `split_words:"true" default:"Luv's Charms"`
	FeaturedProductsLimit int    `split_words:"true" default:"5"`
	CurrencySymbol        string `split_words:"true" default:"₱"`

	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`

	LogJSON bool `split_words:"true" default:"false"`
}

// Load populates Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("storefront", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	if cfg.FeaturedProductsLimit < 1 {
		cfg.FeaturedProductsLimit = 1
	}
	return cfg, nil
}
