package main

import (
	"context"
	stdhttp "net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/cart"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/catalog"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/config"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/db"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/events"
	httpserver "github.com/MasuRii/Luv-Charms-E-commerce/internal/http"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/order"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/prefs"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/share"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	if cfg.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	var (
		cartFactory  cart.StorageFactory
		prefsFactory httpserver.PrefsStorageFactory
		publisher    httpserver.OrderPublisher
	)

	if cfg.CartDSN != "" {
		if err := db.RunMigrations(cfg.CartDSN, logger); err != nil {
			logger.WithError(err).Fatal("run migrations")
		}

		database, err := db.Open(cfg.CartDSN)
		if err != nil {
			logger.WithError(err).Fatal("open cart database")
		}
		defer database.Close()

		cartFactory = func(sessionKey string) (cart.Storage, error) {
			return cart.NewPostgresStorage(database, sessionKey), nil
		}
		prefsFactory = func(sessionKey string) (prefs.Storage, error) {
			return prefs.NewPostgresStorage(database, sessionKey), nil
		}

		if cfg.RabbitURL != "" {
			conn, err := events.Dial(cfg.RabbitURL)
			if err != nil {
				logger.WithError(err).Fatal("connect to broker")
			}
			defer conn.Close()

			pub, err := events.NewPublisher(conn, events.NewSequenceRepository(database))
			if err != nil {
				logger.WithError(err).Fatal("create order publisher")
			}
			defer pub.Close()
			publisher = pub
		}
	} else {
		if cfg.RabbitURL != "" {
			logger.Warn("RABBITMQ_URL set without CART_DB_DSN, event publishing disabled")
		}
		cartFactory = func(sessionKey string) (cart.Storage, error) {
			return cart.NewFileStorage(filepath.Join(cfg.CartDataDir, sessionKey))
		}
		prefsFactory = func(sessionKey string) (prefs.Storage, error) {
			return prefs.NewFileStorage(filepath.Join(cfg.CartDataDir, sessionKey))
		}
	}

	content := catalog.NewClient(cfg.SanityProjectID, cfg.SanityDataset, cfg.SanityAPIVersion, cfg.SanityToken, &stdhttp.Client{Timeout: 10 * time.Second}, logger)
	carts := cart.NewManager(cartFactory, logger)
	formatter := order.NewFormatter(order.Options{
		ShopName:       cfg.SiteTitle,
		CurrencySymbol: cfg.CurrencySymbol,
	})
	recipients := share.Recipients{
		WhatsAppNumber:    cfg.WhatsAppNumber,
		MessengerUsername: cfg.MessengerUsername,
	}

	handler := httpserver.NewRouter(httpserver.RouterDeps{
		Catalog:     httpserver.NewCatalogHandler(content, cfg.SiteTitle, cfg.FeaturedProductsLimit, logger),
		Cart:        httpserver.NewCartHandler(carts),
		Checkout:    httpserver.NewCheckoutHandler(carts, formatter, recipients, cfg.ContactPhone, publisher, logger),
		Prefs:       httpserver.NewPrefsHandler(prefsFactory, logger),
		CORSOrigins: cfg.CORSAllowOrigins,
		Logger:      logger,
	})

	srv := &stdhttp.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("storefront listening")
		if err := srv.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.WithError(err).Fatal("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown error")
	}
}
