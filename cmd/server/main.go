package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homescape/server/config"
	"homescape/server/internal/api"
	"homescape/server/internal/catalog"
	"homescape/server/internal/enquiry"
	"homescape/server/internal/favorites"
	"homescape/server/internal/sms"
	"homescape/server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Load the static listing dataset
	logger.Infof("Loading dataset from: %s", cfg.Dataset.Path)
	cat, err := catalog.Load(cfg.Dataset.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load listing dataset")
	}

	// Pick the favorites persistence backend
	kv, closeKV, err := openStorage(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open favorites storage")
	}
	defer closeKV()

	favoritesStore := favorites.NewStore(kv, logger)
	favoritesStore.Subscribe(func() {
		logger.Debug("Favorites changed")
	})

	enquiryStore, err := enquiry.NewStore(cfg.Storage.EnquiryDBPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open enquiry store")
	}

	smsService := sms.NewService(sms.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	}, logger)
	if !smsService.IsConfigured() {
		logger.Warn("SMS gateway credentials not set; contact texts are disabled")
	}

	handler := api.NewHandler(cat, favoritesStore, enquiryStore, smsService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}

func openStorage(cfg *config.Config, logger *logrus.Logger) (storage.KV, func(), error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		kv, err := storage.NewSQLiteKV(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { kv.Close() }, nil
	case "file":
		kv, err := storage.NewFileKV(cfg.Storage.FilePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
