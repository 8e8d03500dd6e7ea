package main

import (
	"debitcard-backend/config"
	"debitcard-backend/internal/api"
	"debitcard-backend/internal/database"
	"debitcard-backend/internal/events"
	"debitcard-backend/internal/services"
	"debitcard-backend/pkg/logger"
	"log"

	"go.uber.org/zap"
)

// @title debitcard-backend API
// @version 1.0
// @description Debit card directory and transaction ledger.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	if err := database.ConnectRedis(cfg); err != nil {
		logger.Log.Fatal("failed to connect redis", zap.Error(err))
	}

	publisher := events.NewPublisher(cfg.AMQPURL)
	events.SetPublisher(publisher)
	defer publisher.Close()

	services.SetCardIssuing(services.CardIssuing{
		BINPrefix:     cfg.CardBINPrefix,
		ValidityYears: cfg.CardValidityYears,
	})

	router := api.NewRouter(cfg)
	logger.Log.Info("server starting", zap.String("port", cfg.AppPort), zap.String("db_driver", cfg.DBDriver))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.Log.Fatal("failed to run server", zap.Error(err))
	}
}
