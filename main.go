// main.go
package main

import (
	"log"

	"forfly/cmd"
	"forfly/internal/data/repository"
	"forfly/internal/notify"
	"forfly/internal/wire"
	"forfly/pkg/database"
	"forfly/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories (loads the flight catalog)
	repos, err := repository.NewRepository(db, config, logger)
	if err != nil {
		logger.Fatal("Failed to initialize repositories", zap.Error(err))
	}

	// Confirmation email dispatcher
	mailer := notify.NewSMTPMailer(config.Email)
	dispatcher := notify.NewDispatcher(mailer, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, dispatcher, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
