package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/monngon/backend/internal/mailer"
	"github.com/monngon/backend/internal/push"
	"github.com/monngon/backend/internal/router"
	"github.com/monngon/backend/pkg/config"
	"github.com/monngon/backend/pkg/firebase"
	"github.com/monngon/backend/validators"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if cfg.Env == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()
	log.Println("Database connections established.")

	ctx := context.Background()
	fbApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	log.Println("Firebase initialized.")

	pushClient := push.NewClient(fbApp.MessagingClient, logger)
	mail := mailer.NewMailer(cfg)

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, router.Deps{
		Postgres:     db.Postgres,
		Mongo:        db.Mongo,
		FirebaseAuth: fbApp.AuthClient,
		Push:         pushClient,
		Mail:         mail,
		Logger:       logger,
		JWTSecret:    cfg.JWTSecret,
	})

	log.Printf("Starting server on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
