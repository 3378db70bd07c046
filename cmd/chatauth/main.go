package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/morsalin101/chat-app/internal/app"
	"github.com/morsalin101/chat-app/internal/config"
)

func main() {
	// .env is optional; deployments use real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
