package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/insightdelivered/rib-extractor/internal/api"
	"github.com/insightdelivered/rib-extractor/internal/config"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	app := api.NewApp()

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("rib-extractor API v%s listening on %s", api.Version, addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
