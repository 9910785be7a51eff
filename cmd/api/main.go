package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	app, err := NewApp(context.Background())
	if err != nil {
		log.Fatalf("Error initializing application: %v", err)
	}
	defer app.Close()

	app.SetupRoutes("/api/v1")

	if err := app.Start(); err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}
