package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/eth-jashan/ai-restaurant-pos/internal/infrastructure/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}

	if err := database.RunMigrations(migrationsPath); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	log.Println("Migrations applied successfully")
}
