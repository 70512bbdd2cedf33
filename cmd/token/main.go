package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/wordstash/api/internal/auth"
	"github.com/wordstash/api/internal/config"
)

// Prints an admin bearer token for the configured JWT secret.
func main() {
	subject := flag.String("subject", "admin", "Token subject, must be in ADMIN_SUBJECTS")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	token, err := auth.GenerateAdminToken(*subject, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
