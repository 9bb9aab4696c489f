package main

import (
	"log"

	"auth-service/internal/config"
	"auth-service/internal/server"
)

func main() {
	cfg := config.Load()

	if err := server.Run(cfg); err != nil {
		log.Fatalf("auth service: %v", err)
	}
}
