package main

import (
	"payment_point/internal/config" // Custom import path (Config)
	"payment_point/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN()) // Run schema migration and seed data
}
