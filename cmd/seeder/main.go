package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/perkola/ty-fighter/internal/database"
	"github.com/perkola/ty-fighter/internal/identity"
	"github.com/perkola/ty-fighter/internal/texts"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "ty-fighter.db",
		"MIGRATIONS_DIR":    "./migrations",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	inserted, err := texts.Seed(ctx, db)
	if err != nil {
		log.Fatalf("Failed to seed texts: %s", err)
	}
	log.Info("Race texts ready", "inserted", inserted)

	// A couple of demo guests so history endpoints have something to show
	// against a fresh database.
	identityStore := identity.New(db)
	for _, guestID := range []string{"demo-1", "demo-2"} {
		user, err := identityStore.GetOrCreate(ctx, guestID)
		if err != nil {
			log.Fatalf("Failed to create demo guest %s: %s", guestID, err)
		}
		log.Info("Demo guest ready", "guestId", user.GuestID, "displayName", user.DisplayName)
	}

	log.Info("Seeding complete.")
}
