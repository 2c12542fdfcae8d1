// Command seed loads the default room catalog and the administrator
// account into PostgreSQL. Running it again changes nothing.
package main

import (
	"context"
	"log"
	"os"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/database"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/service"
)

const adminWallet = 1000000

func main() {
	ctx := context.Background()

	pool, err := database.NewPool(ctx, database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rooms := service.NewRoomService(repository.NewRoomRepository(pool))
	n, err := rooms.SeedDefaults(ctx)
	if err != nil {
		log.Fatalf("seed rooms: %v", err)
	}
	if n == 0 {
		log.Println("rooms already present, skipped")
	} else {
		log.Printf("✓ Inserted %d rooms", n)
	}

	// No tokens are issued here.
	users := service.NewUserService(repository.NewUserRepository(pool), nil)
	email := getEnv("ADMIN_EMAIL", "admin@hotel.com")
	created, err := users.EnsureAdmin(ctx, "Admin", email, getEnv("ADMIN_PASSWORD", "admin123"), adminWallet)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		log.Printf("✓ Created admin %s", email)
	} else {
		log.Printf("admin %s already exists, skipped", email)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
