// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/auth"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/database"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/handler"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/service"
	"golang.org/x/sync/errgroup"
)

// stores bundles the persistence each service needs, so main can switch
// between Postgres and the in-memory driver.
type stores struct {
	rooms    service.RoomStore
	users    service.UserStore
	ledger   service.Ledger
	bookings service.BookingStore
	close    func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Open the store ─────────────────────────────────────────────────
	st, err := openStores(ctx, getEnv("STORE_DRIVER", "postgres"))
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.close()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "720h"))
	if err != nil {
		log.Fatalf("JWT_TTL: %v", err)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("JWT_SECRET not set, using an insecure development secret")
	}
	tokens := auth.NewIssuer(secret, ttl)

	roomSvc := service.NewRoomService(st.rooms)
	userSvc := service.NewUserService(st.users, tokens)
	bookingSvc := service.NewBookingService(st.rooms, st.ledger, st.bookings)

	if getEnv("STORE_DRIVER", "postgres") == "memory" {
		// Nothing persists between runs, so give the demo something to book.
		if err := seed(ctx, roomSvc, userSvc); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// ── 3. Build the router ───────────────────────────────────────────────
	r := handler.NewRouter(roomSvc, userSvc, bookingSvc)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("✓ Server listening on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Println("server stopped")
}

func openStores(ctx context.Context, driver string) (*stores, error) {
	switch driver {
	case "memory":
		mem := repository.NewMemory()
		log.Println("✓ Using in-memory store")
		return &stores{
			rooms:    mem.Rooms,
			users:    mem.Users,
			ledger:   mem.Users,
			bookings: mem.Bookings,
			close:    func() {},
		}, nil

	case "postgres":
		pool, err := database.NewPool(ctx, database.ConfigFromEnv())
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Println("✓ Connected to PostgreSQL")
		users := repository.NewUserRepository(pool)
		return &stores{
			rooms:    repository.NewRoomRepository(pool),
			users:    users,
			ledger:   users,
			bookings: repository.NewBookingRepository(pool),
			close:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q (want postgres or memory)", driver)
}

func seed(ctx context.Context, rooms *service.RoomService, users *service.UserService) error {
	n, err := rooms.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	created, err := users.EnsureAdmin(ctx, "Admin",
		getEnv("ADMIN_EMAIL", "admin@hotel.com"), getEnv("ADMIN_PASSWORD", "admin123"), 1000000)
	if err != nil {
		return err
	}
	log.Printf("✓ Seeded %d rooms, admin created: %t", n, created)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
