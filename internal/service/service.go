// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
)

// ErrInvalidInput wraps every request validation failure.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// RoomStore is the room catalog persistence used by RoomService.
type RoomStore interface {
	Create(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	GetByID(ctx context.Context, id string) (*model.Room, error)
	Update(ctx context.Context, id string, req model.UpdateRoomRequest) (*model.Room, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, rooms []model.CreateRoomRequest) (int, error)
}

// UserStore is the account persistence used by UserService.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Deposit(ctx context.Context, id string, amount float64) (float64, error)
}

// RoomCatalog resolves rooms for the admission check.
type RoomCatalog interface {
	GetByID(ctx context.Context, id string) (*model.Room, error)
}

// Ledger reads wallet balances for the admission check.
type Ledger interface {
	Balance(ctx context.Context, userID string) (float64, error)
}

// BookingStore persists bookings. Create and UpdateStatus also settle the
// guest's wallet atomically with the booking write.
type BookingStore interface {
	Create(ctx context.Context, b model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus, guard func(*model.Booking) error) (*model.Booking, error)
	Stats(ctx context.Context, today time.Time) (*model.BookingStats, error)
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
