package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/database"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// newTestPool connects to TEST_DATABASE_URL and resets the schema.
// Tests that need it are skipped when the variable is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE bookings, rooms, users`)
	require.NoError(t, err)
	return pool
}

func createPgGuest(t *testing.T, users *UserRepository, wallet float64) *model.User {
	t.Helper()
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         "Guest",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
		Wallet:       wallet,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestPostgresBookingLifecycle(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	rooms := NewRoomRepository(pool)
	users := NewUserRepository(pool)
	bookings := NewBookingRepository(pool)

	guest := createPgGuest(t, users, 5000)
	room, err := rooms.Create(ctx, model.CreateRoomRequest{Name: "Suite", Type: "Deluxe", Price: 1000})
	require.NoError(t, err)

	b, err := bookings.Create(ctx, model.Booking{
		UserID: guest.ID, RoomID: room.ID,
		CheckInDate: date(1, 10), CheckOutDate: date(1, 13), TotalPrice: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, b.Status)

	balance, err := users.Balance(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, balance)

	clash, err := bookings.FindOverlapping(ctx, room.ID, date(1, 12), date(1, 18))
	require.NoError(t, err)
	assert.Len(t, clash, 1)
	clash, err = bookings.FindOverlapping(ctx, room.ID, date(1, 13), date(1, 18))
	require.NoError(t, err)
	assert.Empty(t, clash)

	_, err = bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: date(1, 11), CheckOutDate: date(1, 12), TotalPrice: 1000})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	_, err = bookings.UpdateStatus(ctx, b.ID, model.StatusRejected, nil)
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(ctx, b.ID, model.StatusRejected, nil)
	require.NoError(t, err)
	balance, err = users.Balance(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, balance)

	_, err = bookings.UpdateStatus(ctx, uuid.New().String(), model.StatusApproved, nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestPostgresListSkipsDeletedRooms(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	rooms := NewRoomRepository(pool)
	users := NewUserRepository(pool)
	bookings := NewBookingRepository(pool)

	guest := createPgGuest(t, users, 10000)
	kept, err := rooms.Create(ctx, model.CreateRoomRequest{Name: "Kept", Type: "T", Price: 1000})
	require.NoError(t, err)
	gone, err := rooms.Create(ctx, model.CreateRoomRequest{Name: "Gone", Type: "T", Price: 1000})
	require.NoError(t, err)

	_, err = bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: kept.ID, CheckInDate: date(2, 1), CheckOutDate: date(2, 2), TotalPrice: 1000})
	require.NoError(t, err)
	_, err = bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: gone.ID, CheckInDate: date(2, 1), CheckOutDate: date(2, 2), TotalPrice: 1000})
	require.NoError(t, err)
	require.NoError(t, rooms.Delete(ctx, gone.ID))

	list, err := bookings.ListByUser(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kept", list[0].Room.Name)
}

func TestPostgresConcurrentBookingsSameRoom(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	rooms := NewRoomRepository(pool)
	users := NewUserRepository(pool)
	bookings := NewBookingRepository(pool)

	room, err := rooms.Create(ctx, model.CreateRoomRequest{Name: "Suite", Type: "Deluxe", Price: 1000})
	require.NoError(t, err)

	const guests = 10
	var g errgroup.Group
	results := make([]model.BookingResult, guests)
	for i := range guests {
		u := createPgGuest(t, users, 2000)
		g.Go(func() error {
			_, err := bookings.Create(ctx, model.Booking{
				UserID: u.ID, RoomID: room.ID,
				CheckInDate: date(3, 1), CheckOutDate: date(3, 3), TotalPrice: 2000,
			})
			results[i] = model.BookingResult{UserID: u.ID, Success: err == nil, Error: err}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	wins := 0
	for _, res := range results {
		if res.Success {
			wins++
		} else {
			assert.ErrorIs(t, res.Error, ErrRoomUnavailable)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestPostgresUsersAndSeed(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	rooms := NewRoomRepository(pool)
	users := NewUserRepository(pool)

	u := createPgGuest(t, users, 0)
	dup := *u
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, users.Create(ctx, &dup), ErrEmailTaken)

	wallet, err := users.Deposit(ctx, u.ID, 750)
	require.NoError(t, err)
	assert.Equal(t, 750.0, wallet)

	seed := []model.CreateRoomRequest{{Name: "A", Type: "T", Price: 1}, {Name: "B", Type: "T", Price: 2}}
	n, err := rooms.Seed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = rooms.Seed(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, n)
}
