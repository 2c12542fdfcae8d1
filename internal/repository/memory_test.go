package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func date(month time.Month, d int) time.Time {
	return time.Date(2031, month, d, 0, 0, 0, 0, time.UTC)
}

func seedGuest(t *testing.T, m *Memory, wallet float64) *model.User {
	t.Helper()
	u := &model.User{
		ID:        uuid.New().String(),
		Name:      "Guest",
		Email:     uuid.New().String() + "@example.com",
		Wallet:    wallet,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, m.Users.Create(context.Background(), u))
	return u
}

func seedRoom(t *testing.T, m *Memory, price float64) *model.Room {
	t.Helper()
	room, err := m.Rooms.Create(context.Background(), model.CreateRoomRequest{Name: "Suite", Type: "Deluxe", Price: price})
	require.NoError(t, err)
	return room
}

func TestMemoryBookingCreateDebitsWallet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	guest := seedGuest(t, m, 5000)
	room := seedRoom(t, m, 1000)

	b, err := m.Bookings.Create(ctx, model.Booking{
		UserID: guest.ID, RoomID: room.ID,
		CheckInDate: date(1, 10), CheckOutDate: date(1, 13), TotalPrice: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	balance, err := m.Users.Balance(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, balance)
}

func TestMemoryBookingCreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	guest := seedGuest(t, m, 100000)
	room := seedRoom(t, m, 1000)

	_, err := m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: date(1, 10), CheckOutDate: date(1, 15), TotalPrice: 5000})
	require.NoError(t, err)

	_, err = m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: date(1, 12), CheckOutDate: date(1, 18), TotalPrice: 6000})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	_, err = m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: date(1, 15), CheckOutDate: date(1, 20), TotalPrice: 5000})
	assert.NoError(t, err)

	balance, err := m.Users.Balance(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 90000.0, balance)
}

func TestMemoryRejectedBookingFreesRoom(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	guest := seedGuest(t, m, 10000)
	room := seedRoom(t, m, 1000)

	b, err := m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: date(2, 1), CheckOutDate: date(2, 3), TotalPrice: 2000})
	require.NoError(t, err)
	_, err = m.Bookings.UpdateStatus(ctx, b.ID, model.StatusRejected, nil)
	require.NoError(t, err)

	clash, err := m.Bookings.FindOverlapping(ctx, room.ID, date(2, 1), date(2, 3))
	require.NoError(t, err)
	assert.Empty(t, clash)
}

func TestMemoryUpdateStatusRefundsOnce(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	guest := seedGuest(t, m, 3000)
	room := seedRoom(t, m, 1000)

	b, err := m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: date(3, 1), CheckOutDate: date(3, 4), TotalPrice: 3000})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := m.Bookings.UpdateStatus(ctx, b.ID, model.StatusRejected, nil)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, got.Status)
	}
	balance, err := m.Users.Balance(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, balance)

	_, err = m.Bookings.UpdateStatus(ctx, "missing", model.StatusApproved, nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListSkipsDeletedRooms(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	guest := seedGuest(t, m, 10000)
	kept := seedRoom(t, m, 1000)
	gone := seedRoom(t, m, 1000)

	first, err := m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: kept.ID, CheckInDate: date(4, 1), CheckOutDate: date(4, 2), TotalPrice: 1000})
	require.NoError(t, err)
	_, err = m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: gone.ID, CheckInDate: date(4, 1), CheckOutDate: date(4, 2), TotalPrice: 1000})
	require.NoError(t, err)
	second, err := m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: kept.ID, CheckInDate: date(5, 1), CheckOutDate: date(5, 2), TotalPrice: 1000})
	require.NoError(t, err)

	require.NoError(t, m.Rooms.Delete(ctx, gone.ID))

	list, err := m.Bookings.ListByUser(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)
	require.NotNil(t, list[0].Room)
	assert.Equal(t, kept.ID, list[0].Room.ID)

	all, err := m.Bookings.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].User)
	assert.Equal(t, guest.Email, all[0].User.Email)
}

func TestMemorySeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rooms := []model.CreateRoomRequest{{Name: "A", Type: "T", Price: 1}, {Name: "B", Type: "T", Price: 2}}

	n, err := m.Rooms.Seed(ctx, rooms)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = m.Rooms.Seed(ctx, rooms)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := m.Rooms.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemoryUserEmailUnique(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := seedGuest(t, m, 0)

	dup := *u
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, m.Users.Create(ctx, &dup), ErrEmailTaken)

	wallet, err := m.Users.Deposit(ctx, u.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 250.0, wallet)
}

// TestMemoryConcurrentBookingsSameRoom races many guests for the same
// nights; exactly one may win.
func TestMemoryConcurrentBookingsSameRoom(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	room := seedRoom(t, m, 1000)

	const guests = 25
	users := make([]*model.User, guests)
	for i := range users {
		users[i] = seedGuest(t, m, 2000)
	}

	results := make([]model.BookingResult, guests)
	var g errgroup.Group
	for i, u := range users {
		g.Go(func() error {
			_, err := m.Bookings.Create(ctx, model.Booking{
				UserID: u.ID, RoomID: room.ID,
				CheckInDate: date(6, 1), CheckOutDate: date(6, 3), TotalPrice: 2000,
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
			continue
		}
		assert.True(t, errors.Is(res.Error, ErrRoomUnavailable), "unexpected error: %v", res.Error)
	}
	assert.Equal(t, 1, wins)

	debited := 0
	for _, u := range users {
		balance, err := m.Users.Balance(ctx, u.ID)
		require.NoError(t, err)
		if balance == 0 {
			debited++
		}
	}
	assert.Equal(t, 1, debited)
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	guest := seedGuest(t, m, 100000)
	room := seedRoom(t, m, 1000)

	today := date(7, 10)
	a, err := m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: today, CheckOutDate: date(7, 12), TotalPrice: 2000})
	require.NoError(t, err)
	b, err := m.Bookings.Create(ctx, model.Booking{UserID: guest.ID, RoomID: room.ID, CheckInDate: date(7, 20), CheckOutDate: date(7, 21), TotalPrice: 1000})
	require.NoError(t, err)
	_, err = m.Bookings.UpdateStatus(ctx, a.ID, model.StatusApproved, nil)
	require.NoError(t, err)
	_, err = m.Bookings.UpdateStatus(ctx, b.ID, model.StatusRejected, nil)
	require.NoError(t, err)

	stats, err := m.Bookings.Stats(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 2000.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.TodayCheckIns)
	assert.Equal(t, 1, stats.StatusCounts[model.StatusApproved])
	assert.Equal(t, 1, stats.StatusCounts[model.StatusRejected])
}
