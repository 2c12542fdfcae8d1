package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
)

// Memory holds in-process stores that share one lock. It mirrors the
// Postgres repositories and is used by tests and STORE_DRIVER=memory.
type Memory struct {
	Rooms    *MemoryRoomRepository
	Users    *MemoryUserRepository
	Bookings *MemoryBookingRepository
}

// NewMemory returns empty in-memory stores.
func NewMemory() *Memory {
	db := &memoryDB{
		rooms:    map[string]model.Room{},
		users:    map[string]model.User{},
		bookings: map[string]memoryBooking{},
	}
	return &Memory{
		Rooms:    &MemoryRoomRepository{db: db},
		Users:    &MemoryUserRepository{db: db},
		Bookings: &MemoryBookingRepository{db: db},
	}
}

type memoryBooking struct {
	model.Booking
	seq int64
}

// memoryDB is guarded by a single mutex, so every operation is one
// critical section and multi-entity updates are atomic.
type memoryDB struct {
	mu       sync.Mutex
	rooms    map[string]model.Room
	users    map[string]model.User
	bookings map[string]memoryBooking
	seq      int64
}

func (db *memoryDB) next() int64 {
	db.seq++
	return db.seq
}

// MemoryRoomRepository is the in-memory room catalog.
type MemoryRoomRepository struct{ db *memoryDB }

func (r *MemoryRoomRepository) Create(_ context.Context, req model.CreateRoomRequest) (*model.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	room := newRoom(req)
	r.db.rooms[room.ID] = *room
	return room, nil
}

func (r *MemoryRoomRepository) List(_ context.Context) ([]model.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rooms := make([]model.Room, 0, len(r.db.rooms))
	for _, room := range r.db.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms, nil
}

func (r *MemoryRoomRepository) GetByID(_ context.Context, id string) (*model.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	room, ok := r.db.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return &room, nil
}

func (r *MemoryRoomRepository) Update(_ context.Context, id string, req model.UpdateRoomRequest) (*model.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	room, ok := r.db.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.ImageURL != nil {
		room.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		room.Available = *req.Available
	}
	r.db.rooms[id] = room
	return &room, nil
}

func (r *MemoryRoomRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.rooms[id]; !ok {
		return ErrRoomNotFound
	}
	delete(r.db.rooms, id)
	return nil
}

func (r *MemoryRoomRepository) Seed(_ context.Context, rooms []model.CreateRoomRequest) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if len(r.db.rooms) > 0 {
		return 0, nil
	}
	for _, req := range rooms {
		room := newRoom(req)
		r.db.rooms[room.ID] = *room
	}
	return len(rooms), nil
}

// MemoryUserRepository is the in-memory account and wallet store.
type MemoryUserRepository struct{ db *memoryDB }

func (r *MemoryUserRepository) emailTaken(email, exceptID string) bool {
	for _, u := range r.db.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *MemoryUserRepository) Create(_ context.Context, u *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.emailTaken(u.Email, "") {
		return ErrEmailTaken
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) List(_ context.Context) ([]model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	users := make([]model.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, u *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.users[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return ErrEmailTaken
	}
	stored.Name, stored.Email, stored.PasswordHash = u.Name, u.Email, u.PasswordHash
	r.db.users[u.ID] = stored
	return nil
}

func (r *MemoryUserRepository) Balance(_ context.Context, id string) (float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return 0, ErrUserNotFound
	}
	return u.Wallet, nil
}

func (r *MemoryUserRepository) Deposit(_ context.Context, id string, amount float64) (float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return 0, ErrUserNotFound
	}
	u.Wallet += amount
	r.db.users[id] = u
	return u.Wallet, nil
}

// MemoryBookingRepository is the in-memory booking store.
type MemoryBookingRepository struct{ db *memoryDB }

func (r *MemoryBookingRepository) overlapping(roomID string, checkIn, checkOut time.Time) []model.Booking {
	var out []model.Booking
	for _, b := range r.db.bookings {
		if b.RoomID == roomID && b.Holds() && b.Overlaps(checkIn, checkOut) {
			out = append(out, b.Booking)
		}
	}
	return out
}

func (r *MemoryBookingRepository) FindOverlapping(_ context.Context, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.overlapping(roomID, checkIn, checkOut), nil
}

// Create performs the same checks as BookingRepository.Create while
// holding the store lock.
func (r *MemoryBookingRepository) Create(_ context.Context, b model.Booking) (*model.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.rooms[b.RoomID]; !ok {
		return nil, ErrRoomNotFound
	}
	if len(r.overlapping(b.RoomID, b.CheckInDate, b.CheckOutDate)) > 0 {
		return nil, ErrRoomUnavailable
	}
	u, ok := r.db.users[b.UserID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if u.Wallet < b.TotalPrice {
		return nil, ErrInsufficientFunds
	}

	b.ID = uuid.New().String()
	b.Status = model.StatusPending
	b.CreatedAt = time.Now().UTC()
	r.db.bookings[b.ID] = memoryBooking{Booking: b, seq: r.db.next()}

	u.Wallet -= b.TotalPrice
	r.db.users[u.ID] = u
	return &b, nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id string) (*model.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b.Booking, nil
}

func (r *MemoryBookingRepository) ListByUser(_ context.Context, userID string) ([]model.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.resolved(func(b model.Booking) bool { return b.UserID == userID }), nil
}

func (r *MemoryBookingRepository) ListAll(_ context.Context) ([]model.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.resolved(func(model.Booking) bool { return true }), nil
}

// resolved returns matching bookings newest first, joined with their room
// and guest. Entries with a dangling reference are dropped.
func (r *MemoryBookingRepository) resolved(match func(model.Booking) bool) []model.Booking {
	var entries []memoryBooking
	for _, b := range r.db.bookings {
		if match(b.Booking) {
			entries = append(entries, b)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	var out []model.Booking
	for _, e := range entries {
		room, ok := r.db.rooms[e.RoomID]
		if !ok {
			continue
		}
		user, ok := r.db.users[e.UserID]
		if !ok {
			continue
		}
		b := e.Booking
		b.Room = &room
		b.User = &model.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		out = append(out, b)
	}
	return out
}

func (r *MemoryBookingRepository) UpdateStatus(_ context.Context, id string, status model.BookingStatus, guard func(*model.Booking) error) (*model.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if guard != nil {
		current := b.Booking
		if err := guard(&current); err != nil {
			return nil, err
		}
	}
	if refund := b.RefundFor(status); refund > 0 {
		u, ok := r.db.users[b.UserID]
		if !ok {
			return nil, ErrUserNotFound
		}
		u.Wallet += refund
		r.db.users[u.ID] = u
	}
	b.Status = status
	r.db.bookings[id] = b
	return &b.Booking, nil
}

func (r *MemoryBookingRepository) Stats(_ context.Context, today time.Time) (*model.BookingStats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stats := &model.BookingStats{StatusCounts: map[model.BookingStatus]int{}}
	tomorrow := today.Add(24 * time.Hour)
	for _, b := range r.db.bookings {
		checkIns := 0
		if !b.CheckInDate.Before(today) && b.CheckInDate.Before(tomorrow) {
			checkIns = 1
		}
		stats.Add(b.Status, 1, b.TotalPrice, checkIns)
	}
	return stats, nil
}
