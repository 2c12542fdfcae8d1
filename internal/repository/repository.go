// Package repository implements all database queries for the hotel booking system.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

var (
	ErrRoomNotFound    = fmt.Errorf("room %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
)

// ErrRoomUnavailable is returned when a non-rejected booking already
// holds the room for part of the requested stay.
var ErrRoomUnavailable = errors.New("room is already booked for the selected dates")

// ErrInsufficientFunds is returned when the wallet cannot cover a booking.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// ErrEmailTaken is returned when an account with the same email exists.
var ErrEmailTaken = errors.New("user already exists")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const roomColumns = `id, name, type, price, description, image_url, available, created_at`

func scanRoom(row pgx.Row, r *model.Room) error {
	return row.Scan(&r.ID, &r.Name, &r.Type, &r.Price, &r.Description, &r.ImageURL, &r.Available, &r.CreatedAt)
}

// RoomRepository handles persistence for the room catalog.
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository constructs a RoomRepository.
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a new room and returns it with a generated UUID.
func (r *RoomRepository) Create(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error) {
	room := newRoom(req)
	_, err := r.db.Exec(ctx,
		`INSERT INTO rooms (`+roomColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		room.ID, room.Name, room.Type, room.Price, room.Description, room.ImageURL, room.Available, room.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return room, nil
}

func newRoom(req model.CreateRoomRequest) *model.Room {
	return &model.Room{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   true,
		CreatedAt:   time.Now().UTC(),
	}
}

// List returns all rooms in the order they were added.
func (r *RoomRepository) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var room model.Room
		if err := scanRoom(rows, &room); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// GetByID returns a single room or ErrRoomNotFound.
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id), &room)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// Update applies the non-nil fields of req and returns the updated room.
func (r *RoomRepository) Update(ctx context.Context, id string, req model.UpdateRoomRequest) (*model.Room, error) {
	var room model.Room
	err := scanRoom(r.db.QueryRow(ctx,
		`UPDATE rooms SET
		    name        = COALESCE($2, name),
		    type        = COALESCE($3, type),
		    price       = COALESCE($4, price),
		    description = COALESCE($5, description),
		    image_url   = COALESCE($6, image_url),
		    available   = COALESCE($7, available)
		 WHERE id = $1
		 RETURNING `+roomColumns,
		id, req.Name, req.Type, req.Price, req.Description, req.ImageURL, req.Available,
	), &room)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("update room: %w", err)
	}
	return &room, nil
}

// Delete removes a room. Bookings that referenced it are kept.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Seed inserts rooms only when the catalog is empty and reports how many
// were inserted. The table lock makes concurrent seeds insert once.
func (r *RoomRepository) Seed(ctx context.Context, rooms []model.CreateRoomRequest) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE rooms IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("lock rooms: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, req := range rooms {
		room := newRoom(req)
		batch.Queue(
			`INSERT INTO rooms (`+roomColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			room.ID, room.Name, room.Type, room.Price, room.Description, room.ImageURL, room.Available, room.CreatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert seed rooms: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(rooms), nil
}
