package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `b.id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.total_price, b.status, b.created_at`

func bookingDest(b *model.Booking) []any {
	return []any{&b.ID, &b.UserID, &b.RoomID, &b.CheckInDate, &b.CheckOutDate, &b.TotalPrice, &b.Status, &b.CreatedAt}
}

// BookingRepository handles persistence for bookings and the wallet
// settlement that goes with them.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// FindOverlapping returns the non-rejected bookings of a room whose stay
// intersects [checkIn, checkOut).
func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	return findOverlapping(ctx, r.db, roomID, checkIn, checkOut)
}

func findOverlapping(ctx context.Context, q querier, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	rows, err := q.Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.room_id = $1
		   AND b.status <> 'rejected'
		   AND b.check_in_date < $3
		   AND b.check_out_date > $2`,
		roomID, checkIn, checkOut,
	)
	if err != nil {
		return nil, fmt.Errorf("find overlapping: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(bookingDest(&b)...); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Create persists an admitted booking as pending and debits the guest's
// wallet, both inside one transaction.
//
// ─────────────────────────────────────────────────────────────────────────────
// DOUBLE BOOKING
// ─────────────────────────────────────────────────────────────────────────────
//
// The admission check reads the room's bookings before this insert runs.
// Two requests for overlapping dates can both pass it:
//
//	request A: overlap query for room X → none
//	request B: overlap query for room X → none
//	request A: INSERT booking, debit wallet
//	request B: INSERT booking, debit wallet
//	Result: two guests hold room X for the same night.
//
// Locking the room row with SELECT … FOR UPDATE serialises inserts per
// room. The overlap query is re-run under the lock, so the loser of the
// race sees the winner's committed booking and gets ErrRoomUnavailable.
// The user row is locked the same way so concurrent debits from one
// wallet cannot both read the old balance.
// ─────────────────────────────────────────────────────────────────────────────
func (r *BookingRepository) Create(ctx context.Context, b model.Booking) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// ── Step 1: Lock the room. ────────────────────────────────────────────
	var roomID string
	err = tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, b.RoomID).Scan(&roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("lock room row: %w", err)
	}

	// ── Step 2: Re-check availability under the lock. ─────────────────────
	clash, err := findOverlapping(ctx, tx, b.RoomID, b.CheckInDate, b.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if len(clash) > 0 {
		return nil, ErrRoomUnavailable
	}

	// ── Step 3: Lock the wallet and re-check the balance. ─────────────────
	var wallet float64
	err = tx.QueryRow(ctx, `SELECT wallet FROM users WHERE id = $1 FOR UPDATE`, b.UserID).Scan(&wallet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user row: %w", err)
	}
	if wallet < b.TotalPrice {
		return nil, ErrInsufficientFunds
	}

	// ── Step 4: Insert the booking. ───────────────────────────────────────
	b.ID = uuid.New().String()
	b.Status = model.StatusPending
	b.CreatedAt = time.Now().UTC()
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, user_id, room_id, check_in_date, check_out_date, total_price, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.UserID, b.RoomID, b.CheckInDate, b.CheckOutDate, b.TotalPrice, b.Status, b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	// ── Step 5: Debit the wallet. ─────────────────────────────────────────
	_, err = tx.Exec(ctx, `UPDATE users SET wallet = wallet - $2 WHERE id = $1`, b.UserID, b.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("debit wallet: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &b, nil
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1`, id,
	).Scan(bookingDest(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// ListByUser returns the user's bookings newest first, each with its room.
// Bookings whose room has been deleted are skipped.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return r.listResolved(ctx, `WHERE b.user_id = $1`, userID)
}

// ListAll returns every booking newest first, each with its room and guest.
func (r *BookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.listResolved(ctx, ``)
}

func (r *BookingRepository) listResolved(ctx context.Context, where string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+`,
		        r.id, r.name, r.type, r.price, r.description, r.image_url, r.available, r.created_at,
		        u.id, u.name, u.email
		 FROM bookings b
		 JOIN rooms r ON r.id = b.room_id
		 JOIN users u ON u.id = b.user_id
		 `+where+`
		 ORDER BY b.created_at DESC, b.id DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var (
			b    model.Booking
			room model.Room
			user model.UserSummary
		)
		dest := append(bookingDest(&b),
			&room.ID, &room.Name, &room.Type, &room.Price, &room.Description, &room.ImageURL, &room.Available, &room.CreatedAt,
			&user.ID, &user.Name, &user.Email,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Room = &room
		b.User = &user
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus writes the new status and, when a pending booking is
// rejected, credits its price back to the guest in the same transaction.
// Without a guard any status may overwrite any other; only the refund
// depends on the previous state. A non-nil guard runs against the locked
// row and aborts the update when it returns an error.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus, guard func(*model.Booking) error) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var b model.Booking
	err = tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1 FOR UPDATE`, id,
	).Scan(bookingDest(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lock booking row: %w", err)
	}
	if guard != nil {
		if err := guard(&b); err != nil {
			return nil, err
		}
	}

	if refund := b.RefundFor(status); refund > 0 {
		tag, err := tx.Exec(ctx, `UPDATE users SET wallet = wallet + $2 WHERE id = $1`, b.UserID, refund)
		if err != nil {
			return nil, fmt.Errorf("refund wallet: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, ErrUserNotFound
		}
	}

	if _, err = tx.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	b.Status = status
	return &b, nil
}

// Stats aggregates all bookings for the admin dashboard. today is the
// start of the current day; check-ins on [today, today+24h) are counted.
func (r *BookingRepository) Stats(ctx context.Context, today time.Time) (*model.BookingStats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status,
		        COUNT(*),
		        COALESCE(SUM(total_price), 0),
		        COUNT(*) FILTER (WHERE check_in_date >= $1 AND check_in_date < $2)
		 FROM bookings
		 GROUP BY status`,
		today, today.Add(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	defer rows.Close()

	stats := &model.BookingStats{StatusCounts: map[model.BookingStatus]int{}}
	for rows.Next() {
		var (
			status  model.BookingStatus
			count   int
			revenue float64
			todays  int
		)
		if err := rows.Scan(&status, &count, &revenue, &todays); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats.Add(status, count, revenue, todays)
	}
	return stats, rows.Err()
}
