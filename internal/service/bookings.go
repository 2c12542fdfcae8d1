package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/auth"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/google/uuid"
)

var (
	// ErrInvalidDateRange covers past check-ins, empty or inverted stays
	// and unparseable dates.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrPriceMismatch is returned when the client's total differs from
	// the nightly rate times the number of nights by more than
	// model.PriceTolerance.
	ErrPriceMismatch = errors.New("price calculation error, please try again")

	// ErrNotPending is returned when a guest cancels a booking that an
	// admin has already decided.
	ErrNotPending = errors.New("only pending bookings can be cancelled")

	// ErrForbidden is returned when a guest acts on another guest's booking.
	ErrForbidden = errors.New("booking belongs to another user")
)

// dateLayouts are tried in order when parsing check-in and check-out.
var dateLayouts = []string{time.DateOnly, time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Admission is a booking that passed every admission check and is ready
// to be stored. Booking.TotalPrice holds the server-computed price.
type Admission struct {
	Booking model.Booking
	Room    *model.Room
	Nights  int
}

// BookingService admits bookings and applies status transitions.
type BookingService struct {
	rooms    RoomCatalog
	ledger   Ledger
	bookings BookingStore
	now      func() time.Time
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(rooms RoomCatalog, ledger Ledger, bookings BookingStore) *BookingService {
	return &BookingService{rooms: rooms, ledger: ledger, bookings: bookings, now: time.Now}
}

func (s *BookingService) today() time.Time {
	return model.StartOfDay(s.now().UTC())
}

// Admit decides whether userID may book the room in req and at what
// price. It reads but never writes, so it is safe to retry. Checks run in
// a fixed order and the first failure is returned.
func (s *BookingService) Admit(ctx context.Context, userID string, req model.CreateBookingRequest) (*Admission, error) {
	// ── Step 1: Dates. ───────────────────────────────────────────────────
	checkIn, okIn := parseDate(req.CheckInDate)
	checkOut, okOut := parseDate(req.CheckOutDate)
	if !okIn || !okOut {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD or RFC 3339", ErrInvalidDateRange)
	}
	if checkIn.Before(s.today()) {
		return nil, fmt.Errorf("%w: check-in date cannot be in the past", ErrInvalidDateRange)
	}
	if !checkIn.Before(checkOut) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrInvalidDateRange)
	}

	// ── Step 2: Room. ────────────────────────────────────────────────────
	if _, err := uuid.Parse(req.RoomID); err != nil {
		return nil, repository.ErrRoomNotFound
	}
	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	// ── Step 3: Price. ───────────────────────────────────────────────────
	nights := model.Nights(checkIn, checkOut)
	expected := room.Price * float64(nights)
	if math.IsNaN(req.TotalPrice) || math.Abs(expected-req.TotalPrice) > model.PriceTolerance {
		return nil, ErrPriceMismatch
	}

	// ── Step 4: Solvency. ────────────────────────────────────────────────
	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	if balance < req.TotalPrice {
		return nil, repository.ErrInsufficientFunds
	}

	// ── Step 5: Availability. ────────────────────────────────────────────
	clash, err := s.bookings.FindOverlapping(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if len(clash) > 0 {
		return nil, repository.ErrRoomUnavailable
	}

	return &Admission{
		Booking: model.Booking{
			UserID:       userID,
			RoomID:       room.ID,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			TotalPrice:   expected,
		},
		Room:   room,
		Nights: nights,
	}, nil
}

// CreateBooking admits the request, then stores the booking as pending
// and debits the wallet in one step. The store repeats the availability
// and balance checks under a per-room lock, so a concurrent request that
// passed admission for the same nights fails here with
// repository.ErrRoomUnavailable.
func (s *BookingService) CreateBooking(ctx context.Context, userID string, req model.CreateBookingRequest) (*model.Booking, error) {
	adm, err := s.Admit(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.Create(ctx, adm.Booking)
	if err != nil {
		if errors.Is(err, repository.ErrRoomUnavailable) ||
			errors.Is(err, repository.ErrInsufficientFunds) ||
			errors.Is(err, repository.ErrRoomNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	b.Room = adm.Room
	return b, nil
}

// GetBooking returns one booking to its owner or to an admin.
func (s *BookingService) GetBooking(ctx context.Context, caller auth.Identity, bookingID string) (*model.Booking, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, repository.ErrBookingNotFound
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && b.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListUserBookings returns the user's bookings, newest first.
func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListAllBookings returns every booking, newest first.
func (s *BookingService) ListAllBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// SetStatus is the admin transition to approved or rejected. Rejecting a
// pending booking refunds its price; nothing else touches the wallet.
// The previous status is otherwise not checked.
func (s *BookingService) SetStatus(ctx context.Context, bookingID string, status model.BookingStatus) (*model.Booking, error) {
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, invalid("status must be %q or %q", model.StatusApproved, model.StatusRejected)
	}
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, repository.ErrBookingNotFound
	}
	return s.bookings.UpdateStatus(ctx, bookingID, status, nil)
}

// Cancel lets a guest withdraw their own pending booking. It is recorded
// as rejected and refunded.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, repository.ErrBookingNotFound
	}
	return s.bookings.UpdateStatus(ctx, bookingID, model.StatusRejected, func(b *model.Booking) error {
		if b.UserID != userID {
			return ErrForbidden
		}
		if b.Status != model.StatusPending {
			return ErrNotPending
		}
		return nil
	})
}

// Stats summarises all bookings for the admin dashboard.
func (s *BookingService) Stats(ctx context.Context) (*model.BookingStats, error) {
	return s.bookings.Stats(ctx, s.today())
}
