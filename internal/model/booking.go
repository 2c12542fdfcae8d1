package model

import (
	"fmt"
	"math"
	"time"
)

// PriceTolerance is the largest difference allowed between the price a
// client submits and the price computed from the room's nightly rate.
const PriceTolerance = 1.0

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// Booking is a reservation of one room by one user over [CheckInDate, CheckOutDate).
type Booking struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	RoomID       string        `json:"room_id"`
	CheckInDate  time.Time     `json:"check_in_date"`
	CheckOutDate time.Time     `json:"check_out_date"`
	TotalPrice   float64       `json:"total_price"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`

	// Resolved references, populated by list queries.
	Room *Room        `json:"room,omitempty"`
	User *UserSummary `json:"user,omitempty"`
}

// Overlaps reports whether the booking's stay intersects [checkIn, checkOut).
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut)
}

// Holds reports whether the booking still occupies its room.
func (b *Booking) Holds() bool {
	return b.Status != StatusRejected
}

// RefundFor returns the amount owed back to the guest when the booking
// moves to target. Only a pending booking that gets rejected is refunded.
func (b *Booking) RefundFor(target BookingStatus) float64 {
	if target == StatusRejected && b.Status == StatusPending {
		return b.TotalPrice
	}
	return 0
}

// Overlaps tests two half-open date ranges for intersection.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Nights returns the number of nights between check-in and check-out,
// rounding partial days up.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// StayPrice returns the price of a stay at the given nightly rate.
func StayPrice(nightly float64, checkIn, checkOut time.Time) float64 {
	return nightly * float64(Nights(checkIn, checkOut))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Add folds a group of bookings sharing one status into the totals.
// Rejected bookings are counted but earn no revenue and never check in.
func (s *BookingStats) Add(status BookingStatus, count int, revenue float64, checkIns int) {
	if s.StatusCounts == nil {
		s.StatusCounts = map[BookingStatus]int{}
	}
	s.TotalBookings += count
	s.StatusCounts[status] += count
	if status == StatusRejected {
		return
	}
	s.TotalRevenue += revenue
	s.TodayCheckIns += checkIns
}
