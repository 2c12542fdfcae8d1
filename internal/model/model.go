// Package model defines the core domain types for the hotel booking system.
package model

import "time"

// Room is a bookable hotel room in the catalog.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is a registered guest or administrator. Wallet is the balance
// settled by booking creation and rejection.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	Wallet       float64   `json:"wallet"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the public slice of a User embedded in admin booking views.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateRoomRequest is the payload for adding a room to the catalog.
type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// UpdateRoomRequest is a partial room update; nil fields are left unchanged.
type UpdateRoomRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Available   *bool    `json:"available"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest changes the caller's profile. Empty fields are ignored.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// WalletRequest tops up the caller's wallet by Amount.
type WalletRequest struct {
	Amount float64 `json:"amount"`
}

// WalletResponse reports the balance after a top-up.
type WalletResponse struct {
	Wallet float64 `json:"wallet"`
}

// AuthResponse is returned by register, login and profile updates.
type AuthResponse struct {
	User
	Token string `json:"token,omitempty"`
}

// CreateBookingRequest is the payload for reserving a room. Dates are
// YYYY-MM-DD or RFC 3339; TotalPrice is the price the client computed.
type CreateBookingRequest struct {
	RoomID       string  `json:"room_id"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	TotalPrice   float64 `json:"total_price"`
}

// UpdateStatusRequest is the admin payload for approving or rejecting a booking.
type UpdateStatusRequest struct {
	Status BookingStatus `json:"status"`
}

// BookingStats summarises all bookings for the admin dashboard.
type BookingStats struct {
	TotalBookings int                   `json:"total_bookings"`
	TotalRevenue  float64               `json:"total_revenue"`
	StatusCounts  map[BookingStatus]int `json:"status_counts"`
	TodayCheckIns int                   `json:"today_check_ins"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BookingResult summarises the outcome of a single booking attempt.
// Used in the concurrent test harness.
type BookingResult struct {
	UserID  string
	Success bool
	Error   error
}
