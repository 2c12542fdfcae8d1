package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/service"
	"github.com/go-chi/chi/v5"
)

// BookingHandler serves booking creation and the status workflow.
type BookingHandler struct {
	svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Create handles POST /api/bookings
// Admits the request, stores it as pending and debits the caller's wallet.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	b, err := h.svc.CreateBooking(r.Context(), identity(r).UserID, req)
	if err != nil {
		writeServiceError(w, r, err, "failed to create booking")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Get handles GET /api/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBooking(r.Context(), identity(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to get booking")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// ListMine handles GET /api/bookings/my
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListUserBookings(r.Context(), identity(r).UserID)
	if err != nil {
		writeServiceError(w, r, err, "failed to list bookings")
		return
	}
	writeBookings(w, bookings)
}

// ListAll handles GET /api/bookings (admin)
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListAllBookings(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list bookings")
		return
	}
	writeBookings(w, bookings)
}

func writeBookings(w http.ResponseWriter, bookings []model.Booking) {
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// SetStatus handles PUT /api/bookings/{id}/status (admin)
func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	b, err := h.svc.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err, "failed to update booking")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Cancel handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Cancel(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to cancel booking")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Stats handles GET /api/bookings/stats (admin)
func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
