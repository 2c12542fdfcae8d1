package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/service"
	"github.com/go-chi/chi/v5"
)

// RoomHandler serves the room catalog.
type RoomHandler struct {
	svc *service.RoomService
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// List handles GET /api/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.ListRooms(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list rooms")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if rooms == nil {
		rooms = []model.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// Get handles GET /api/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.svc.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to get room")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// Create handles POST /api/rooms (admin)
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	room, err := h.svc.CreateRoom(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to create room")
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

// Update handles PUT /api/rooms/{id} (admin)
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateRoomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	room, err := h.svc.UpdateRoom(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to update room")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// Delete handles DELETE /api/rooms/{id} (admin)
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "failed to delete room")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "room removed"})
}
