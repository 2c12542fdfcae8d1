package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/google/uuid"
)

// RoomService manages the room catalog.
type RoomService struct {
	rooms RoomStore
}

// NewRoomService constructs a RoomService.
func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

// CreateRoom validates the request and delegates to the repository.
func (s *RoomService) CreateRoom(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.TrimSpace(req.Type)
	if req.Name == "" {
		return nil, invalid("room name is required")
	}
	if req.Type == "" {
		return nil, invalid("room type is required")
	}
	if !validPrice(req.Price) {
		return nil, invalid("price must be a positive amount")
	}
	return s.rooms.Create(ctx, req)
}

// ListRooms returns the whole catalog.
func (s *RoomService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.rooms.List(ctx)
}

// GetRoom returns a single room by ID.
func (s *RoomService) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrRoomNotFound
	}
	return s.rooms.GetByID(ctx, id)
}

// UpdateRoom applies a partial update.
func (s *RoomService) UpdateRoom(ctx context.Context, id string, req model.UpdateRoomRequest) (*model.Room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrRoomNotFound
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, invalid("room name cannot be empty")
	}
	if req.Type != nil && strings.TrimSpace(*req.Type) == "" {
		return nil, invalid("room type cannot be empty")
	}
	if req.Price != nil && !validPrice(*req.Price) {
		return nil, invalid("price must be a positive amount")
	}
	return s.rooms.Update(ctx, id, req)
}

// DeleteRoom removes a room from the catalog. Existing bookings stay but
// drop out of booking lists.
func (s *RoomService) DeleteRoom(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrRoomNotFound
	}
	return s.rooms.Delete(ctx, id)
}

// SeedDefaults loads DefaultRooms into an empty catalog.
func (s *RoomService) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.rooms.Seed(ctx, DefaultRooms)
	if err != nil {
		return 0, fmt.Errorf("seed rooms: %w", err)
	}
	return n, nil
}

// DefaultRooms is the starter catalog installed by the seed command.
var DefaultRooms = []model.CreateRoomRequest{
	{
		Name:        "Taj Lake Palace Suite",
		Type:        "Heritage Suite",
		Price:       35000,
		Description: "White marble palace suite on Lake Pichola with traditional Rajasthani decor, king-size bed and private butler service.",
		ImageURL:    "https://images.unsplash.com/photo-1566438480900-0609be27a4be?w=800&auto=format&fit=crop",
	},
	{
		Name:        "Kerala Houseboat Villa",
		Type:        "Houseboat Suite",
		Price:       18000,
		Description: "Traditional houseboat cruising the Alleppey backwaters, with a private deck and chef-prepared Kerala cuisine.",
		ImageURL:    "https://images.unsplash.com/photo-1590080552494-dcda852944ff?w=800&auto=format&fit=crop",
	},
	{
		Name:        "Himalayan Mountain Retreat",
		Type:        "Luxury Cottage",
		Price:       15000,
		Description: "Cottage facing snow-capped peaks, with handcrafted furniture, a fireplace and floor-to-ceiling windows.",
		ImageURL:    "https://images.unsplash.com/photo-1517840901100-8179e982acb7?w=800&auto=format&fit=crop",
	},
	{
		Name:        "Golden Triangle Haveli Room",
		Type:        "Heritage Double",
		Price:       12000,
		Description: "Restored haveli in Jaipur's old city with jharokha windows, painted murals and a private courtyard garden.",
		ImageURL:    "https://images.unsplash.com/photo-1566665797739-1674de7a421a?w=800&auto=format&fit=crop",
	},
	{
		Name:        "Mumbai Sea View Studio",
		Type:        "Premium Single",
		Price:       8000,
		Description: "Studio overlooking the Arabian Sea at Marine Drive, with a kitchenette and easy access to the business districts.",
		ImageURL:    "https://images.unsplash.com/photo-1595576508898-0ad5c879a061?w=800&auto=format&fit=crop",
	},
	{
		Name:        "Goa Beachfront Cottage",
		Type:        "Family Villa",
		Price:       20000,
		Description: "Family cottage steps from the beach, with a private garden, outdoor dining area and hammocks under palm trees.",
		ImageURL:    "https://images.unsplash.com/photo-1540541338287-41700207dee6?w=800&auto=format&fit=crop",
	},
	{
		Name:        "Mysore Palace View Suite",
		Type:        "Royal Suite",
		Price:       25000,
		Description: "Suite facing the illuminated Mysore Palace, with colonial furniture, a four-poster bed and a private balcony.",
		ImageURL:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800&auto=format&fit=crop",
	},
	{
		Name:        "Darjeeling Tea Estate Bungalow",
		Type:        "Heritage Villa",
		Price:       16000,
		Description: "Colonial bungalow among working tea gardens, with a veranda, English garden and tea tasting sessions.",
		ImageURL:    "https://images.unsplash.com/photo-1544161515-4ab6ce6db874?w=800&auto=format&fit=crop",
	},
}

// isNotFound reports whether err is any repository not-found error.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
