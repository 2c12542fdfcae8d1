package service

import (
	"context"
	"testing"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRoomCRUD(t *testing.T) {
	svc := NewRoomService(repository.NewMemory().Rooms)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, model.CreateRoomRequest{Name: " Garden Room ", Type: "Double", Price: 4500})
	require.NoError(t, err)
	assert.Equal(t, "Garden Room", room.Name)
	assert.True(t, room.Available)

	got, err := svc.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)

	upd, err := svc.UpdateRoom(ctx, room.ID, model.UpdateRoomRequest{Price: ptr(5000.0), Available: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, upd.Price)
	assert.False(t, upd.Available)
	assert.Equal(t, "Garden Room", upd.Name)

	require.NoError(t, svc.DeleteRoom(ctx, room.ID))
	_, err = svc.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
	assert.ErrorIs(t, svc.DeleteRoom(ctx, room.ID), repository.ErrRoomNotFound)
	assert.ErrorIs(t, svc.DeleteRoom(ctx, "nope"), repository.ErrRoomNotFound)
}

func TestRoomValidation(t *testing.T) {
	svc := NewRoomService(repository.NewMemory().Rooms)
	ctx := context.Background()

	for _, req := range []model.CreateRoomRequest{
		{Name: "", Type: "Double", Price: 10},
		{Name: "A", Type: " ", Price: 10},
		{Name: "A", Type: "Double", Price: 0},
		{Name: "A", Type: "Double", Price: -5},
	} {
		_, err := svc.CreateRoom(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
	}

	_, err := svc.UpdateRoom(ctx, uuid.New().String(), model.UpdateRoomRequest{Price: ptr(-1.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateRoom(ctx, uuid.New().String(), model.UpdateRoomRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestSeedDefaults(t *testing.T) {
	svc := NewRoomService(repository.NewMemory().Rooms)
	ctx := context.Background()

	n, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultRooms), n)

	n, err = svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	rooms, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, len(DefaultRooms))
}
