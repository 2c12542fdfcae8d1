package service

import (
	"context"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/auth"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() (*UserService, *repository.Memory) {
	mem := repository.NewMemory()
	return NewUserService(mem.Users, auth.NewIssuer("test-secret", time.Hour)), mem
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Name: " Asha ", Email: "Asha@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", reg.Name)
	assert.Equal(t, "asha@example.com", reg.Email)
	assert.Equal(t, float64(StartingWallet), reg.Wallet)
	assert.False(t, reg.IsAdmin)
	assert.NotEmpty(t, reg.Token)

	_, err = svc.Register(ctx, model.RegisterRequest{Name: "Other", Email: "asha@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	login, err := svc.Login(ctx, model.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, login.ID)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "asha@example.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	id, err := svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, id.UserID)
	assert.False(t, id.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	for _, req := range []model.RegisterRequest{
		{Name: "", Email: "a@b.co", Password: "secret1"},
		{Name: "A", Email: "not-an-email", Password: "secret1"},
		{Name: "A", Email: "a@b.co", Password: "short"},
	} {
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _ := newUserService()
	token, err := svc.tokens.Issue("ghost")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, model.RegisterRequest{Name: "Meera", Email: "meera@example.com", Password: "secret1"})
	require.NoError(t, err)

	upd, err := svc.UpdateProfile(ctx, reg.ID, model.UpdateProfileRequest{Name: "Ravi K", Password: "newsecret"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", upd.Name)
	assert.Equal(t, "ravi@example.com", upd.Email)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "ravi@example.com", Password: "newsecret"})
	assert.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, reg.ID, model.UpdateProfileRequest{Email: "meera@example.com"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestTopUp(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	wallet, err := svc.TopUp(ctx, reg.ID, 2500)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, wallet)

	_, err = svc.TopUp(ctx, reg.ID, -10)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.TopUp(ctx, reg.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "Admin@Hotel.com", "admin123", 1000000)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "Admin", "admin@hotel.com", "admin123", 1000000)
	require.NoError(t, err)
	assert.False(t, created)

	login, err := svc.Login(ctx, model.LoginRequest{Email: "admin@hotel.com", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, login.IsAdmin)

	id, err := svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.True(t, id.IsAdmin)
}
