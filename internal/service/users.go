package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/auth"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
)

// StartingWallet is the balance every new account opens with.
const StartingWallet = 1000

const minPasswordLen = 6

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles accounts, sessions and wallet top-ups.
type UserService struct {
	users  UserStore
	tokens *auth.Issuer
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, tokens *auth.Issuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a guest account and signs it in.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !isValidEmail(email) {
		return nil, invalid("email is not a valid email address")
	}
	if len(req.Password) < minPasswordLen {
		return nil, invalid("password must be at least %d characters", minPasswordLen)
	}

	u, err := s.newUser(name, email, req.Password, false, StartingWallet)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *UserService) newUser(name, email, password string, admin bool, wallet float64) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
		Wallet:       wallet,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (s *UserService) session(u *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: *u, Token: token}, nil
}

// Login exchanges credentials for a token.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

// Authenticate resolves a bearer token to the identity of a live account.
// The admin flag is read from the account, not from the token.
func (s *UserService) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Identity{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return auth.Identity{}, auth.ErrInvalidToken
		}
		return auth.Identity{}, fmt.Errorf("authenticate: %w", err)
	}
	return auth.Identity{UserID: u.ID, IsAdmin: u.IsAdmin}, nil
}

// Profile returns the caller's account.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes name, email or password and re-issues the token.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.AuthResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" {
		if !isValidEmail(email) {
			return nil, invalid("email is not a valid email address")
		}
		u.Email = email
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLen {
			return nil, invalid("password must be at least %d characters", minPasswordLen)
		}
		if u.PasswordHash, err = auth.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.session(u)
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// TopUp adds amount to the caller's wallet and returns the new balance.
func (s *UserService) TopUp(ctx context.Context, userID string, amount float64) (float64, error) {
	if !validPrice(amount) {
		return 0, invalid("amount must be a positive number")
	}
	return s.users.Deposit(ctx, userID, amount)
}

// EnsureAdmin creates an administrator account unless the email is
// already registered. It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string, wallet float64) (bool, error) {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !isNotFound(err) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	u, err := s.newUser(name, email, password, true, wallet)
	if err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
