// Package auth contains the business logic of authentication: login with
// device-dependent token lifetimes, token refresh, password change and the
// registration/confirmation workflow.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/NikolaMax/ticketing-backend/internal/lib/confirmid"
	"github.com/NikolaMax/ticketing-backend/internal/lib/device"
	"github.com/NikolaMax/ticketing-backend/internal/lib/jwt"
	"github.com/NikolaMax/ticketing-backend/internal/lib/password"
	"github.com/NikolaMax/ticketing-backend/internal/lib/sl"
	"github.com/NikolaMax/ticketing-backend/internal/models"
)

// Service errors, translated to HTTP statuses at the boundary.
var (
	// ErrInvalidCredentials covers unknown users, disabled accounts and
	// wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken marks tokens that fail signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotRefreshable marks tokens issued before the user's last
	// password reset.
	ErrNotRefreshable = errors.New("token is not refreshable")
	// ErrUserNotFound marks confirmation ids with no matching account.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository is the storage contract of the auth service.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EnableUser(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// ConfirmationSender delivers the registration confirmation link.
type ConfirmationSender interface {
	SendConfirmation(to, username, encodedID string) error
}

// TokenState is the login/refresh payload. A zero TokenState signals a
// refused refresh.
type TokenState struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	Role      string `json:"role"`
}

// Service implements the authentication flows.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	mailer   ConfirmationSender
	log      *slog.Logger
}

// NewService wires the auth service.
func NewService(users UserRepository, jwtMaker jwt.Maker, mailer ConfirmationSender, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		mailer:   mailer,
		log:      log,
	}
}

// Login verifies the credentials and issues a token whose lifetime depends
// on the caller's device class. Disabled accounts cannot log in.
func (s *Service) Login(ctx context.Context, username, rawPassword string, class device.Class) (*TokenState, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role.String(), class)
	if err != nil {
		return nil, err
	}
	return &TokenState{
		Token:     token,
		ExpiresIn: int64(s.jwtMaker.TTL(class).Seconds()),
		Role:      user.Role.String(),
	}, nil
}

// Refresh exchanges a valid token for a fresh one. A token issued before
// the user's last password reset is refused with ErrNotRefreshable.
func (s *Service) Refresh(ctx context.Context, rawToken string, class device.Class) (*TokenState, error) {
	claims, err := s.jwtMaker.ParseToken(rawToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !jwt.CanRefresh(claims, user.LastPasswordReset) {
		return nil, ErrNotRefreshable
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role.String(), class)
	if err != nil {
		return nil, err
	}
	return &TokenState{
		Token:     token,
		ExpiresIn: int64(s.jwtMaker.TTL(class).Seconds()),
		Role:      user.Role.String(),
	}, nil
}

// ChangePassword verifies the old password and stores a new hash. The
// repository bumps last_password_reset, so earlier tokens stop refreshing.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, username, hashed)
}

// Register creates a disabled account with the given role and sends the
// confirmation mail. A failed mail delivery does not undo the account; it
// is logged and the registration still succeeds.
func (s *Service) Register(ctx context.Context, reg models.Registration, role models.Role, imagePath string) (*models.User, error) {
	hashed, err := password.GetHash(reg.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hashed,
		Role:         role,
		Enabled:      false,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		ImagePath:    imagePath,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if err := s.mailer.SendConfirmation(user.Email, user.Username, confirmid.Encode(id)); err != nil {
		s.log.Error("failed to send confirmation mail",
			slog.String("username", user.Username), sl.Err(err))
	}
	return &user, nil
}

// Confirm decodes a confirmation-link id and enables the account. Any
// undecodable or unknown id yields ErrUserNotFound. Confirming an already
// enabled account succeeds again.
func (s *Service) Confirm(ctx context.Context, encodedID string) error {
	id, err := confirmid.Decode(encodedID)
	if err != nil {
		return ErrUserNotFound
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return ErrUserNotFound
	}
	return s.users.EnableUser(ctx, user.ID)
}
