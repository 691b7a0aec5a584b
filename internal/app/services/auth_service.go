package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	"github.com/emredk/scholaris/internal/pkg/auth"
)

// userAccountStore is the slice of the user repository auth needs.
type userAccountStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// tokenIssuer issues signed session tokens.
type tokenIssuer interface {
	GenerateToken(userID int64, isAdmin bool) (token string, expiresIn int, err error)
}

// AuthService handles registration, login and admin account creation.
type AuthService struct {
	userStore userAccountStore
	tokens    tokenIssuer
	logger    zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore userAccountStore, tokens tokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userStore: userStore,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a regular user account. The admin flag can never be set
// through this path.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return s.createAccount(ctx, req.Username, req.Email, req.Password, false)
}

// CreateAdmin creates an account with the admin flag set. Authorization is
// decided by the caller.
func (s *AuthService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*models.User, error) {
	return s.createAccount(ctx, req.Username, req.Email, req.Password, true)
}

func (s *AuthService) createAccount(ctx context.Context, username, email, password string, isAdmin bool) (*models.User, error) {
	taken, err := s.userStore.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrUserAlreadyExists
	}

	taken, err = s.userStore.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		IsAdmin:  isAdmin,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userId", user.ID).
		Str("username", user.Username).
		Bool("isAdmin", user.IsAdmin).
		Msg("User account created")

	return user, nil
}

// Login verifies credentials and issues a session token. Unknown usernames
// and wrong passwords produce the same error so the response does not reveal
// which half failed.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userStore.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      dto.FromUser(user),
	}, nil
}
