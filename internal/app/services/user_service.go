package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/auth"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	pkgauth "github.com/emredk/scholaris/internal/pkg/auth"
	"github.com/emredk/scholaris/internal/pkg/helpers"
)

// userStore is the slice of the user repository the user service needs.
type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// UserService handles account management after registration.
type UserService struct {
	userStore userStore
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore userStore, logger zerolog.Logger) *UserService {
	return &UserService{
		userStore: userStore,
		logger:    logger,
	}
}

// Update applies an account update. Only the requester themselves or an
// admin may update an account, and only username, email and password are
// copyable from the request.
func (s *UserService) Update(ctx context.Context, actor auth.Actor, id int64, req dto.UpdateUserRequest) (*models.User, error) {
	if err := auth.Decide(auth.PolicySelfOrAdmin, actor, auth.Target{OwnerUserID: id}); err != nil {
		if apperrors.Is(err, apperrors.ErrAccessDenied) {
			return nil, apperrors.ErrCannotUpdateOtherUser
		}
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.userStore.UsernameExists(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrUserAlreadyExists
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.userStore.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrUserAlreadyExists
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := pkgauth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User account updated")
	return user, nil
}

// Delete removes an account. Admin accounts can never be deleted.
func (s *UserService) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Decide(auth.PolicyAdminDeleteUser, actor, auth.Target{OwnerUserID: id, IsAdmin: user.IsAdmin}); err != nil {
		return err
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", id).Msg("User account deleted")
	return nil
}

// List returns one page of user accounts.
func (s *UserService) List(ctx context.Context, page, limit int) (*dto.UserListResponse, error) {
	total, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckPageBounds(total, page, limit); err != nil {
		return nil, err
	}

	users, err := s.userStore.List(ctx, helpers.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.FromUser(u))
	}

	return &dto.UserListResponse{
		Users:          items,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
