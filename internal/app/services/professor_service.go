package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/auth"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	"github.com/emredk/scholaris/internal/pkg/helpers"
	"github.com/emredk/scholaris/internal/app/repositories"
)

// professorStore is the slice of the professor repository the service needs.
type professorStore interface {
	Create(ctx context.Context, professor *models.Professor) error
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	UserHasProfile(ctx context.Context, userID int64) (bool, error)
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id int64) (*models.Professor, error)
	List(ctx context.Context, offset, limit int) ([]*models.Professor, error)
	Count(ctx context.Context) (int64, error)
}

// userLookupStore resolves user accounts that profiles link to.
type userLookupStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// courseTitleStore resolves course titles for list population.
type courseTitleStore interface {
	GetTitlesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// ProfessorService handles professor profile management.
type ProfessorService struct {
	store  professorStore
	users  userLookupStore
	titles courseTitleStore
	roster *RosterService
	logger zerolog.Logger
}

// NewProfessorService creates a new ProfessorService
func NewProfessorService(
	store professorStore,
	users userLookupStore,
	titles courseTitleStore,
	roster *RosterService,
	logger zerolog.Logger,
) *ProfessorService {
	return &ProfessorService{
		store:  store,
		users:  users,
		titles: titles,
		roster: roster,
		logger: logger,
	}
}

// Create creates a professor profile for an existing user. A user may own at
// most one profile. The initial course list is written to both sides of the
// relationship; courses that do not exist are skipped.
func (s *ProfessorService) Create(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	hasProfile, err := s.store.UserHasProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if hasProfile {
		return nil, apperrors.ErrProfessorAlreadyExists
	}

	professor := &models.Professor{
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		OfficeLocation: req.OfficeLocation,
		CourseIDs:      req.Courses,
	}
	if err := s.store.Create(ctx, professor); err != nil {
		return nil, err
	}

	if len(professor.CourseIDs) > 0 {
		if err := s.roster.AttachCourses(ctx, SideProfessor, professor.ID, professor.CourseIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("professorId", professor.ID).Int64("userId", professor.UserID).Msg("Professor created")
	return professor, nil
}

// Get retrieves a professor by id
func (s *ProfessorService) Get(ctx context.Context, id int64) (*models.Professor, error) {
	return s.store.GetByID(ctx, id)
}

// Update applies a partial update. Only the linked user or an admin may
// update a profile. A present course list triggers a full roster
// reconciliation rather than a diff.
func (s *ProfessorService) Update(ctx context.Context, actor auth.Actor, id int64, req dto.UpdateProfessorRequest) (*models.Professor, error) {
	professor, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.Decide(auth.PolicySelfOrAdmin, actor, auth.Target{OwnerUserID: professor.UserID}); err != nil {
		return nil, err
	}

	if req.UserID != nil && *req.UserID != professor.UserID {
		if _, err := s.users.GetByID(ctx, *req.UserID); err != nil {
			return nil, err
		}
		hasProfile, err := s.store.UserHasProfile(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if hasProfile {
			return nil, apperrors.ErrProfessorAlreadyExists
		}
		professor.UserID = *req.UserID
	}
	if req.FirstName != nil {
		professor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		professor.LastName = *req.LastName
	}
	if req.OfficeLocation != nil {
		professor.OfficeLocation = req.OfficeLocation
	}

	if req.Courses == nil {
		if err := s.store.Update(ctx, professor); err != nil {
			return nil, err
		}
		return professor, nil
	}

	oldCourses := professor.CourseIDs
	professor.CourseIDs = *req.Courses
	err = s.roster.SyncCourses(ctx, SideProfessor, professor.ID, oldCourses, professor.CourseIDs,
		func(ctx context.Context, q repositories.Querier) error {
			return s.professorWriter(q).Update(ctx, professor)
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("professorId", professor.ID).Msg("Professor updated")
	return professor, nil
}

// professorWriter rebinds the store to the reconciliation's transaction when
// one is active.
func (s *ProfessorService) professorWriter(q repositories.Querier) professorStore {
	if q != nil {
		if r, ok := s.store.(interface {
			WithTx(q repositories.Querier) *repositories.ProfessorRepository
		}); ok {
			return r.WithTx(q)
		}
	}
	return s.store
}

// Delete removes a professor. With the default cascade policy the courses
// they taught keep the stale reference, which reads skip.
func (s *ProfessorService) Delete(ctx context.Context, id int64) (*models.Professor, error) {
	professor, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.roster.CascadeMemberDelete(ctx, SideProfessor, id); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("professorId", id).Msg("Professor deleted")
	return professor, nil
}

// List returns one page of professors with course references populated to
// {id, title}. References to courses that no longer exist are dropped.
func (s *ProfessorService) List(ctx context.Context, page, limit int) (*dto.ProfessorListResponse, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckPageBounds(total, page, limit); err != nil {
		return nil, err
	}

	professors, err := s.store.List(ctx, helpers.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	var courseIDs []int64
	for _, p := range professors {
		courseIDs = append(courseIDs, p.CourseIDs...)
	}
	titles, err := s.titles.GetTitlesByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProfessorListItem, 0, len(professors))
	for _, p := range professors {
		items = append(items, dto.ProfessorListItem{
			ID:             p.ID,
			UserID:         p.UserID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			OfficeLocation: p.OfficeLocation,
			Courses:        courseRefs(p.CourseIDs, titles),
		})
	}

	return &dto.ProfessorListResponse{
		Professors:     items,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// courseRefs projects course ids onto {id, title} pairs, skipping stale ids
func courseRefs(ids []int64, titles map[int64]string) []dto.CourseRef {
	refs := make([]dto.CourseRef, 0, len(ids))
	for _, id := range ids {
		title, ok := titles[id]
		if !ok {
			continue
		}
		refs = append(refs, dto.CourseRef{ID: id, Title: title})
	}
	return refs
}
