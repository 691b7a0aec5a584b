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

// studentStore is the slice of the student repository the service needs.
// Lookups and deletion are keyed by enrollment number, the public identifier
// of a student.
type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByEnrollmentNumber(ctx context.Context, enrollmentNumber string) (*models.Student, error)
	UserHasProfile(ctx context.Context, userID int64) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, enrollmentNumber string) (*models.Student, error)
	List(ctx context.Context, offset, limit int) ([]*models.Student, error)
	Count(ctx context.Context) (int64, error)
}

// StudentService handles student profile management.
type StudentService struct {
	store  studentStore
	users  userLookupStore
	titles courseTitleStore
	roster *RosterService
	logger zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	store studentStore,
	users userLookupStore,
	titles courseTitleStore,
	roster *RosterService,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		store:  store,
		users:  users,
		titles: titles,
		roster: roster,
		logger: logger,
	}
}

// Create creates a student profile for an existing user and assigns a fresh
// enrollment number. Uniqueness of the number is enforced only by the
// database constraint; a collision surfaces as an error without retrying.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	hasProfile, err := s.store.UserHasProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if hasProfile {
		return nil, apperrors.ErrStudentAlreadyExists
	}

	student := &models.Student{
		UserID:           req.UserID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		EnrollmentNumber: helpers.GenerateEnrollmentNumber(),
		DateOfBirth:      req.DateOfBirth,
		CourseIDs:        req.Courses,
	}
	if err := s.store.Create(ctx, student); err != nil {
		return nil, err
	}

	if len(student.CourseIDs) > 0 {
		if err := s.roster.AttachCourses(ctx, SideStudent, student.ID, student.CourseIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Str("enrollmentNumber", student.EnrollmentNumber).
		Msg("Student created")
	return student, nil
}

// Get retrieves a student by enrollment number
func (s *StudentService) Get(ctx context.Context, enrollmentNumber string) (*models.Student, error) {
	return s.store.GetByEnrollmentNumber(ctx, enrollmentNumber)
}

// Update applies a partial update to the student identified by enrollment
// number. Only the linked user or an admin may update a profile. A present
// course list triggers a full roster reconciliation.
func (s *StudentService) Update(ctx context.Context, actor auth.Actor, enrollmentNumber string, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.store.GetByEnrollmentNumber(ctx, enrollmentNumber)
	if err != nil {
		return nil, err
	}

	if err := auth.Decide(auth.PolicySelfOrAdmin, actor, auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, err
	}

	if req.UserID != nil && *req.UserID != student.UserID {
		if _, err := s.users.GetByID(ctx, *req.UserID); err != nil {
			return nil, err
		}
		hasProfile, err := s.store.UserHasProfile(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if hasProfile {
			return nil, apperrors.ErrStudentAlreadyExists
		}
		student.UserID = *req.UserID
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = req.DateOfBirth
	}

	if req.Courses == nil {
		if err := s.store.Update(ctx, student); err != nil {
			return nil, err
		}
		return student, nil
	}

	oldCourses := student.CourseIDs
	student.CourseIDs = *req.Courses
	err = s.roster.SyncCourses(ctx, SideStudent, student.ID, oldCourses, student.CourseIDs,
		func(ctx context.Context, q repositories.Querier) error {
			return s.studentWriter(q).Update(ctx, student)
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("enrollmentNumber", student.EnrollmentNumber).Msg("Student updated")
	return student, nil
}

func (s *StudentService) studentWriter(q repositories.Querier) studentStore {
	if q != nil {
		if r, ok := s.store.(interface {
			WithTx(q repositories.Querier) *repositories.StudentRepository
		}); ok {
			return r.WithTx(q)
		}
	}
	return s.store
}

// Delete removes a student by enrollment number. With the default cascade
// policy course rosters keep the stale reference, which reads skip.
func (s *StudentService) Delete(ctx context.Context, enrollmentNumber string) (*models.Student, error) {
	student, err := s.store.Delete(ctx, enrollmentNumber)
	if err != nil {
		return nil, err
	}

	if err := s.roster.CascadeMemberDelete(ctx, SideStudent, student.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("enrollmentNumber", enrollmentNumber).Msg("Student deleted")
	return student, nil
}

// List returns one page of students with course references populated to
// {id, title}. References to courses that no longer exist are dropped.
func (s *StudentService) List(ctx context.Context, page, limit int) (*dto.StudentListResponse, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckPageBounds(total, page, limit); err != nil {
		return nil, err
	}

	students, err := s.store.List(ctx, helpers.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	var courseIDs []int64
	for _, st := range students {
		courseIDs = append(courseIDs, st.CourseIDs...)
	}
	titles, err := s.titles.GetTitlesByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentListItem, 0, len(students))
	for _, st := range students {
		items = append(items, dto.StudentListItem{
			ID:               st.ID,
			UserID:           st.UserID,
			FirstName:        st.FirstName,
			LastName:         st.LastName,
			EnrollmentNumber: st.EnrollmentNumber,
			DateOfBirth:      st.DateOfBirth,
			Courses:          courseRefs(st.CourseIDs, titles),
		})
	}

	return &dto.StudentListResponse{
		Students:       items,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
