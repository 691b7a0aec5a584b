package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	"github.com/emredk/scholaris/internal/pkg/helpers"
	"github.com/emredk/scholaris/internal/app/repositories"
)

// courseStore is the slice of the course repository the service needs.
type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, offset, limit int) ([]*models.Course, error)
	Count(ctx context.Context) (int64, error)
	CourseLoad(ctx context.Context) ([]repositories.CourseLoadRow, error)
	DepartmentLoad(ctx context.Context) ([]repositories.DepartmentLoadRow, error)
}

// memberNameStore resolves display names for list population.
type memberNameStore interface {
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// CourseService handles course management and reporting.
type CourseService struct {
	store          courseStore
	professorNames memberNameStore
	studentNames   memberNameStore
	roster         *RosterService
	logger         zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	store courseStore,
	professorNames memberNameStore,
	studentNames memberNameStore,
	roster *RosterService,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		store:          store,
		professorNames: professorNames,
		studentNames:   studentNames,
		roster:         roster,
		logger:         logger,
	}
}

// Create creates a course. Titles are unique. The initial rosters are linked
// back onto the referenced people; people that do not exist are skipped.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	exists, err := s.store.TitleExists(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCourseAlreadyExists
	}

	course := &models.Course{
		Title:        req.Title,
		Department:   req.Department,
		Capacity:     req.Capacity,
		ProfessorIDs: req.Professors,
		StudentIDs:   req.Students,
	}
	if err := s.store.Create(ctx, course); err != nil {
		return nil, err
	}

	if len(course.ProfessorIDs) > 0 || len(course.StudentIDs) > 0 {
		if err := s.roster.AttachMembers(ctx, course.ID, course.ProfessorIDs, course.StudentIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("courseId", course.ID).Str("title", course.Title).Msg("Course created")
	return course, nil
}

// Get retrieves a course by id
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	return s.store.GetByID(ctx, id)
}

// Update applies a partial update. Present professor or student lists
// trigger a full roster reconciliation of both sides.
func (s *CourseService) Update(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != course.Title {
		exists, err := s.store.TitleExists(ctx, *req.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		course.Title = *req.Title
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}

	if req.Professors == nil && req.Students == nil {
		if err := s.store.Update(ctx, course); err != nil {
			return nil, err
		}
		return course, nil
	}

	oldProfessors := course.ProfessorIDs
	oldStudents := course.StudentIDs
	if req.Professors != nil {
		course.ProfessorIDs = *req.Professors
	}
	if req.Students != nil {
		course.StudentIDs = *req.Students
	}

	err = s.roster.SyncMembers(ctx, course.ID, oldProfessors, oldStudents, course.ProfessorIDs, course.StudentIDs,
		func(ctx context.Context, q repositories.Querier) error {
			return s.courseWriter(q).Update(ctx, course)
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseId", course.ID).Msg("Course updated")
	return course, nil
}

func (s *CourseService) courseWriter(q repositories.Querier) courseStore {
	if q != nil {
		if r, ok := s.store.(interface {
			WithTx(q repositories.Querier) *repositories.CourseRepository
		}); ok {
			return r.WithTx(q)
		}
	}
	return s.store
}

// Delete removes a course and cascades per policy: with the defaults the
// course is pruned from student records while professor records keep the
// stale id.
func (s *CourseService) Delete(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.roster.CascadeCourseDelete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseId", id).Msg("Course deleted")
	return course, nil
}

// List returns one page of courses with member references populated to
// {id, name}. References to people that no longer exist are dropped.
func (s *CourseService) List(ctx context.Context, page, limit int) (*dto.CourseListResponse, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckPageBounds(total, page, limit); err != nil {
		return nil, err
	}

	courses, err := s.store.List(ctx, helpers.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	var professorIDs, studentIDs []int64
	for _, c := range courses {
		professorIDs = append(professorIDs, c.ProfessorIDs...)
		studentIDs = append(studentIDs, c.StudentIDs...)
	}

	professorNames, err := s.professorNames.GetNamesByIDs(ctx, professorIDs)
	if err != nil {
		return nil, err
	}
	studentNames, err := s.studentNames.GetNamesByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CourseListItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, dto.CourseListItem{
			ID:         c.ID,
			Title:      c.Title,
			Department: c.Department,
			Capacity:   c.Capacity,
			Professors: personRefs(c.ProfessorIDs, professorNames),
			Students:   personRefs(c.StudentIDs, studentNames),
		})
	}

	return &dto.CourseListResponse{
		Courses:        items,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Summary reports per-course and per-department headcounts.
func (s *CourseService) Summary(ctx context.Context) (*dto.CourseSummaryResponse, error) {
	courseRows, err := s.store.CourseLoad(ctx)
	if err != nil {
		return nil, err
	}
	departmentRows, err := s.store.DepartmentLoad(ctx)
	if err != nil {
		return nil, err
	}

	courses := make([]dto.CourseSummaryEntry, 0, len(courseRows))
	for _, row := range courseRows {
		courses = append(courses, dto.CourseSummaryEntry{
			ID:              row.CourseID,
			Title:           row.Title,
			Department:      row.Department,
			Capacity:        row.Capacity,
			TotalStudents:   row.StudentCount,
			TotalProfessors: len(row.ProfessorNames),
			ProfessorNames:  row.ProfessorNames,
		})
	}

	departments := make([]dto.DepartmentSummaryEntry, 0, len(departmentRows))
	for _, row := range departmentRows {
		departments = append(departments, dto.DepartmentSummaryEntry{
			Department:      row.Department,
			TotalCourses:    int(row.CourseCount),
			TotalStudents:   int(row.TotalStudents),
			TotalProfessors: int(row.TotalProfessors),
			AverageCapacity: row.AverageCapacity,
		})
	}

	return &dto.CourseSummaryResponse{
		Courses:     courses,
		Departments: departments,
	}, nil
}

// personRefs projects member ids onto {id, name} pairs, skipping stale ids
func personRefs(ids []int64, names map[int64]string) []dto.PersonRef {
	refs := make([]dto.PersonRef, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			continue
		}
		refs = append(refs, dto.PersonRef{ID: id, Name: name})
	}
	return refs
}
