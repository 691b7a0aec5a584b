package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	"github.com/emredk/scholaris/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses, including the
// course-side halves of the professor and student relationships.
type CourseRepository struct {
	db Querier
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db Querier) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *CourseRepository) WithTx(q Querier) *CourseRepository {
	return &CourseRepository{db: q}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, department, capacity, professor_ids, student_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if course.ProfessorIDs == nil {
		course.ProfessorIDs = []int64{}
	}
	if course.StudentIDs == nil {
		course.StudentIDs = []int64{}
	}

	err := r.db.QueryRow(ctx, query,
		course.Title,
		course.Department,
		course.Capacity,
		course.ProfessorIDs,
		course.StudentIDs,
	).Scan(&course.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx,
		`SELECT id, title, department, capacity, professor_ids, student_ids FROM courses WHERE id = $1`,
		id).Scan(
		&course.ID,
		&course.Title,
		&course.Department,
		&course.Capacity,
		&course.ProfessorIDs,
		&course.StudentIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// TitleExists checks whether a course with the given title already exists
func (r *CourseRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE title = $1)`, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}

// Update persists the course's fields, including both reference lists
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $2, department = $3, capacity = $4, professor_ids = $5, student_ids = $6
		WHERE id = $1
	`

	if course.ProfessorIDs == nil {
		course.ProfessorIDs = []int64{}
	}
	if course.StudentIDs == nil {
		course.StudentIDs = []int64{}
	}

	tag, err := r.db.Exec(ctx, query,
		course.ID,
		course.Title,
		course.Department,
		course.Capacity,
		course.ProfessorIDs,
		course.StudentIDs,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course and returns the deleted record so callers can
// clean up the member side of the relationship.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx,
		`DELETE FROM courses WHERE id = $1 RETURNING id, title, department, capacity, professor_ids, student_ids`,
		id).Scan(
		&course.ID,
		&course.Title,
		&course.Department,
		&course.Capacity,
		&course.ProfessorIDs,
		&course.StudentIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error deleting course: %w", err)
	}
	return &course, nil
}

// List retrieves one page of courses ordered by id
func (r *CourseRepository) List(ctx context.Context, offset, limit int) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, department, capacity, professor_ids, student_ids FROM courses ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Department,
			&course.Capacity,
			&course.ProfessorIDs,
			&course.StudentIDs,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Count returns the total number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// GetTitlesByIDs returns a title projection for the given courses
func (r *CourseRepository) GetTitlesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	titles := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, title FROM courses WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving course titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, err
		}
		titles[id] = title
	}

	return titles, rows.Err()
}

// AddProfessor appends a professor to the course unless already assigned.
// A missing course makes this a no-op.
func (r *CourseRepository) AddProfessor(ctx context.Context, courseID, professorID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE courses SET professor_ids = array_append(professor_ids, $2) WHERE id = $1 AND NOT ($2 = ANY(professor_ids))`,
		courseID, professorID)
	if err != nil {
		return fmt.Errorf("error adding professor to course: %w", err)
	}
	return nil
}

// RemoveProfessor removes a professor from the course
func (r *CourseRepository) RemoveProfessor(ctx context.Context, courseID, professorID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE courses SET professor_ids = array_remove(professor_ids, $2) WHERE id = $1`,
		courseID, professorID)
	if err != nil {
		return fmt.Errorf("error removing professor from course: %w", err)
	}
	return nil
}

// AddStudent appends a student to the course unless already enrolled.
// A missing course makes this a no-op.
func (r *CourseRepository) AddStudent(ctx context.Context, courseID, studentID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE courses SET student_ids = array_append(student_ids, $2) WHERE id = $1 AND NOT ($2 = ANY(student_ids))`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error adding student to course: %w", err)
	}
	return nil
}

// RemoveStudent removes a student from the course
func (r *CourseRepository) RemoveStudent(ctx context.Context, courseID, studentID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE courses SET student_ids = array_remove(student_ids, $2) WHERE id = $1`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error removing student from course: %w", err)
	}
	return nil
}

// RemoveProfessorFromAll removes a professor from every course they teach
func (r *CourseRepository) RemoveProfessorFromAll(ctx context.Context, professorID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE courses SET professor_ids = array_remove(professor_ids, $1) WHERE $1 = ANY(professor_ids)`,
		professorID)
	if err != nil {
		return fmt.Errorf("error removing professor from courses: %w", err)
	}
	return nil
}

// RemoveStudentFromAll removes a student from every course they attend
func (r *CourseRepository) RemoveStudentFromAll(ctx context.Context, studentID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE courses SET student_ids = array_remove(student_ids, $1) WHERE $1 = ANY(student_ids)`,
		studentID)
	if err != nil {
		return fmt.Errorf("error removing student from courses: %w", err)
	}
	return nil
}

// CourseLoadRow is one row of the per-course load report
type CourseLoadRow struct {
	CourseID       int64
	Title          string
	Department     string
	Capacity       int
	StudentCount   int
	ProfessorNames []string
}

// DepartmentLoadRow is one row of the per-department aggregation
type DepartmentLoadRow struct {
	Department      string
	CourseCount     int64
	TotalStudents   int64
	TotalProfessors int64
	AverageCapacity float64
}

// CourseLoad reports enrollment counts per course along with the names of
// the assigned professors.
func (r *CourseRepository) CourseLoad(ctx context.Context) ([]CourseLoadRow, error) {
	query := `
		SELECT c.id, c.title, c.department, c.capacity,
		       cardinality(c.student_ids) AS student_count,
		       COALESCE(array_agg(p.first_name || ' ' || p.last_name) FILTER (WHERE p.id IS NOT NULL), '{}') AS professors
		FROM courses c
		LEFT JOIN professors p ON p.id = ANY(c.professor_ids)
		GROUP BY c.id
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error reporting course load: %w", err)
	}
	defer rows.Close()

	var report []CourseLoadRow
	for rows.Next() {
		var row CourseLoadRow
		if err := rows.Scan(
			&row.CourseID,
			&row.Title,
			&row.Department,
			&row.Capacity,
			&row.StudentCount,
			&row.ProfessorNames,
		); err != nil {
			return nil, err
		}
		report = append(report, row)
	}

	return report, rows.Err()
}

// DepartmentLoad aggregates courses per department
func (r *CourseRepository) DepartmentLoad(ctx context.Context) ([]DepartmentLoadRow, error) {
	query := `
		SELECT department,
		       COUNT(*) AS course_count,
		       COALESCE(SUM(cardinality(student_ids)), 0) AS total_students,
		       COALESCE(SUM(cardinality(professor_ids)), 0) AS total_professors,
		       COALESCE(AVG(capacity), 0) AS average_capacity
		FROM courses
		GROUP BY department
		ORDER BY department
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error reporting department load: %w", err)
	}
	defer rows.Close()

	var report []DepartmentLoadRow
	for rows.Next() {
		var row DepartmentLoadRow
		if err := rows.Scan(
			&row.Department,
			&row.CourseCount,
			&row.TotalStudents,
			&row.TotalProfessors,
			&row.AverageCapacity,
		); err != nil {
			return nil, err
		}
		report = append(report, row)
	}

	return report, rows.Err()
}
