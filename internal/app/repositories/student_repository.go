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

// StudentRepository handles database operations for student profiles. Like
// the professor repository it owns one half of the denormalized Course
// relationship (course_ids).
type StudentRepository struct {
	db Querier
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *StudentRepository) WithTx(q Querier) *StudentRepository {
	return &StudentRepository{db: q}
}

// Create inserts a new student profile. An enrollment number collision is
// surfaced as ErrEnrollmentTaken and deliberately not retried.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, first_name, last_name, enrollment_number, date_of_birth, course_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if student.CourseIDs == nil {
		student.CourseIDs = []int64{}
	}

	err := r.db.QueryRow(ctx, query,
		student.UserID,
		student.FirstName,
		student.LastName,
		student.EnrollmentNumber,
		student.DateOfBirth,
		student.CourseIDs,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_enrollment_number_key") {
			return apperrors.ErrEnrollmentTaken
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `SELECT id, user_id, first_name, last_name, enrollment_number, date_of_birth, course_ids FROM students WHERE id = $1`, id)
}

// GetByEnrollmentNumber retrieves a student by enrollment number
func (r *StudentRepository) GetByEnrollmentNumber(ctx context.Context, enrollmentNumber string) (*models.Student, error) {
	return r.getOne(ctx, `SELECT id, user_id, first_name, last_name, enrollment_number, date_of_birth, course_ids FROM students WHERE enrollment_number = $1`, enrollmentNumber)
}

// GetByUserID retrieves the student profile linked to a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, `SELECT id, user_id, first_name, last_name, enrollment_number, date_of_birth, course_ids FROM students WHERE user_id = $1`, userID)
}

func (r *StudentRepository) getOne(ctx context.Context, query string, arg any) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.UserID,
		&student.FirstName,
		&student.LastName,
		&student.EnrollmentNumber,
		&student.DateOfBirth,
		&student.CourseIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// UserHasProfile checks whether a user already owns a student profile
func (r *StudentRepository) UserHasProfile(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// Update persists the student's fields, including its course list
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET user_id = $2, first_name = $3, last_name = $4, date_of_birth = $5, course_ids = $6
		WHERE id = $1
	`

	if student.CourseIDs == nil {
		student.CourseIDs = []int64{}
	}

	tag, err := r.db.Exec(ctx, query,
		student.ID,
		student.UserID,
		student.FirstName,
		student.LastName,
		student.DateOfBirth,
		student.CourseIDs,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student by enrollment number and returns the deleted record
func (r *StudentRepository) Delete(ctx context.Context, enrollmentNumber string) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx,
		`DELETE FROM students WHERE enrollment_number = $1 RETURNING id, user_id, first_name, last_name, enrollment_number, date_of_birth, course_ids`,
		enrollmentNumber).Scan(
		&student.ID,
		&student.UserID,
		&student.FirstName,
		&student.LastName,
		&student.EnrollmentNumber,
		&student.DateOfBirth,
		&student.CourseIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error deleting student: %w", err)
	}
	return &student, nil
}

// List retrieves one page of students ordered by id
func (r *StudentRepository) List(ctx context.Context, offset, limit int) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, first_name, last_name, enrollment_number, date_of_birth, course_ids FROM students ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.FirstName,
			&student.LastName,
			&student.EnrollmentNumber,
			&student.DateOfBirth,
			&student.CourseIDs,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Count returns the total number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// GetNamesByIDs returns a display-name projection for the given students
func (r *StudentRepository) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM students WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving student names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var firstName, lastName string
		if err := rows.Scan(&id, &firstName, &lastName); err != nil {
			return nil, err
		}
		names[id] = firstName + " " + lastName
	}

	return names, rows.Err()
}

// AddCourse appends a course to the student's list unless already present.
// A missing student makes this a no-op.
func (r *StudentRepository) AddCourse(ctx context.Context, studentID, courseID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students SET course_ids = array_append(course_ids, $2) WHERE id = $1 AND NOT ($2 = ANY(course_ids))`,
		studentID, courseID)
	if err != nil {
		return fmt.Errorf("error adding course to student: %w", err)
	}
	return nil
}

// RemoveCourse removes a course from the student's list; removing an absent
// course is a no-op.
func (r *StudentRepository) RemoveCourse(ctx context.Context, studentID, courseID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students SET course_ids = array_remove(course_ids, $2) WHERE id = $1`,
		studentID, courseID)
	if err != nil {
		return fmt.Errorf("error removing course from student: %w", err)
	}
	return nil
}

// PullCourseFromAll removes the course from every student enrolled in it
func (r *StudentRepository) PullCourseFromAll(ctx context.Context, courseID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students SET course_ids = array_remove(course_ids, $1) WHERE $1 = ANY(course_ids)`,
		courseID)
	if err != nil {
		return fmt.Errorf("error pulling course from students: %w", err)
	}
	return nil
}
