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

// ProfessorRepository handles database operations for professor profiles.
// The course_ids column is the professor-side half of the denormalized
// Course relationship; every statement touching it updates a single row
// atomically.
type ProfessorRepository struct {
	db Querier
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(db Querier) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ProfessorRepository) WithTx(q Querier) *ProfessorRepository {
	return &ProfessorRepository{db: q}
}

// Create inserts a new professor profile
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	query := `
		INSERT INTO professors (user_id, first_name, last_name, office_location, course_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if professor.CourseIDs == nil {
		professor.CourseIDs = []int64{}
	}

	err := r.db.QueryRow(ctx, query,
		professor.UserID,
		professor.FirstName,
		professor.LastName,
		professor.OfficeLocation,
		professor.CourseIDs,
	).Scan(&professor.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProfessorAlreadyExists
		}
		return fmt.Errorf("error creating professor: %w", err)
	}

	return nil
}

// GetByID retrieves a professor by id
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	return r.getOne(ctx, `SELECT id, user_id, first_name, last_name, office_location, course_ids FROM professors WHERE id = $1`, id)
}

// GetByUserID retrieves the professor profile linked to a user account
func (r *ProfessorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Professor, error) {
	return r.getOne(ctx, `SELECT id, user_id, first_name, last_name, office_location, course_ids FROM professors WHERE user_id = $1`, userID)
}

func (r *ProfessorRepository) getOne(ctx context.Context, query string, arg any) (*models.Professor, error) {
	var professor models.Professor
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&professor.ID,
		&professor.UserID,
		&professor.FirstName,
		&professor.LastName,
		&professor.OfficeLocation,
		&professor.CourseIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}
	return &professor, nil
}

// UserHasProfile checks whether a user already owns a professor profile
func (r *ProfessorRepository) UserHasProfile(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM professors WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking professor existence: %w", err)
	}
	return exists, nil
}

// Update persists the professor's fields, including its course list
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	query := `
		UPDATE professors
		SET user_id = $2, first_name = $3, last_name = $4, office_location = $5, course_ids = $6
		WHERE id = $1
	`

	if professor.CourseIDs == nil {
		professor.CourseIDs = []int64{}
	}

	tag, err := r.db.Exec(ctx, query,
		professor.ID,
		professor.UserID,
		professor.FirstName,
		professor.LastName,
		professor.OfficeLocation,
		professor.CourseIDs,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProfessorAlreadyExists
		}
		return fmt.Errorf("error updating professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfessorNotFound
	}
	return nil
}

// Delete removes a professor and returns the deleted record
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) (*models.Professor, error) {
	var professor models.Professor
	err := r.db.QueryRow(ctx,
		`DELETE FROM professors WHERE id = $1 RETURNING id, user_id, first_name, last_name, office_location, course_ids`,
		id).Scan(
		&professor.ID,
		&professor.UserID,
		&professor.FirstName,
		&professor.LastName,
		&professor.OfficeLocation,
		&professor.CourseIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error deleting professor: %w", err)
	}
	return &professor, nil
}

// List retrieves one page of professors ordered by id
func (r *ProfessorRepository) List(ctx context.Context, offset, limit int) ([]*models.Professor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, first_name, last_name, office_location, course_ids FROM professors ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing professors: %w", err)
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		var professor models.Professor
		if err := rows.Scan(
			&professor.ID,
			&professor.UserID,
			&professor.FirstName,
			&professor.LastName,
			&professor.OfficeLocation,
			&professor.CourseIDs,
		); err != nil {
			return nil, err
		}
		professors = append(professors, &professor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return professors, nil
}

// Count returns the total number of professors
func (r *ProfessorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM professors`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting professors: %w", err)
	}
	return count, nil
}

// GetNamesByIDs returns a display-name projection for the given professors
func (r *ProfessorRepository) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM professors WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving professor names: %w", err)
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

// AddCourse appends a course to the professor's list unless already present.
// A missing professor makes this a no-op.
func (r *ProfessorRepository) AddCourse(ctx context.Context, professorID, courseID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE professors SET course_ids = array_append(course_ids, $2) WHERE id = $1 AND NOT ($2 = ANY(course_ids))`,
		professorID, courseID)
	if err != nil {
		return fmt.Errorf("error adding course to professor: %w", err)
	}
	return nil
}

// RemoveCourse removes a course from the professor's list; removing an
// absent course is a no-op.
func (r *ProfessorRepository) RemoveCourse(ctx context.Context, professorID, courseID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE professors SET course_ids = array_remove(course_ids, $2) WHERE id = $1`,
		professorID, courseID)
	if err != nil {
		return fmt.Errorf("error removing course from professor: %w", err)
	}
	return nil
}

// PullCourseFromAll removes the course from every professor referencing it
func (r *ProfessorRepository) PullCourseFromAll(ctx context.Context, courseID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE professors SET course_ids = array_remove(course_ids, $1) WHERE $1 = ANY(course_ids)`,
		courseID)
	if err != nil {
		return fmt.Errorf("error pulling course from professors: %w", err)
	}
	return nil
}
