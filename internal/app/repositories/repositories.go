package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations the repositories need. It is
// satisfied by both *pgxpool.Pool and pgx.Tx, so a repository can be bound
// to a transaction with WithTx when a caller opts into transactional
// relationship updates.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	Users      *UserRepository
	Professors *ProfessorRepository
	Students   *StudentRepository
	Courses    *CourseRepository
}

// NewRepositories initializes all repositories against the given Querier
func NewRepositories(db Querier) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Professors: NewProfessorRepository(db),
		Students:   NewStudentRepository(db),
		Courses:    NewCourseRepository(db),
	}
}
