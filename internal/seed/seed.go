// Package seed creates the default administrator and the demo dataset.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/repositories"
	"github.com/emredk/scholaris/internal/config"
	"github.com/emredk/scholaris/internal/pkg/auth"
)

// EnsureDefaultAdmin creates the bootstrap administrator account from config
// if no admin exists yet. Without it a fresh deployment has no way to mint
// the first admin, because admin creation itself is admin-only.
func EnsureDefaultAdmin(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(pool)

	exists, err := userRepo.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing admin: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("hashing default admin password: %w", err)
	}

	admin := &models.User{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: hashed,
		IsAdmin:  true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating default admin: %w", err)
	}

	lgr.Info().Str("username", admin.Username).Msg("Default admin account created")
	return nil
}

// sampleCourse pairs a course with the indexes of the demo professors and
// students assigned to it, so both relationship sides can be written
// consistently.
type sampleCourse struct {
	title      string
	department string
	capacity   int
	professors []int
	students   []int
}

var sampleCourses = []sampleCourse{
	{"Introduction to Algorithms", "Computer Science", 60, []int{0}, []int{0, 1, 2}},
	{"Operating Systems", "Computer Science", 45, []int{0, 1}, []int{1, 3}},
	{"Linear Algebra", "Mathematics", 80, []int{2}, []int{0, 2, 4}},
	{"Classical Mechanics", "Physics", 50, []int{3}, []int{3}},
	{"Organic Chemistry", "Chemistry", 40, []int{4}, []int{2, 4}},
}

var samplePeople = []struct {
	firstName string
	lastName  string
}{
	{"Alan", "Turing"}, {"Grace", "Hopper"}, {"Emmy", "Noether"},
	{"Richard", "Feynman"}, {"Marie", "Curie"},
	{"Ada", "Lovelace"}, {"Linus", "Pauling"}, {"Rosalind", "Franklin"},
	{"Niels", "Bohr"}, {"Barbara", "McClintock"},
}

// Install wipes all data and loads a deterministic demo dataset: the default
// admin, one plain user, five professors, five students and five courses
// with both relationship sides populated.
func Install(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if _, err := pool.Exec(ctx, `TRUNCATE users, professors, students, courses RESTART IDENTITY`); err != nil {
		return fmt.Errorf("wiping tables: %w", err)
	}

	if err := EnsureDefaultAdmin(ctx, pool, cfg, lgr); err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(pool)
	professorRepo := repositories.NewProfessorRepository(pool)
	studentRepo := repositories.NewStudentRepository(pool)
	courseRepo := repositories.NewCourseRepository(pool)

	hashed, err := auth.HashPassword("demo-password")
	if err != nil {
		return err
	}

	// One account per demo person plus a plain user without a profile.
	userIDs := make([]int64, 0, len(samplePeople)+1)
	for i, p := range samplePeople {
		user := &models.User{
			Username: fmt.Sprintf("%s%s%d", strings.ToLower(p.firstName[:1]), strings.ToLower(p.lastName), i),
			Email:    fmt.Sprintf("%s.%s@scholaris.local", strings.ToLower(p.firstName), strings.ToLower(p.lastName)),
			Password: hashed,
			IsAdmin:  false,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("creating demo user %q: %w", user.Username, err)
		}
		userIDs = append(userIDs, user.ID)
	}
	plain := &models.User{Username: "visitor", Email: "visitor@scholaris.local", Password: hashed}
	if err := userRepo.Create(ctx, plain); err != nil {
		return fmt.Errorf("creating demo user %q: %w", plain.Username, err)
	}

	// Demo ids are assigned sequentially from a reset sequence, so the
	// cross references in sampleCourses can be computed up front.
	professorCourses := make(map[int][]int64)
	studentCourses := make(map[int][]int64)
	for i, sc := range sampleCourses {
		courseID := int64(i + 1)
		for _, p := range sc.professors {
			professorCourses[p] = append(professorCourses[p], courseID)
		}
		for _, s := range sc.students {
			studentCourses[s] = append(studentCourses[s], courseID)
		}
	}

	for i := 0; i < 5; i++ {
		office := fmt.Sprintf("Building A, Room %d", 100+i)
		professor := &models.Professor{
			UserID:         userIDs[i],
			FirstName:      samplePeople[i].firstName,
			LastName:       samplePeople[i].lastName,
			OfficeLocation: &office,
			CourseIDs:      professorCourses[i],
		}
		if err := professorRepo.Create(ctx, professor); err != nil {
			return fmt.Errorf("creating demo professor: %w", err)
		}
	}

	for i := 0; i < 5; i++ {
		person := samplePeople[5+i]
		dob := fmt.Sprintf("200%d-0%d-1%d", i, i+1, i)
		student := &models.Student{
			UserID:           userIDs[5+i],
			FirstName:        person.firstName,
			LastName:         person.lastName,
			EnrollmentNumber: fmt.Sprintf("ENR2024010100000%d", i),
			DateOfBirth:      &dob,
			CourseIDs:        studentCourses[i],
		}
		if err := studentRepo.Create(ctx, student); err != nil {
			return fmt.Errorf("creating demo student: %w", err)
		}
	}

	for _, sc := range sampleCourses {
		professorIDs := make([]int64, 0, len(sc.professors))
		for _, p := range sc.professors {
			professorIDs = append(professorIDs, int64(p+1))
		}
		studentIDs := make([]int64, 0, len(sc.students))
		for _, s := range sc.students {
			studentIDs = append(studentIDs, int64(s+1))
		}
		course := &models.Course{
			Title:        sc.title,
			Department:   sc.department,
			Capacity:     sc.capacity,
			ProfessorIDs: professorIDs,
			StudentIDs:   studentIDs,
		}
		if err := courseRepo.Create(ctx, course); err != nil {
			return fmt.Errorf("creating demo course %q: %w", sc.title, err)
		}
	}

	lgr.Info().
		Int("users", len(userIDs)+2).
		Int("courses", len(sampleCourses)).
		Msg("Demo dataset installed")
	return nil
}
