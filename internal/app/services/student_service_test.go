package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/emredk/scholaris/internal/app/auth"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

// fakeStudentStore implements studentStore over an in-memory map keyed by id,
// with enrollment-number lookups like the real repository.
type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (s *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	for _, existing := range s.students {
		if existing.EnrollmentNumber == student.EnrollmentNumber {
			return apperrors.ErrEnrollmentTaken
		}
	}
	student.ID = s.nextID
	s.nextID++
	s.students[student.ID] = student
	return nil
}

func (s *fakeStudentStore) GetByEnrollmentNumber(_ context.Context, enrollmentNumber string) (*models.Student, error) {
	for _, st := range s.students {
		if st.EnrollmentNumber == enrollmentNumber {
			return st, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *fakeStudentStore) UserHasProfile(_ context.Context, userID int64) (bool, error) {
	for _, st := range s.students {
		if st.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	s.students[student.ID] = student
	return nil
}

func (s *fakeStudentStore) Delete(_ context.Context, enrollmentNumber string) (*models.Student, error) {
	for id, st := range s.students {
		if st.EnrollmentNumber == enrollmentNumber {
			delete(s.students, id)
			return st, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *fakeStudentStore) List(_ context.Context, offset, limit int) ([]*models.Student, error) {
	var out []*models.Student
	for id := int64(1); id < s.nextID; id++ {
		if st, ok := s.students[id]; ok {
			out = append(out, st)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	if offset+limit < len(out) {
		out = out[offset : offset+limit]
	} else {
		out = out[offset:]
	}
	return out, nil
}

func (s *fakeStudentStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.students)), nil
}

type studentFixture struct {
	svc    *StudentService
	store  *fakeStudentStore
	users  *fakeUserStore
	roster rosterFixture
}

func newStudentFixture(titles map[int64]string, courseIDs ...int64) studentFixture {
	store := newFakeStudentStore()
	users := newFakeUserStore()
	roster := newRosterFixture(DefaultCascadeRules(), courseIDs...)
	svc := NewStudentService(store, users, fakeTitleStore{titles}, roster.roster, zerolog.Nop())
	return studentFixture{svc: svc, store: store, users: users, roster: roster}
}

func (f studentFixture) seedAccount(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

var enrollmentPattern = regexp.MustCompile(`^ENR\d{8}\d{6}$`)

func TestStudentCreateAssignsEnrollmentNumber(t *testing.T) {
	f := newStudentFixture(nil)
	user := f.seedAccount(t, "ada")

	student, err := f.svc.Create(context.Background(), dto.CreateStudentRequest{
		UserID: user.ID, FirstName: "Ada", LastName: "Lovelace", DateOfBirth: strPtr("2001-04-12"),
	})
	require.NoError(t, err)

	assert.Regexp(t, enrollmentPattern, student.EnrollmentNumber)
	require.NotNil(t, student.DateOfBirth)
	assert.Equal(t, "2001-04-12", *student.DateOfBirth)
}

func TestStudentCreateRequiresExistingUser(t *testing.T) {
	f := newStudentFixture(nil)

	_, err := f.svc.Create(context.Background(), dto.CreateStudentRequest{
		UserID: 42, FirstName: "Ada", LastName: "Lovelace",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestStudentCreateRejectsSecondProfile(t *testing.T) {
	f := newStudentFixture(nil)
	user := f.seedAccount(t, "ada")
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dto.CreateStudentRequest{UserID: user.ID, FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, dto.CreateStudentRequest{UserID: user.ID, FirstName: "A.", LastName: "L."})
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)
}

func TestStudentCreateLinksCourses(t *testing.T) {
	f := newStudentFixture(nil, 1, 2)
	user := f.seedAccount(t, "ada")

	student, err := f.svc.Create(context.Background(), dto.CreateStudentRequest{
		UserID: user.ID, FirstName: "Ada", LastName: "Lovelace", Courses: []int64{1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{student.ID}, f.roster.courses.students[1])
	assert.Equal(t, []int64{student.ID}, f.roster.courses.students[2])
}

func TestStudentOperationsKeyedByEnrollmentNumber(t *testing.T) {
	f := newStudentFixture(nil)
	user := f.seedAccount(t, "ada")
	ctx := context.Background()

	student, err := f.svc.Create(ctx, dto.CreateStudentRequest{UserID: user.ID, FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, student.EnrollmentNumber)
	require.NoError(t, err)
	assert.Equal(t, student.ID, got.ID)

	_, err = f.svc.Get(ctx, "ENR20240101000000")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = f.svc.Delete(ctx, student.EnrollmentNumber)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, student.EnrollmentNumber)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentUpdateAuthorization(t *testing.T) {
	f := newStudentFixture(nil)
	user := f.seedAccount(t, "ada")
	ctx := context.Background()

	student, err := f.svc.Create(ctx, dto.CreateStudentRequest{UserID: user.ID, FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, auth.Actor{UserID: user.ID + 1}, student.EnrollmentNumber, dto.UpdateStudentRequest{
		FirstName: strPtr("Augusta"),
	})
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	updated, err := f.svc.Update(ctx, auth.Actor{UserID: user.ID}, student.EnrollmentNumber, dto.UpdateStudentRequest{
		FirstName: strPtr("Augusta"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
}

func TestStudentUpdateReconcilesCourses(t *testing.T) {
	f := newStudentFixture(nil, 1, 2, 3)
	user := f.seedAccount(t, "ada")
	ctx := context.Background()

	student, err := f.svc.Create(ctx, dto.CreateStudentRequest{
		UserID: user.ID, FirstName: "Ada", LastName: "Lovelace", Courses: []int64{1},
	})
	require.NoError(t, err)

	courses := []int64{2, 3}
	updated, err := f.svc.Update(ctx, auth.Actor{UserID: user.ID}, student.EnrollmentNumber, dto.UpdateStudentRequest{
		Courses: &courses,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3}, updated.CourseIDs)
	assert.Empty(t, f.roster.courses.students[1])
	assert.Equal(t, []int64{student.ID}, f.roster.courses.students[2])
	assert.Equal(t, []int64{student.ID}, f.roster.courses.students[3])
}

func TestStudentDeleteKeepsStaleCourseRefs(t *testing.T) {
	f := newStudentFixture(nil, 1)
	user := f.seedAccount(t, "ada")
	ctx := context.Background()

	student, err := f.svc.Create(ctx, dto.CreateStudentRequest{
		UserID: user.ID, FirstName: "Ada", LastName: "Lovelace", Courses: []int64{1},
	})
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, student.EnrollmentNumber)
	require.NoError(t, err)

	assert.Equal(t, []int64{student.ID}, f.roster.courses.students[1])
}

func TestStudentListPopulatesCourseTitles(t *testing.T) {
	f := newStudentFixture(map[int64]string{1: "Databases"}, 1)
	user := f.seedAccount(t, "ada")
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dto.CreateStudentRequest{
		UserID: user.ID, FirstName: "Ada", LastName: "Lovelace", Courses: []int64{1, 99},
	})
	require.NoError(t, err)

	resp, err := f.svc.List(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, resp.Students, 1)
	require.Len(t, resp.Students[0].Courses, 1)
	assert.Equal(t, dto.CourseRef{ID: 1, Title: "Databases"}, resp.Students[0].Courses[0])
}
