package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/emredk/scholaris/internal/app/repositories"
)

// fakeCourseStore implements courseRosterStore over in-memory rosters.
type fakeCourseStore struct {
	exists     map[int64]bool
	professors map[int64][]int64
	students   map[int64][]int64
	failFor    map[int64]error
}

func newFakeCourseStore(courseIDs ...int64) *fakeCourseStore {
	s := &fakeCourseStore{
		exists:     make(map[int64]bool),
		professors: make(map[int64][]int64),
		students:   make(map[int64][]int64),
		failFor:    make(map[int64]error),
	}
	for _, id := range courseIDs {
		s.exists[id] = true
	}
	return s
}

func appendOnce(list []int64, id int64) []int64 {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}

func removeID(list []int64, id int64) []int64 {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (s *fakeCourseStore) AddProfessor(_ context.Context, courseID, professorID int64) error {
	if err := s.failFor[courseID]; err != nil {
		return err
	}
	if !s.exists[courseID] {
		return nil
	}
	s.professors[courseID] = appendOnce(s.professors[courseID], professorID)
	return nil
}

func (s *fakeCourseStore) RemoveProfessor(_ context.Context, courseID, professorID int64) error {
	s.professors[courseID] = removeID(s.professors[courseID], professorID)
	return nil
}

func (s *fakeCourseStore) AddStudent(_ context.Context, courseID, studentID int64) error {
	if err := s.failFor[courseID]; err != nil {
		return err
	}
	if !s.exists[courseID] {
		return nil
	}
	s.students[courseID] = appendOnce(s.students[courseID], studentID)
	return nil
}

func (s *fakeCourseStore) RemoveStudent(_ context.Context, courseID, studentID int64) error {
	s.students[courseID] = removeID(s.students[courseID], studentID)
	return nil
}

func (s *fakeCourseStore) RemoveProfessorFromAll(_ context.Context, professorID int64) error {
	for id := range s.professors {
		s.professors[id] = removeID(s.professors[id], professorID)
	}
	return nil
}

func (s *fakeCourseStore) RemoveStudentFromAll(_ context.Context, studentID int64) error {
	for id := range s.students {
		s.students[id] = removeID(s.students[id], studentID)
	}
	return nil
}

// fakeMemberStore implements memberRosterStore over in-memory course lists.
type fakeMemberStore struct {
	courses map[int64][]int64
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{courses: make(map[int64][]int64)}
}

func (s *fakeMemberStore) AddCourse(_ context.Context, memberID, courseID int64) error {
	s.courses[memberID] = appendOnce(s.courses[memberID], courseID)
	return nil
}

func (s *fakeMemberStore) RemoveCourse(_ context.Context, memberID, courseID int64) error {
	s.courses[memberID] = removeID(s.courses[memberID], courseID)
	return nil
}

func (s *fakeMemberStore) PullCourseFromAll(_ context.Context, courseID int64) error {
	for id := range s.courses {
		s.courses[id] = removeID(s.courses[id], courseID)
	}
	return nil
}

type rosterFixture struct {
	courses    *fakeCourseStore
	professors *fakeMemberStore
	students   *fakeMemberStore
	roster     *RosterService
}

func newRosterFixture(rules CascadeRules, courseIDs ...int64) rosterFixture {
	courses := newFakeCourseStore(courseIDs...)
	professors := newFakeMemberStore()
	students := newFakeMemberStore()
	return rosterFixture{
		courses:    courses,
		professors: professors,
		students:   students,
		roster:     NewRosterService(courses, professors, students, rules, zerolog.Nop()),
	}
}

func TestAttachCoursesIsIdempotent(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1, 2)
	ctx := context.Background()

	require.NoError(t, f.roster.AttachCourses(ctx, SideProfessor, 10, []int64{1, 2}))
	require.NoError(t, f.roster.AttachCourses(ctx, SideProfessor, 10, []int64{1, 2}))

	assert.Equal(t, []int64{10}, f.courses.professors[1])
	assert.Equal(t, []int64{10}, f.courses.professors[2])
}

func TestAttachCoursesSkipsMissingCourses(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1)
	ctx := context.Background()

	require.NoError(t, f.roster.AttachCourses(ctx, SideStudent, 20, []int64{1, 99}))

	assert.Equal(t, []int64{20}, f.courses.students[1])
	assert.Empty(t, f.courses.students[99])
}

func TestAttachCoursesSurvivesPartialFailure(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1, 2, 3)
	f.courses.failFor[2] = errors.New("connection reset")
	ctx := context.Background()

	// A failing secondary write is logged, not escalated; the remaining
	// courses are still linked.
	require.NoError(t, f.roster.AttachCourses(ctx, SideProfessor, 10, []int64{1, 2, 3}))

	assert.Equal(t, []int64{10}, f.courses.professors[1])
	assert.Empty(t, f.courses.professors[2])
	assert.Equal(t, []int64{10}, f.courses.professors[3])
}

func TestSyncCoursesReplacesMembership(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1, 2, 3)
	ctx := context.Background()

	require.NoError(t, f.roster.AttachCourses(ctx, SideProfessor, 10, []int64{1, 2}))

	overwritten := false
	err := f.roster.SyncCourses(ctx, SideProfessor, 10, []int64{1, 2}, []int64{2, 3},
		func(ctx context.Context, q repositories.Querier) error {
			// Between the phases the member must be detached everywhere.
			assert.Empty(t, f.courses.professors[1])
			assert.Empty(t, f.courses.professors[2])
			overwritten = true
			return nil
		})
	require.NoError(t, err)

	assert.True(t, overwritten)
	assert.Empty(t, f.courses.professors[1])
	assert.Equal(t, []int64{10}, f.courses.professors[2])
	assert.Equal(t, []int64{10}, f.courses.professors[3])
}

func TestSyncCoursesAbortsWhenOverwriteFails(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1, 2)
	ctx := context.Background()

	require.NoError(t, f.roster.AttachCourses(ctx, SideStudent, 20, []int64{1}))

	boom := errors.New("row gone")
	err := f.roster.SyncCourses(ctx, SideStudent, 20, []int64{1}, []int64{2},
		func(ctx context.Context, q repositories.Querier) error {
			return boom
		})
	require.ErrorIs(t, err, boom)

	// Old links are already removed and new ones never written; a retry of
	// the same sync converges because every phase is idempotent.
	assert.Empty(t, f.courses.students[1])
	assert.Empty(t, f.courses.students[2])
}

func TestAttachMembersLinksBothSides(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1)
	ctx := context.Background()

	require.NoError(t, f.roster.AttachMembers(ctx, 1, []int64{10}, []int64{20, 21}))

	assert.Equal(t, []int64{1}, f.professors.courses[10])
	assert.Equal(t, []int64{1}, f.students.courses[20])
	assert.Equal(t, []int64{1}, f.students.courses[21])
}

func TestCascadeCourseDeletePrunesStudentsOnly(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1)
	ctx := context.Background()

	f.professors.courses[10] = []int64{1, 2}
	f.students.courses[20] = []int64{1, 2}
	f.students.courses[21] = []int64{1}

	require.NoError(t, f.roster.CascadeCourseDelete(ctx, 1))

	// Students lose the deleted course; professors keep the stale id.
	assert.Equal(t, []int64{2}, f.students.courses[20])
	assert.Empty(t, f.students.courses[21])
	assert.Equal(t, []int64{1, 2}, f.professors.courses[10])
}

func TestCascadeCourseDeleteHonoursPruneEverywhere(t *testing.T) {
	rules := CascadeRules{
		CourseDeleteStudents:   CascadePrune,
		CourseDeleteProfessors: CascadePrune,
	}
	f := newRosterFixture(rules, 1)
	ctx := context.Background()

	f.professors.courses[10] = []int64{1}
	f.students.courses[20] = []int64{1}

	require.NoError(t, f.roster.CascadeCourseDelete(ctx, 1))

	assert.Empty(t, f.professors.courses[10])
	assert.Empty(t, f.students.courses[20])
}

func TestCascadeMemberDeleteIgnoredByDefault(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1)
	ctx := context.Background()

	f.courses.professors[1] = []int64{10}

	require.NoError(t, f.roster.CascadeMemberDelete(ctx, SideProfessor, 10))

	// Default policy tolerates the stale reference in the course roster.
	assert.Equal(t, []int64{10}, f.courses.professors[1])
}

func TestCascadeMemberDeletePrunesWhenConfigured(t *testing.T) {
	rules := DefaultCascadeRules()
	rules.MemberDeleteCourses = CascadePrune
	f := newRosterFixture(rules, 1)
	ctx := context.Background()

	f.courses.students[1] = []int64{20}

	require.NoError(t, f.roster.CascadeMemberDelete(ctx, SideStudent, 20))

	assert.Empty(t, f.courses.students[1])
}

func TestSyncMembersReplacesRosters(t *testing.T) {
	f := newRosterFixture(DefaultCascadeRules(), 1)
	ctx := context.Background()

	f.professors.courses[10] = []int64{1}
	f.students.courses[20] = []int64{1}

	err := f.roster.SyncMembers(ctx, 1, []int64{10}, []int64{20}, []int64{11}, []int64{20, 21},
		func(ctx context.Context, q repositories.Querier) error { return nil })
	require.NoError(t, err)

	assert.Empty(t, f.professors.courses[10])
	assert.Equal(t, []int64{1}, f.professors.courses[11])
	assert.Equal(t, []int64{1}, f.students.courses[20])
	assert.Equal(t, []int64{1}, f.students.courses[21])
}
