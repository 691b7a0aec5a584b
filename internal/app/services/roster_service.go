package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/repositories"
	"github.com/emredk/scholaris/internal/db"
)

// RosterSide selects which member collection a roster operation targets.
type RosterSide int

const (
	SideProfessor RosterSide = iota
	SideStudent
)

func (s RosterSide) String() string {
	if s == SideProfessor {
		return "professor"
	}
	return "student"
}

// CascadePolicy decides what happens to the opposite side of a relationship
// when an entity is deleted.
type CascadePolicy int

const (
	// CascadeIgnore leaves the opposite side untouched; stale references are
	// tolerated and skipped at read time.
	CascadeIgnore CascadePolicy = iota
	// CascadePrune removes the deleted entity's id from every referencing row.
	CascadePrune
)

func (p CascadePolicy) String() string {
	if p == CascadePrune {
		return "prune"
	}
	return "ignore"
}

// CascadeRules holds one policy per relationship direction.
type CascadeRules struct {
	CourseDeleteStudents   CascadePolicy
	CourseDeleteProfessors CascadePolicy
	MemberDeleteCourses    CascadePolicy
}

// DefaultCascadeRules prunes deleted courses out of student records but
// leaves professor records and course rosters to tolerate stale ids.
func DefaultCascadeRules() CascadeRules {
	return CascadeRules{
		CourseDeleteStudents:   CascadePrune,
		CourseDeleteProfessors: CascadeIgnore,
		MemberDeleteCourses:    CascadeIgnore,
	}
}

// courseRosterStore is the course-side half of the denormalized relationship.
type courseRosterStore interface {
	AddProfessor(ctx context.Context, courseID, professorID int64) error
	RemoveProfessor(ctx context.Context, courseID, professorID int64) error
	AddStudent(ctx context.Context, courseID, studentID int64) error
	RemoveStudent(ctx context.Context, courseID, studentID int64) error
	RemoveProfessorFromAll(ctx context.Context, professorID int64) error
	RemoveStudentFromAll(ctx context.Context, studentID int64) error
}

// memberRosterStore is the person-side half, implemented by both the
// professor and the student repositories.
type memberRosterStore interface {
	AddCourse(ctx context.Context, memberID, courseID int64) error
	RemoveCourse(ctx context.Context, memberID, courseID int64) error
	PullCourseFromAll(ctx context.Context, courseID int64) error
}

// rosterStores bundles the three stores a reconciliation touches.
type rosterStores struct {
	courses    courseRosterStore
	professors memberRosterStore
	students   memberRosterStore
}

// RosterService keeps the two denormalized sides of the Course↔Professor and
// Course↔Student relationships consistent. Every operation is idempotent:
// appends are membership-checked and removals of absent ids are no-ops, so a
// retry after a mid-sequence failure converges instead of corrupting state.
//
// By default the writes are NOT atomic across rows; a crash between the two
// sides leaves a window that the idempotent ordering is designed to tolerate.
// Constructing the service with a database enables a transactional mode that
// closes the window at the cost of holding a transaction across the whole
// reconciliation.
type RosterService struct {
	stores   rosterStores
	rules    CascadeRules
	database *db.PostgresDB
	logger   zerolog.Logger
}

// NewRosterService creates a roster service in the default non-atomic mode.
func NewRosterService(
	courses courseRosterStore,
	professors memberRosterStore,
	students memberRosterStore,
	rules CascadeRules,
	logger zerolog.Logger,
) *RosterService {
	logger.Info().
		Str("courseDeleteStudents", rules.CourseDeleteStudents.String()).
		Str("courseDeleteProfessors", rules.CourseDeleteProfessors.String()).
		Str("memberDeleteCourses", rules.MemberDeleteCourses.String()).
		Msg("Roster cascade rules configured")
	return &RosterService{
		stores: rosterStores{
			courses:    courses,
			professors: professors,
			students:   students,
		},
		rules:  rules,
		logger: logger,
	}
}

// NewTransactionalRosterService creates a roster service that wraps each
// reconciliation in a single database transaction.
func NewTransactionalRosterService(database *db.PostgresDB, rules CascadeRules, logger zerolog.Logger) *RosterService {
	repos := repositories.NewRepositories(database.Pool)
	svc := NewRosterService(repos.Courses, repos.Professors, repos.Students, rules, logger)
	svc.database = database
	logger.Info().Msg("Roster reconciliation running in transactional mode")
	return svc
}

// run executes fn against the configured stores, inside one transaction when
// transactional mode is on. The querier handed to fn is nil in the default
// mode and the enclosing transaction otherwise; callers that persist entity
// rows mid-sequence rebind their repository to it when present.
func (s *RosterService) run(ctx context.Context, fn func(ctx context.Context, st rosterStores, q repositories.Querier) error) error {
	if s.database == nil {
		return fn(ctx, s.stores, nil)
	}
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		st := rosterStores{
			courses:    repositories.NewCourseRepository(tx),
			professors: repositories.NewProfessorRepository(tx),
			students:   repositories.NewStudentRepository(tx),
		}
		return fn(ctx, st, tx)
	})
}

// OverwriteFn persists the primary entity row between the detach and attach
// phases of a sync. The querier is non-nil only in transactional mode.
type OverwriteFn func(ctx context.Context, q repositories.Querier) error

// AttachCourses adds a member to every course in courseIDs. Courses that do
// not exist are skipped silently; courses that already list the member are
// left unchanged. Individual failures are logged and do not abort the rest.
func (s *RosterService) AttachCourses(ctx context.Context, side RosterSide, memberID int64, courseIDs []int64) error {
	return s.run(ctx, func(ctx context.Context, st rosterStores, _ repositories.Querier) error {
		s.attachCourses(ctx, st, side, memberID, courseIDs)
		return nil
	})
}

// DetachCourses removes a member from every course in courseIDs.
func (s *RosterService) DetachCourses(ctx context.Context, side RosterSide, memberID int64, courseIDs []int64) error {
	return s.run(ctx, func(ctx context.Context, st rosterStores, _ repositories.Querier) error {
		s.detachCourses(ctx, st, side, memberID, courseIDs)
		return nil
	})
}

// SyncCourses reconciles a member's course list from oldIDs to newIDs. The
// ordering matters: the member is first removed from ALL old courses (not a
// diff), then overwrite persists the member's own row, then the member is
// added to all new courses. A failure between phases leaves only the
// tolerated kind of inconsistency, which the idempotent phases repair on
// the next sync.
func (s *RosterService) SyncCourses(ctx context.Context, side RosterSide, memberID int64, oldIDs, newIDs []int64, overwrite OverwriteFn) error {
	return s.run(ctx, func(ctx context.Context, st rosterStores, q repositories.Querier) error {
		s.detachCourses(ctx, st, side, memberID, oldIDs)
		if err := overwrite(ctx, q); err != nil {
			return err
		}
		s.attachCourses(ctx, st, side, memberID, newIDs)
		return nil
	})
}

// AttachMembers writes the member-side links for a course's initial rosters.
func (s *RosterService) AttachMembers(ctx context.Context, courseID int64, professorIDs, studentIDs []int64) error {
	return s.run(ctx, func(ctx context.Context, st rosterStores, _ repositories.Querier) error {
		s.attachMembers(ctx, st, courseID, professorIDs, studentIDs)
		return nil
	})
}

// SyncMembers reconciles a course's rosters, mirroring SyncCourses: unlink
// all old members, persist the course row, link all new members.
func (s *RosterService) SyncMembers(ctx context.Context, courseID int64, oldProfessorIDs, oldStudentIDs, newProfessorIDs, newStudentIDs []int64, overwrite OverwriteFn) error {
	return s.run(ctx, func(ctx context.Context, st rosterStores, q repositories.Querier) error {
		for _, id := range oldProfessorIDs {
			if err := st.professors.RemoveCourse(ctx, id, courseID); err != nil {
				s.logRosterError(err, "detach", SideProfessor, id, courseID)
			}
		}
		for _, id := range oldStudentIDs {
			if err := st.students.RemoveCourse(ctx, id, courseID); err != nil {
				s.logRosterError(err, "detach", SideStudent, id, courseID)
			}
		}
		if err := overwrite(ctx, q); err != nil {
			return err
		}
		s.attachMembers(ctx, st, courseID, newProfessorIDs, newStudentIDs)
		return nil
	})
}

// CascadeCourseDelete cleans up member records after a course row has been
// deleted, according to the configured cascade rules. With the defaults the
// course is pulled out of every student record while professor records keep
// the stale id.
func (s *RosterService) CascadeCourseDelete(ctx context.Context, courseID int64) error {
	return s.run(ctx, func(ctx context.Context, st rosterStores, _ repositories.Querier) error {
		if s.rules.CourseDeleteStudents == CascadePrune {
			if err := st.students.PullCourseFromAll(ctx, courseID); err != nil {
				s.logger.Error().Err(err).Int64("courseId", courseID).Msg("Failed to prune deleted course from students")
			}
		}
		if s.rules.CourseDeleteProfessors == CascadePrune {
			if err := st.professors.PullCourseFromAll(ctx, courseID); err != nil {
				s.logger.Error().Err(err).Int64("courseId", courseID).Msg("Failed to prune deleted course from professors")
			}
		}
		return nil
	})
}

// CascadeMemberDelete cleans up course rosters after a member row has been
// deleted. The default policy is to ignore, leaving stale member ids in
// course rosters.
func (s *RosterService) CascadeMemberDelete(ctx context.Context, side RosterSide, memberID int64) error {
	if s.rules.MemberDeleteCourses != CascadePrune {
		return nil
	}
	return s.run(ctx, func(ctx context.Context, st rosterStores, _ repositories.Querier) error {
		var err error
		if side == SideProfessor {
			err = st.courses.RemoveProfessorFromAll(ctx, memberID)
		} else {
			err = st.courses.RemoveStudentFromAll(ctx, memberID)
		}
		if err != nil {
			s.logger.Error().Err(err).
				Str("side", side.String()).
				Int64("memberId", memberID).
				Msg("Failed to prune deleted member from courses")
		}
		return nil
	})
}

func (s *RosterService) attachCourses(ctx context.Context, st rosterStores, side RosterSide, memberID int64, courseIDs []int64) {
	for _, courseID := range courseIDs {
		var err error
		if side == SideProfessor {
			err = st.courses.AddProfessor(ctx, courseID, memberID)
		} else {
			err = st.courses.AddStudent(ctx, courseID, memberID)
		}
		if err != nil {
			s.logRosterError(err, "attach", side, memberID, courseID)
		}
	}
}

func (s *RosterService) detachCourses(ctx context.Context, st rosterStores, side RosterSide, memberID int64, courseIDs []int64) {
	for _, courseID := range courseIDs {
		var err error
		if side == SideProfessor {
			err = st.courses.RemoveProfessor(ctx, courseID, memberID)
		} else {
			err = st.courses.RemoveStudent(ctx, courseID, memberID)
		}
		if err != nil {
			s.logRosterError(err, "detach", side, memberID, courseID)
		}
	}
}

func (s *RosterService) attachMembers(ctx context.Context, st rosterStores, courseID int64, professorIDs, studentIDs []int64) {
	for _, id := range professorIDs {
		if err := st.professors.AddCourse(ctx, id, courseID); err != nil {
			s.logRosterError(err, "attach", SideProfessor, id, courseID)
		}
	}
	for _, id := range studentIDs {
		if err := st.students.AddCourse(ctx, id, courseID); err != nil {
			s.logRosterError(err, "attach", SideStudent, id, courseID)
		}
	}
}

func (s *RosterService) logRosterError(err error, op string, side RosterSide, memberID, courseID int64) {
	s.logger.Error().Err(err).
		Str("op", op).
		Str("side", side.String()).
		Int64("memberId", memberID).
		Int64("courseId", courseID).
		Msg("Roster write failed, sides may be out of sync")
}
