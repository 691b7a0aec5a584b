package models

// Student defines the student profile based on the 'students' table.
// CourseIDs is the denormalized list of courses the student is enrolled in;
// the matching entry in Course.StudentIDs is kept consistent by the roster
// synchronizer. EnrollmentNumber is system generated and unique.
type Student struct {
	ID               int64   `json:"id" db:"id"`
	UserID           int64   `json:"userId" db:"user_id"`
	FirstName        string  `json:"firstName" db:"first_name"`
	LastName         string  `json:"lastName" db:"last_name"`
	EnrollmentNumber string  `json:"enrollmentNumber" db:"enrollment_number"`
	DateOfBirth      *string `json:"dateOfBirth,omitempty" db:"date_of_birth"` // YYYY-MM-DD, nullable
	CourseIDs        []int64 `json:"courses" db:"course_ids"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}

// DisplayName returns the student's full name for list projections
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
