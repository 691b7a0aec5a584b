package models

// Professor defines the professor profile based on the 'professors' table.
// CourseIDs is the denormalized list of courses this professor teaches; the
// matching entry in Course.ProfessorIDs is kept consistent by the roster
// synchronizer.
type Professor struct {
	ID             int64   `json:"id" db:"id"`
	UserID         int64   `json:"userId" db:"user_id"`
	FirstName      string  `json:"firstName" db:"first_name"`
	LastName       string  `json:"lastName" db:"last_name"`
	OfficeLocation *string `json:"officeLocation,omitempty" db:"office_location"` // Nullable
	CourseIDs      []int64 `json:"courses" db:"course_ids"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}

// DisplayName returns the professor's full name for list projections
func (p *Professor) DisplayName() string {
	return p.FirstName + " " + p.LastName
}
