package models

// Course represents a course with its denormalized rosters. ProfessorIDs and
// StudentIDs mirror the CourseIDs lists held by the referenced people.
type Course struct {
	ID           int64   `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	Department   string  `json:"department" db:"department"`
	Capacity     int     `json:"capacity" db:"capacity"`
	ProfessorIDs []int64 `json:"professors" db:"professor_ids"`
	StudentIDs   []int64 `json:"students" db:"student_ids"`
}

// HasProfessor reports whether the professor is already on the course roster
func (c *Course) HasProfessor(id int64) bool {
	return containsID(c.ProfessorIDs, id)
}

// HasStudent reports whether the student is already on the course roster
func (c *Course) HasStudent(id int64) bool {
	return containsID(c.StudentIDs, id)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
