package dto

import "github.com/emredk/scholaris/internal/app/models"

// CreateStudentRequest represents the payload for student creation. The
// enrollment number is generated server side and must not be supplied.
type CreateStudentRequest struct {
	UserID      int64   `json:"userId"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	Courses     []int64 `json:"courses,omitempty"`
}

// UpdateStudentRequest represents student update data. A present Courses
// field triggers a full roster reconciliation.
type UpdateStudentRequest struct {
	UserID      *int64   `json:"userId,omitempty"`
	FirstName   *string  `json:"firstName,omitempty"`
	LastName    *string  `json:"lastName,omitempty"`
	DateOfBirth *string  `json:"dateOfBirth,omitempty"`
	Courses     *[]int64 `json:"courses,omitempty"`
}

// StudentResponse is the projected view of a student
type StudentResponse struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"userId"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	EnrollmentNumber string  `json:"enrollmentNumber"`
	DateOfBirth      *string `json:"dateOfBirth,omitempty"`
	Courses          []int64 `json:"courses"`
}

// FromStudent converts a models.Student to its response projection
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	courses := student.CourseIDs
	if courses == nil {
		courses = []int64{}
	}
	return StudentResponse{
		ID:               student.ID,
		UserID:           student.UserID,
		FirstName:        student.FirstName,
		LastName:         student.LastName,
		EnrollmentNumber: student.EnrollmentNumber,
		DateOfBirth:      student.DateOfBirth,
		Courses:          courses,
	}
}

// StudentListItem is the list projection with populated course titles
type StudentListItem struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"userId"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	EnrollmentNumber string      `json:"enrollmentNumber"`
	DateOfBirth      *string     `json:"dateOfBirth,omitempty"`
	Courses          []CourseRef `json:"courses"`
}

// StudentListResponse represents a page of students
type StudentListResponse struct {
	Students []StudentListItem `json:"students"`
	PaginationInfo
}
