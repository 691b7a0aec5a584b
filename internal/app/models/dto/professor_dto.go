package dto

import "github.com/emredk/scholaris/internal/app/models"

// CreateProfessorRequest represents the payload for professor creation
type CreateProfessorRequest struct {
	UserID         int64   `json:"userId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	OfficeLocation *string `json:"officeLocation,omitempty"`
	Courses        []int64 `json:"courses,omitempty"`
}

// UpdateProfessorRequest represents professor update data. A present Courses
// field triggers a full roster reconciliation.
type UpdateProfessorRequest struct {
	UserID         *int64   `json:"userId,omitempty"`
	FirstName      *string  `json:"firstName,omitempty"`
	LastName       *string  `json:"lastName,omitempty"`
	OfficeLocation *string  `json:"officeLocation,omitempty"`
	Courses        *[]int64 `json:"courses,omitempty"`
}

// ProfessorResponse is the projected view of a professor
type ProfessorResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	OfficeLocation *string `json:"officeLocation,omitempty"`
	Courses        []int64 `json:"courses"`
}

// FromProfessor converts a models.Professor to its response projection
func FromProfessor(professor *models.Professor) ProfessorResponse {
	if professor == nil {
		return ProfessorResponse{}
	}
	courses := professor.CourseIDs
	if courses == nil {
		courses = []int64{}
	}
	return ProfessorResponse{
		ID:             professor.ID,
		UserID:         professor.UserID,
		FirstName:      professor.FirstName,
		LastName:       professor.LastName,
		OfficeLocation: professor.OfficeLocation,
		Courses:        courses,
	}
}

// ProfessorListItem is the list projection with populated course titles
type ProfessorListItem struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"userId"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	OfficeLocation *string     `json:"officeLocation,omitempty"`
	Courses        []CourseRef `json:"courses"`
}

// ProfessorListResponse represents a page of professors
type ProfessorListResponse struct {
	Professors []ProfessorListItem `json:"professors"`
	PaginationInfo
}

// CourseRef is the minimal display projection of a referenced course
type CourseRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// PersonRef is the minimal display projection of a referenced person
type PersonRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
