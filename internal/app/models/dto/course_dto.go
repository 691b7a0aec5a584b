package dto

import "github.com/emredk/scholaris/internal/app/models"

// CreateCourseRequest represents the payload for course creation
type CreateCourseRequest struct {
	Title      string  `json:"title"`
	Department string  `json:"department"`
	Capacity   int     `json:"capacity"`
	Professors []int64 `json:"professors,omitempty"`
	Students   []int64 `json:"students,omitempty"`
}

// UpdateCourseRequest represents course update data. Present Professors or
// Students fields trigger a full roster reconciliation.
type UpdateCourseRequest struct {
	Title      *string  `json:"title,omitempty"`
	Department *string  `json:"department,omitempty"`
	Capacity   *int     `json:"capacity,omitempty"`
	Professors *[]int64 `json:"professors,omitempty"`
	Students   *[]int64 `json:"students,omitempty"`
}

// CourseResponse is the projected view of a course
type CourseResponse struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Department string  `json:"department"`
	Capacity   int     `json:"capacity"`
	Professors []int64 `json:"professors"`
	Students   []int64 `json:"students"`
}

// FromCourse converts a models.Course to its response projection
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}
	professors := course.ProfessorIDs
	if professors == nil {
		professors = []int64{}
	}
	students := course.StudentIDs
	if students == nil {
		students = []int64{}
	}
	return CourseResponse{
		ID:         course.ID,
		Title:      course.Title,
		Department: course.Department,
		Capacity:   course.Capacity,
		Professors: professors,
		Students:   students,
	}
}

// CourseListItem is the list projection with populated people names
type CourseListItem struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Department string      `json:"department"`
	Capacity   int         `json:"capacity"`
	Professors []PersonRef `json:"professors"`
	Students   []PersonRef `json:"students"`
}

// CourseListResponse represents a page of courses
type CourseListResponse struct {
	Courses []CourseListItem `json:"courses"`
	PaginationInfo
}

// CourseSummaryEntry aggregates headcounts for a single course
type CourseSummaryEntry struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Department      string   `json:"department"`
	Capacity        int      `json:"capacity"`
	TotalStudents   int      `json:"totalStudents"`
	TotalProfessors int      `json:"totalProfessors"`
	ProfessorNames  []string `json:"professorNames"`
}

// DepartmentSummaryEntry aggregates headcounts per department
type DepartmentSummaryEntry struct {
	Department      string  `json:"department"`
	TotalCourses    int     `json:"totalCourses"`
	TotalStudents   int     `json:"totalStudents"`
	TotalProfessors int     `json:"totalProfessors"`
	AverageCapacity float64 `json:"averageCapacity"`
}

// CourseSummaryResponse is the aggregate view served by the summary endpoint
type CourseSummaryResponse struct {
	Courses     []CourseSummaryEntry     `json:"courses"`
	Departments []DepartmentSummaryEntry `json:"departments"`
}
