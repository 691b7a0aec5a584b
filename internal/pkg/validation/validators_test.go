package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// violation extracts the structured validation error or fails the test.
func violation(t *testing.T, err error) *apperrors.CustomError {
	t.Helper()
	require.Error(t, err)
	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	return custom
}

func TestValidateRegisterUser(t *testing.T) {
	valid := dto.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "secret1"}
	assert.NoError(t, ValidateRegisterUser(valid))

	tests := []struct {
		name    string
		mutate  func(r *dto.RegisterRequest)
		field   string
		message string
	}{
		{
			name:    "missing username",
			mutate:  func(r *dto.RegisterRequest) { r.Username = "" },
			field:   "username",
			message: "The username field is required.",
		},
		{
			name:    "username too short",
			mutate:  func(r *dto.RegisterRequest) { r.Username = "ab" },
			field:   "username",
			message: "The username field must be at least 3 characters long.",
		},
		{
			name:    "username not alphanumeric",
			mutate:  func(r *dto.RegisterRequest) { r.Username = "ada_lovelace" },
			field:   "username",
			message: "The username field must only contain alphanumeric characters.",
		},
		{
			name:    "invalid email",
			mutate:  func(r *dto.RegisterRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "The email field must be a valid email address.",
		},
		{
			name:    "password too short",
			mutate:  func(r *dto.RegisterRequest) { r.Password = "short" },
			field:   "password",
			message: "The password field must be at least 6 characters long.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			custom := violation(t, ValidateRegisterUser(req))
			assert.Equal(t, tc.field, custom.Field)
			assert.Equal(t, tc.message, custom.Message)
		})
	}
}

func TestValidateRegisterUserReportsFirstViolationOnly(t *testing.T) {
	// Both username and email are invalid; the earlier field wins.
	custom := violation(t, ValidateRegisterUser(dto.RegisterRequest{
		Username: "", Email: "bad", Password: "x",
	}))
	assert.Equal(t, "username", custom.Field)
}

func TestValidateUpdateUserChecksOnlyPresentFields(t *testing.T) {
	assert.NoError(t, ValidateUpdateUser(dto.UpdateUserRequest{}))

	custom := violation(t, ValidateUpdateUser(dto.UpdateUserRequest{Email: strPtr("bad")}))
	assert.Equal(t, "email", custom.Field)

	custom = violation(t, ValidateUpdateUser(dto.UpdateUserRequest{Password: strPtr("short")}))
	assert.Equal(t, "password", custom.Field)
}

func TestValidateCreateProfessor(t *testing.T) {
	valid := dto.CreateProfessorRequest{UserID: 1, FirstName: "Grace", LastName: "Hopper"}
	assert.NoError(t, ValidateCreateProfessor(valid))

	custom := violation(t, ValidateCreateProfessor(dto.CreateProfessorRequest{
		UserID: 0, FirstName: "Grace", LastName: "Hopper",
	}))
	assert.Equal(t, "userId", custom.Field)

	custom = violation(t, ValidateCreateProfessor(dto.CreateProfessorRequest{
		UserID: 1, FirstName: "G", LastName: "Hopper",
	}))
	assert.Equal(t, "firstName", custom.Field)
	assert.Equal(t, "The firstName field must be at least 2 characters long.", custom.Message)

	custom = violation(t, ValidateCreateProfessor(dto.CreateProfessorRequest{
		UserID: 1, FirstName: "Grace", LastName: "Hopper", Courses: []int64{1, 0},
	}))
	assert.Equal(t, "courses", custom.Field)
	assert.Equal(t, "Each item in courses must be a valid ID.", custom.Message)
}

func TestValidateCreateStudentDate(t *testing.T) {
	valid := dto.CreateStudentRequest{UserID: 1, FirstName: "Ada", LastName: "Lovelace"}
	assert.NoError(t, ValidateCreateStudent(valid))

	t.Run("date is optional", func(t *testing.T) {
		req := valid
		req.DateOfBirth = nil
		assert.NoError(t, ValidateCreateStudent(req))
	})

	t.Run("well-formed date passes", func(t *testing.T) {
		req := valid
		req.DateOfBirth = strPtr("2001-04-12")
		assert.NoError(t, ValidateCreateStudent(req))
	})

	t.Run("wrong layout fails", func(t *testing.T) {
		req := valid
		req.DateOfBirth = strPtr("12/04/2001")
		custom := violation(t, ValidateCreateStudent(req))
		assert.Equal(t, "dateOfBirth", custom.Field)
		assert.Equal(t, "The dateOfBirth field must be a valid date in the format YYYY-MM-DD.", custom.Message)
	})

	t.Run("impossible calendar date fails", func(t *testing.T) {
		req := valid
		req.DateOfBirth = strPtr("2023-02-30")
		custom := violation(t, ValidateCreateStudent(req))
		assert.Equal(t, "dateOfBirth", custom.Field)
	})
}

func TestValidateCreateCourse(t *testing.T) {
	valid := dto.CreateCourseRequest{Title: "Databases", Department: "Computer Science", Capacity: 30}
	assert.NoError(t, ValidateCreateCourse(valid))

	custom := violation(t, ValidateCreateCourse(dto.CreateCourseRequest{
		Title: "DB", Department: "Computer Science", Capacity: 30,
	}))
	assert.Equal(t, "title", custom.Field)

	custom = violation(t, ValidateCreateCourse(dto.CreateCourseRequest{
		Title: "Databases", Department: "Computer Science", Capacity: 0,
	}))
	assert.Equal(t, "capacity", custom.Field)
	assert.Equal(t, "The capacity field must be a positive integer.", custom.Message)

	custom = violation(t, ValidateCreateCourse(dto.CreateCourseRequest{
		Title: "Databases", Department: "Computer Science", Capacity: 30, Students: []int64{-1},
	}))
	assert.Equal(t, "students", custom.Field)
}

func TestValidateUpdateCourse(t *testing.T) {
	assert.NoError(t, ValidateUpdateCourse(dto.UpdateCourseRequest{}))

	custom := violation(t, ValidateUpdateCourse(dto.UpdateCourseRequest{Capacity: intPtr(-5)}))
	assert.Equal(t, "capacity", custom.Field)

	professors := []int64{0}
	custom = violation(t, ValidateUpdateCourse(dto.UpdateCourseRequest{Professors: &professors}))
	assert.Equal(t, "professors", custom.Field)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2001-04-12"))
	assert.False(t, ValidDate("2001-4-12"))
	assert.False(t, ValidDate("2023-02-30"))
	assert.False(t, ValidDate("yesterday"))
}
