package validation

import (
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

// Entity payload validators. Each validator checks fields in declaration
// order and returns on the first violation, as a structured validation error
// carrying the offending field.

func checkString(field, value string, required bool, min, max int) error {
	if value == "" {
		if required {
			return apperrors.NewValidationError(field, requiredMsg(field))
		}
		return nil
	}
	if min > 0 && len(value) < min {
		return apperrors.NewValidationError(field, minMsg(field, min))
	}
	if max > 0 && len(value) > max {
		return apperrors.NewValidationError(field, maxMsg(field, max))
	}
	return nil
}

func checkUsername(field, value string, required bool) error {
	if err := checkString(field, value, required, UsernameMinLength, UsernameMaxLength); err != nil {
		return err
	}
	if value != "" && !CompiledPatterns.Username.MatchString(value) {
		return apperrors.NewValidationError(field, alnumMsg(field))
	}
	return nil
}

func checkEmail(field, value string, required bool) error {
	if value == "" {
		if required {
			return apperrors.NewValidationError(field, requiredMsg(field))
		}
		return nil
	}
	if !CompiledPatterns.Email.MatchString(value) {
		return apperrors.NewValidationError(field, emailMsg(field))
	}
	return nil
}

func checkPassword(field, value string, required bool) error {
	return checkString(field, value, required, PasswordMinLength, 0)
}

// checkID validates the canonical id format: ids are positive integers, and
// the check runs before any lookup is attempted.
func checkID(field string, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError(field, idMsg(field))
	}
	return nil
}

func checkIDList(field string, ids []int64) error {
	for _, id := range ids {
		if id <= 0 {
			return apperrors.NewValidationError(field, idMsg(field))
		}
	}
	return nil
}

func checkDate(field string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if !ValidDate(*value) {
		return apperrors.NewValidationError(field, dateMsg(field))
	}
	return nil
}

// ValidateRegisterUser validates a self-registration payload
func ValidateRegisterUser(req dto.RegisterRequest) error {
	if err := checkUsername("username", req.Username, true); err != nil {
		return err
	}
	if err := checkEmail("email", req.Email, true); err != nil {
		return err
	}
	return checkPassword("password", req.Password, true)
}

// ValidateLogin validates a login payload
func ValidateLogin(req dto.LoginRequest) error {
	if err := checkUsername("username", req.Username, true); err != nil {
		return err
	}
	return checkPassword("password", req.Password, true)
}

// ValidateCreateAdmin validates an admin-creation payload
func ValidateCreateAdmin(req dto.CreateAdminRequest) error {
	return ValidateRegisterUser(dto.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
}

// ValidateUpdateUser validates a user update payload; present fields must
// satisfy the creation constraints.
func ValidateUpdateUser(req dto.UpdateUserRequest) error {
	if req.Username != nil {
		if err := checkUsername("username", *req.Username, true); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := checkEmail("email", *req.Email, true); err != nil {
			return err
		}
	}
	if req.Password != nil {
		if err := checkPassword("password", *req.Password, true); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCreateProfessor validates a professor creation payload
func ValidateCreateProfessor(req dto.CreateProfessorRequest) error {
	if err := checkID("userId", req.UserID); err != nil {
		return err
	}
	if err := checkString("firstName", req.FirstName, true, NameMinLength, NameMaxLength); err != nil {
		return err
	}
	if err := checkString("lastName", req.LastName, true, NameMinLength, NameMaxLength); err != nil {
		return err
	}
	return checkIDList("courses", req.Courses)
}

// ValidateUpdateProfessor validates a professor update payload
func ValidateUpdateProfessor(req dto.UpdateProfessorRequest) error {
	if req.UserID != nil {
		if err := checkID("userId", *req.UserID); err != nil {
			return err
		}
	}
	if req.FirstName != nil {
		if err := checkString("firstName", *req.FirstName, true, NameMinLength, NameMaxLength); err != nil {
			return err
		}
	}
	if req.LastName != nil {
		if err := checkString("lastName", *req.LastName, true, NameMinLength, NameMaxLength); err != nil {
			return err
		}
	}
	if req.Courses != nil {
		if err := checkIDList("courses", *req.Courses); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCreateStudent validates a student creation payload
func ValidateCreateStudent(req dto.CreateStudentRequest) error {
	if err := checkID("userId", req.UserID); err != nil {
		return err
	}
	if err := checkString("firstName", req.FirstName, true, NameMinLength, NameMaxLength); err != nil {
		return err
	}
	if err := checkString("lastName", req.LastName, true, NameMinLength, NameMaxLength); err != nil {
		return err
	}
	if err := checkIDList("courses", req.Courses); err != nil {
		return err
	}
	return checkDate("dateOfBirth", req.DateOfBirth)
}

// ValidateUpdateStudent validates a student update payload
func ValidateUpdateStudent(req dto.UpdateStudentRequest) error {
	if req.UserID != nil {
		if err := checkID("userId", *req.UserID); err != nil {
			return err
		}
	}
	if req.FirstName != nil {
		if err := checkString("firstName", *req.FirstName, true, NameMinLength, NameMaxLength); err != nil {
			return err
		}
	}
	if req.LastName != nil {
		if err := checkString("lastName", *req.LastName, true, NameMinLength, NameMaxLength); err != nil {
			return err
		}
	}
	if req.Courses != nil {
		if err := checkIDList("courses", *req.Courses); err != nil {
			return err
		}
	}
	return checkDate("dateOfBirth", req.DateOfBirth)
}

// ValidateCreateCourse validates a course creation payload
func ValidateCreateCourse(req dto.CreateCourseRequest) error {
	if err := checkString("title", req.Title, true, TitleMinLength, TitleMaxLength); err != nil {
		return err
	}
	if err := checkString("department", req.Department, true, DepartmentMinLength, DepartmentMaxLength); err != nil {
		return err
	}
	if req.Capacity <= 0 {
		return apperrors.NewValidationError("capacity", positiveMsg("capacity"))
	}
	if err := checkIDList("professors", req.Professors); err != nil {
		return err
	}
	return checkIDList("students", req.Students)
}

// ValidateUpdateCourse validates a course update payload
func ValidateUpdateCourse(req dto.UpdateCourseRequest) error {
	if req.Title != nil {
		if err := checkString("title", *req.Title, true, TitleMinLength, TitleMaxLength); err != nil {
			return err
		}
	}
	if req.Department != nil {
		if err := checkString("department", *req.Department, true, DepartmentMinLength, DepartmentMaxLength); err != nil {
			return err
		}
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return apperrors.NewValidationError("capacity", positiveMsg("capacity"))
	}
	if req.Professors != nil {
		if err := checkIDList("professors", *req.Professors); err != nil {
			return err
		}
	}
	if req.Students != nil {
		if err := checkIDList("students", *req.Students); err != nil {
			return err
		}
	}
	return nil
}
