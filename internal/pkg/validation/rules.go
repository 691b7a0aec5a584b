package validation

import (
	"fmt"
	"regexp"
	"time"
)

// Field length bounds shared by the entity validators
const (
	UsernameMinLength = 3
	UsernameMaxLength = 30

	PasswordMinLength = 6

	NameMinLength = 2
	NameMaxLength = 50

	TitleMinLength = 3
	TitleMaxLength = 100

	DepartmentMinLength = 3
	DepartmentMaxLength = 50
)

// DateLayout is the only accepted date format for date fields
const DateLayout = "2006-01-02"

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(`^\S+@\S+\.\S+$`),
	Username: regexp.MustCompile(`^[a-zA-Z0-9]+$`),
}

// ValidDate reports whether value is a real calendar date in YYYY-MM-DD
// form. The parse result is formatted back and compared so that inputs the
// parser silently normalizes (e.g. 2023-02-30) are rejected.
func ValidDate(value string) bool {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == value
}

// Message helpers shared by the entity validators. Wording follows the
// API's fixed per-field message catalogue.

func requiredMsg(field string) string {
	return fmt.Sprintf("The %s field is required.", field)
}

func minMsg(field string, min int) string {
	return fmt.Sprintf("The %s field must be at least %d characters long.", field, min)
}

func maxMsg(field string, max int) string {
	return fmt.Sprintf("The %s field must be at most %d characters long.", field, max)
}

func alnumMsg(field string) string {
	return fmt.Sprintf("The %s field must only contain alphanumeric characters.", field)
}

func emailMsg(field string) string {
	return fmt.Sprintf("The %s field must be a valid email address.", field)
}

func idMsg(field string) string {
	return fmt.Sprintf("Each item in %s must be a valid ID.", field)
}

func dateMsg(field string) string {
	return fmt.Sprintf("The %s field must be a valid date in the format YYYY-MM-DD.", field)
}

func positiveMsg(field string) string {
	return fmt.Sprintf("The %s field must be a positive integer.", field)
}
