package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto the HTTP status taxonomy and
// the standard error envelope. Error messages are taken from the sentinel
// errors so the wording stays in one place.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && errors.Is(err, apperrors.ErrValidationFailed) {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, custom.Error())
		if custom.Field != "" {
			detail = detail.WithField(custom.Field)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidPage,
		apperrors.ErrInvalidPageLimit):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))

	// Unique-constraint conflicts are reported as bad requests, matching
	// the behaviour clients of the original API rely on.
	case apperrors.Is(err, apperrors.ErrUserAlreadyExists,
		apperrors.ErrProfessorAlreadyExists,
		apperrors.ErrStudentAlreadyExists,
		apperrors.ErrEnrollmentTaken,
		apperrors.ErrCourseAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())))

	case apperrors.Is(err, apperrors.ErrNotAuthenticated,
		apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, err.Error())))

	case apperrors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, err.Error())))

	case apperrors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, err.Error())))

	case apperrors.Is(err, apperrors.ErrAccessDenied,
		apperrors.ErrCannotDeleteAdmin,
		apperrors.ErrCannotUpdateOtherUser):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))

	case apperrors.Is(err, apperrors.ErrPageNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodePageNotFound, err.Error())))

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProfessorNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))

	// An empty collection on page one is a distinct condition from a page
	// past the end.
	case apperrors.Is(err, apperrors.ErrNothingFound):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeNothingRegistered, err.Error())))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
