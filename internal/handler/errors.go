package handler

import (
	"errors"
	"net/http"

	"heritageportal/internal/workflow"

	"gorm.io/gorm"
)

// httpStatus translates core workflow rejections into HTTP status codes.
// Anything unrecognized is treated as a bad request, matching how the
// rest of the API reports service-level failures.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrInvalidState),
		errors.Is(err, workflow.ErrAlreadyForwarded),
		errors.Is(err, workflow.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
