package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-reviewer/internal/annotate"
	"github.com/jonathan/resume-reviewer/internal/validation"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Input rejections map to 400, oversized uploads to 413, an unavailable
// annotator to 503; everything else is a 500.
func HTTPStatus(err error) int {
	var (
		tooLarge *http.MaxBytesError
		rejected *validation.Error
		starting *annotate.StartupError
	)

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &rejected):
		return http.StatusBadRequest
	case errors.As(err, &starting):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
