package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-reviewer/internal/annotate"
	"github.com/jonathan/resume-reviewer/internal/validation"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", validation.ErrNoResumeFile, http.StatusBadRequest},
		{"wrapped validation error", fmt.Errorf("checking upload: %w", validation.ErrJobDescriptionTooShort), http.StatusBadRequest},
		{"body too large", &http.MaxBytesError{Limit: 16 << 20}, http.StatusRequestEntityTooLarge},
		{"annotator startup", &annotate.StartupError{Stage: "handshake", Cause: errors.New("timeout")}, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
