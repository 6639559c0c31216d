package api

import (
	"fmt"
	"net/http"
	"testing"

	"datalens/internal/errors"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errors.NotFound("dataset abc"), http.StatusNotFound},
		{"wrapped not found", errors.Wrap(errors.NotFound("dataset abc"), "failed to re-read"), http.StatusNotFound},
		{"validation", errors.ValidationError("dataset is not ready for analysis"), http.StatusBadRequest},
		{"unsupported format", errors.UnsupportedFormat(".pdf"), http.StatusBadRequest},
		{"shape mismatch", errors.New(errors.CodeShapeMismatch, "column mismatch"), http.StatusBadRequest},
		{"plain error", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusForError(tc.err); got != tc.want {
				t.Errorf("statusForError(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
