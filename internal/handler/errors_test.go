package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"heritageportal/internal/workflow"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHttpStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{workflow.ErrForbidden, http.StatusForbidden},
		{workflow.ErrInvalidTransition, http.StatusConflict},
		{&workflow.TransitionError{From: "completed", Event: workflow.EventStart}, http.StatusConflict},
		{workflow.ErrInvalidState, http.StatusConflict},
		{workflow.ErrAlreadyForwarded, http.StatusConflict},
		{workflow.ErrAlreadySubmitted, http.StatusConflict},
		{workflow.ErrOutOfRange, http.StatusBadRequest},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("project not found: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", workflow.ErrForbidden), http.StatusForbidden},
		{errors.New("something else"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, httpStatus(tt.err), "error %v", tt.err)
	}
}
