package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell/internal/errors"
	"github.com/inkwellapp/inkwell/internal/validation"
)

type bookmarkRequest struct {
	BookID string `json:"book_id" validate:"required"`
	Title  string `json:"title" validate:"notblank"`
	Page   int    `json:"page" validate:"min=1"`
	Color  string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Kind   string `json:"kind" validate:"oneof=highlight note drawing"`
}

func validRequest() bookmarkRequest {
	return bookmarkRequest{BookID: "book-1", Title: "Chapter 3", Page: 12, Color: "#FFE082", Kind: "note"}
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Validate(validRequest()))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		mutate    func(r *bookmarkRequest)
		wantField string
		wantMsg   string
	}{
		{"blank title", func(r *bookmarkRequest) { r.Title = "   " }, "title", "is required"},
		{"empty title", func(r *bookmarkRequest) { r.Title = "" }, "title", "is required"},
		{"page zero", func(r *bookmarkRequest) { r.Page = 0 }, "page", "must be at least 1"},
		{"bad color", func(r *bookmarkRequest) { r.Color = "yellow" }, "color", "must be a hex color such as #FFE082"},
		{"bad kind", func(r *bookmarkRequest) { r.Kind = "scribble" }, "kind", "must be one of: highlight note drawing"},
		{"missing book", func(r *bookmarkRequest) { r.BookID = "" }, "book_id", "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := v.Validate(req)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrValidation)

			var domainErr *errors.Error
			require.ErrorAs(t, err, &domainErr)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("accent", "#000", "hexcolor"))

	assert.NoError(t, v.Var("accent", "rgba(0, 0, 0, 0.5)", "iscolor"))
	err := v.Var("accent", "black", "hexcolor")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
}
