package response

import (
	"errors"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation_Flattens(t *testing.T) {
	err := validation.Errors{
		"title": errors.New("cannot be blank"),
		"authors": validation.Errors{
			"0": validation.Errors{"name": errors.New("cannot be blank")},
		},
	}

	got := ErrValidation(err)

	assert.Equal(t, http.StatusUnprocessableEntity, got.HTTPStatusCode)
	assert.Equal(t, map[string][]string{
		"title":          {"cannot be blank"},
		"authors.0.name": {"cannot be blank"},
	}, got.Errors)
}

func TestErrValidation_PlainError(t *testing.T) {
	got := ErrValidation(errors.New("boom"))

	assert.Equal(t, map[string][]string{"_": {"boom"}}, got.Errors)
}

func TestErrNotFound(t *testing.T) {
	got := ErrNotFound("event", "id", 7)

	assert.Equal(t, http.StatusNotFound, got.HTTPStatusCode)
	assert.Equal(t, "event with id = 7 not found", got.Message)
	assert.False(t, got.Success)
}
