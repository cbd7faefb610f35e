package response

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type Err struct {
	HTTPStatusCode int                 `json:"-"`
	Success        bool                `json:"success"`
	Message        string              `json:"message"`
	Errors         map[string][]string `json:"errors,omitempty"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Message:        err.Error(),
	}
}

func ErrNotFound(resource, field string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Message:        fmt.Sprintf("%s with %s = %v not found", resource, field, value),
	}
}

// ErrValidation renders field errors as field -> messages. Errors nested
// under list entries are flattened to dotted keys such as "authors.0.name".
func ErrValidation(err error) *Err {
	fields := map[string][]string{}

	var errs validation.Errors
	if errors.As(err, &errs) {
		flatten("", errs, fields)
	} else {
		fields["_"] = []string{err.Error()}
	}

	return &Err{
		HTTPStatusCode: http.StatusUnprocessableEntity,
		Message:        "validation failed",
		Errors:         fields,
	}
}

func ErrRequestTimeout() *Err {
	return &Err{
		HTTPStatusCode: http.StatusServiceUnavailable,
		Message:        "request timed out",
	}
}

// ErrInternalServerError logs err and hides it from the client.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "internal server error",
	}
}

func flatten(prefix string, errs validation.Errors, out map[string][]string) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if errs[k] == nil {
			continue
		}
		key := strings.TrimPrefix(prefix+"."+k, ".")

		var nested validation.Errors
		if errors.As(errs[k], &nested) {
			flatten(key, nested, out)
			continue
		}

		out[key] = append(out[key], errs[k].Error())
	}
}
