package request

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/webcms/cms-api/internal/domain"
)

type formUnmarshaler interface {
	UnmarshalForm(values []string) error
}

// Bind decodes a JSON body, or a urlencoded or multipart form. Form fields
// of list and flexible bool types carry `form:"-"` and are filled here from
// "name" or "name[]" values. Empty form values leave non-string pointer fields nil.
func Bind(ctx *gin.Context, dst any) error {
	switch ctx.ContentType() {
	case binding.MIMEMultipartPOSTForm, binding.MIMEPOSTForm:
		if err := ctx.ShouldBindWith(dst, binding.Form); err != nil {
			return err
		}

		return bindFormLists(ctx, dst)
	default:
		return ctx.ShouldBindJSON(dst)
	}
}

func bindFormLists(ctx *gin.Context, dst any) error {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	errs := validation.Errors{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if tag := field.Tag.Get("form"); tag != "-" {
			if tag != "" && field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() != reflect.String {
				if raw, ok := ctx.GetPostForm(tag); ok && strings.TrimSpace(raw) == "" {
					v.Field(i).Set(reflect.Zero(field.Type))
				}
			}
			continue
		}

		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}

		values, ok := ctx.GetPostFormArray(name)
		if !ok {
			values, ok = ctx.GetPostFormArray(name + "[]")
		}
		if !ok {
			continue
		}

		fv := v.Field(i)
		target := fv
		if fv.Kind() == reflect.Ptr {
			target = reflect.New(fv.Type().Elem())
		} else {
			target = fv.Addr()
		}

		u, isForm := target.Interface().(formUnmarshaler)
		if !isForm {
			continue
		}
		if err := u.UnmarshalForm(values); err != nil {
			errs[name] = err
			continue
		}
		if fv.Kind() == reflect.Ptr {
			fv.Set(target)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

func (q PageQuery) PageRequest() domain.PageRequest {
	return domain.PageRequest{Page: q.Page, PerPage: q.PerPage}
}

// BindPage reads page and per_page from the query string.
func BindPage(ctx *gin.Context) (domain.PageRequest, error) {
	var q PageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return domain.PageRequest{}, fmt.Errorf("invalid pagination: %w", err)
	}

	return q.PageRequest(), nil
}

// OptionalBool parses a query flag; nil when absent.
func OptionalBool(ctx *gin.Context, key string) (*bool, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	var b FlexBool
	if err := b.set(raw); err != nil {
		return nil, fmt.Errorf("%s %w", key, err)
	}

	return b.Ptr(), nil
}
