package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

var notFound = []struct {
	err      error
	resource string
}{
	{service.ErrRegistrationNotFound, "registration"},
	{service.ErrEventNotFound, "event"},
	{service.ErrActualityNotFound, "actuality"},
	{service.ErrPublicationNotFound, "publication"},
	{service.ErrPublicationRequestNotFound, "publication request"},
	{service.ErrGalleryPhotoNotFound, "gallery photo"},
	{service.ErrFinancingRequestNotFound, "financing request"},
	{service.ErrTrainingRegistrationNotFound, "training registration"},
	{service.ErrSubscriptionNotFound, "subscription"},
}

var businessRules = []error{
	service.ErrRegistrationNotApplicable,
	service.ErrDeadlineExpired,
	service.ErrCapacityExceeded,
	service.ErrDuplicateRegistration,
}

// renderServiceErr maps a service error onto the response envelope. op names
// the failing call for the log line; id is echoed in not-found messages.
func renderServiceErr(ctx *gin.Context, op string, err error, id any) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		response.RenderErr(ctx, response.ErrValidation(vErr.Fields))
		return
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		response.RenderErr(ctx, response.ErrValidation(fields))
		return
	}

	for _, nf := range notFound {
		if errors.Is(err, nf.err) {
			response.RenderErr(ctx, response.ErrNotFound(nf.resource, "id", id))
			return
		}
	}

	for _, rule := range businessRules {
		if errors.Is(err, rule) {
			response.RenderErr(ctx, response.ErrBadRequest(rule))
			return
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		response.RenderErr(ctx, response.ErrRequestTimeout())
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %s: %w", param, err)))
		return 0, false
	}

	return uint(id), true
}

// bind decodes the body into dst. Field problems found while decoding lists
// are reported as validation errors.
func bind(ctx *gin.Context, dst any) bool {
	if err := request.Bind(ctx, dst); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			response.RenderErr(ctx, response.ErrValidation(fields))
			return false
		}

		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	return true
}

func validate(ctx *gin.Context, err error) bool {
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return false
	}

	return true
}

func readUploads(ctx *gin.Context, rules ...request.FileRule) (map[string]*domain.Upload, bool) {
	uploads, err := request.ReadUploads(ctx, rules...)
	if err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			response.RenderErr(ctx, response.ErrValidation(fields))
			return nil, false
		}

		response.RenderErr(ctx, response.ErrBadRequest(err))
		return nil, false
	}

	return uploads, true
}
