package v1

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
)

var registrationStatuses = []string{
	string(domain.RegistrationPending),
	string(domain.RegistrationConfirmed),
	string(domain.RegistrationCancelled),
}

type RegistrationService interface {
	List(ctx context.Context, filter domain.RegistrationFilter, page domain.PageRequest) ([]domain.Registration, domain.Pagination, error)
	UpdateStatus(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleListRegistrations godoc
// @Summary      List event registrations
// @Tags         registrations
// @Produce      json
// @Param        event_id  query     int     false  "Filter by event"
// @Param        status    query     string  false  "Filter by status"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.Registration}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /event-registrations [get]
func (h *RegistrationHandler) HandleListRegistrations(ctx *gin.Context) {
	page, err := request.BindPage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.RegistrationFilter{Status: domain.RegistrationStatus(ctx.Query("status"))}
	if raw := ctx.Query("event_id"); raw != "" {
		eventID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event_id: %w", err)))
			return
		}
		id := uint(eventID)
		filter.EventID = &id
	}

	regs, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListRegistrations -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, regs, pagination)
}

// HandleUpdateRegistrationStatus godoc
// @Summary      Change a registration's status
// @Description  Cancelling frees a seat. Reinstating a cancelled registration takes a seat back without re-checking capacity or deadline.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        id     path      int             true  "Registration ID"
// @Param        input  body      request.Status  true  "New status"
// @Success      200    {object}  response.Body{data=domain.Registration}
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /event-registrations/{id}/status [patch]
func (h *RegistrationHandler) HandleUpdateRegistrationStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.Status
	if !bind(ctx, &input) || !validate(ctx, input.Validate(registrationStatuses)) {
		return
	}

	reg, err := h.svc.UpdateStatus(ctx.Request.Context(), id, domain.RegistrationStatus(input.Status))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateRegistrationStatus -> h.svc.UpdateStatus", err, id)
		return
	}

	response.Updated(ctx, "Registration status updated successfully", reg)
}

// HandleDeleteRegistration godoc
// @Summary      Delete a registration
// @Tags         registrations
// @Produce      json
// @Param        id   path      int  true  "Registration ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /event-registrations/{id} [delete]
func (h *RegistrationHandler) HandleDeleteRegistration(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteRegistration -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Registration deleted successfully")
}
