package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
)

type TrainingService interface {
	List(ctx context.Context, filter domain.TrainingFilter, page domain.PageRequest) ([]domain.TrainingRegistration, domain.Pagination, error)
	Get(ctx context.Context, id uint) (domain.TrainingRegistration, error)
	Register(ctx context.Context, t domain.TrainingRegistration) (domain.TrainingRegistration, error)
	Update(ctx context.Context, id uint, apply func(*domain.TrainingRegistration) error) (domain.TrainingRegistration, error)
	Delete(ctx context.Context, id uint) error
}

type TrainingHandler struct {
	svc TrainingService
}

func NewTrainingHandler(svc TrainingService) *TrainingHandler {
	return &TrainingHandler{
		svc: svc,
	}
}

// HandleListTrainingRegistrations godoc
// @Summary      List training registrations
// @Tags         training-registrations
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        program   query     string  false  "Filter by program code"
// @Param        search    query     string  false  "Matches name, email and company"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.TrainingRegistration}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /training-registrations [get]
func (h *TrainingHandler) HandleListTrainingRegistrations(ctx *gin.Context) {
	page, err := request.BindPage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.TrainingFilter{
		Status:  ctx.Query("status"),
		Program: ctx.Query("program"),
		Search:  ctx.Query("search"),
	}

	rows, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListTrainingRegistrations -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, rows, pagination)
}

// HandleGetTrainingRegistration godoc
// @Summary      Get a training registration
// @Tags         training-registrations
// @Produce      json
// @Param        id   path      int  true  "Registration ID"
// @Success      200  {object}  response.Body{data=domain.TrainingRegistration}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /training-registrations/{id} [get]
func (h *TrainingHandler) HandleGetTrainingRegistration(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	t, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetTrainingRegistration -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, t)
}

// HandleRegisterTraining godoc
// @Summary      Register for a training program
// @Description  program_name is filled from the catalogue when left empty
// @Tags         training-registrations
// @Accept       json,mpfd
// @Produce      json
// @Param        input  body      request.TrainingRegistration  true  "Registration"
// @Success      201  {object}  response.Body{data=domain.TrainingRegistration}
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /training-registrations [post]
func (h *TrainingHandler) HandleRegisterTraining(ctx *gin.Context) {
	var input request.TrainingRegistration
	if !bind(ctx, &input) || !validate(ctx, input.ValidateCreate()) {
		return
	}

	var t domain.TrainingRegistration
	_ = input.ApplyTo(&t)

	created, err := h.svc.Register(ctx.Request.Context(), t)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegisterTraining -> h.svc.Register", err, nil)
		return
	}

	response.Created(ctx, "Training registration successful", created)
}

// HandleUpdateTrainingRegistration godoc
// @Summary      Update a training registration
// @Description  Moving to confirmed or cancelled stamps confirmed_at or cancelled_at
// @Tags         training-registrations
// @Accept       json
// @Produce      json
// @Param        id     path      int                           true  "Registration ID"
// @Param        input  body      request.TrainingRegistration  true  "Fields to change"
// @Success      200  {object}  response.Body{data=domain.TrainingRegistration}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /training-registrations/{id} [put]
func (h *TrainingHandler) HandleUpdateTrainingRegistration(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.TrainingRegistration
	if !bind(ctx, &input) || !validate(ctx, input.ValidateUpdate()) {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyTo)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateTrainingRegistration -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Training registration updated successfully", updated)
}

// HandleDeleteTrainingRegistration godoc
// @Summary      Delete a training registration
// @Tags         training-registrations
// @Produce      json
// @Param        id   path      int  true  "Registration ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /training-registrations/{id} [delete]
func (h *TrainingHandler) HandleDeleteTrainingRegistration(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteTrainingRegistration -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Training registration deleted successfully")
}
