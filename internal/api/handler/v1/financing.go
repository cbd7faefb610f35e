package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

type FinancingService interface {
	List(ctx context.Context, filter domain.FinancingFilter, page domain.PageRequest) ([]domain.FinancingRequest, domain.Pagination, error)
	Get(ctx context.Context, id uint) (domain.FinancingRequest, error)
	Submit(ctx context.Context, intake service.FinancingIntake) (domain.FinancingRequest, error)
	Update(ctx context.Context, id uint, apply func(*domain.FinancingRequest) error) (domain.FinancingRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string, notes *string, reviewedBy string) (domain.FinancingRequest, error)
	Delete(ctx context.Context, id uint) error
}

type FinancingHandler struct {
	svc FinancingService
}

func NewFinancingHandler(svc FinancingService) *FinancingHandler {
	return &FinancingHandler{
		svc: svc,
	}
}

// HandleListFinancingRequests godoc
// @Summary      List financing requests
// @Tags         financing-requests
// @Produce      json
// @Param        status        query     string  false  "Filter by status"
// @Param        project_type  query     string  false  "Filter by project type"
// @Param        sector        query     string  false  "Sector contains"
// @Param        search        query     string  false  "Matches company, contact and project title"
// @Param        page          query     int     false  "Page number"
// @Param        per_page      query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.FinancingRequest}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /financing-requests [get]
func (h *FinancingHandler) HandleListFinancingRequests(ctx *gin.Context) {
	page, err := request.BindPage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.FinancingFilter{
		Status:      ctx.Query("status"),
		ProjectType: ctx.Query("project_type"),
		Sector:      ctx.Query("sector"),
		Search:      ctx.Query("search"),
	}

	rows, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListFinancingRequests -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, rows, pagination)
}

// HandleGetFinancingRequest godoc
// @Summary      Get a financing request
// @Tags         financing-requests
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Body{data=domain.FinancingRequest}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /financing-requests/{id} [get]
func (h *FinancingHandler) HandleGetFinancingRequest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	f, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetFinancingRequest -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, f)
}

// HandleSubmitFinancingRequest godoc
// @Summary      Submit a financing request
// @Description  Takes either the contact form fields (name, email, phone, subject, message) or the structured application. Missing structured fields are derived from the contact fields.
// @Tags         financing-requests
// @Accept       json,mpfd
// @Produce      json
// @Param        input  body      request.FinancingIntake  true  "Request"
// @Success      201  {object}  response.Body{data=domain.FinancingRequest}
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /financing-requests [post]
func (h *FinancingHandler) HandleSubmitFinancingRequest(ctx *gin.Context) {
	var input request.FinancingIntake
	if !bind(ctx, &input) || !validate(ctx, input.Validate()) {
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), input.ToIntake())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubmitFinancingRequest -> h.svc.Submit", err, nil)
		return
	}

	response.Created(ctx, "Financing request submitted successfully", created)
}

// HandleUpdateFinancingRequest godoc
// @Summary      Update a financing request
// @Tags         financing-requests
// @Accept       json
// @Produce      json
// @Param        id     path      int                      true  "Request ID"
// @Param        input  body      request.FinancingUpdate  true  "Fields to change"
// @Success      200  {object}  response.Body{data=domain.FinancingRequest}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /financing-requests/{id} [put]
func (h *FinancingHandler) HandleUpdateFinancingRequest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.FinancingUpdate
	if !bind(ctx, &input) || !validate(ctx, input.Validate()) {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyTo)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateFinancingRequest -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Financing request updated successfully", updated)
}

// HandleReviewFinancingRequest godoc
// @Summary      Review a financing request
// @Description  Records the decision with reviewer (admin by default) and review time
// @Tags         financing-requests
// @Accept       json
// @Produce      json
// @Param        id     path      int                      true  "Request ID"
// @Param        input  body      request.FinancingReview  true  "Decision"
// @Success      200  {object}  response.Body{data=domain.FinancingRequest}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /financing-requests/{id}/status [patch]
func (h *FinancingHandler) HandleReviewFinancingRequest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.FinancingReview
	if !bind(ctx, &input) || !validate(ctx, input.Validate()) {
		return
	}

	updated, err := h.svc.UpdateStatus(ctx.Request.Context(), id, input.Status, input.ReviewNotes, input.ReviewedBy)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleReviewFinancingRequest -> h.svc.UpdateStatus", err, id)
		return
	}

	response.Updated(ctx, "Status updated successfully", updated)
}

// HandleDeleteFinancingRequest godoc
// @Summary      Delete a financing request
// @Tags         financing-requests
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /financing-requests/{id} [delete]
func (h *FinancingHandler) HandleDeleteFinancingRequest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteFinancingRequest -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Financing request deleted successfully")
}
