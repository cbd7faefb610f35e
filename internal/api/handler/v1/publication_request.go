package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

type PublicationRequestService interface {
	List(ctx context.Context, filter domain.PublicationRequestFilter, page domain.PageRequest) ([]domain.PublicationRequest, domain.Pagination, error)
	Get(ctx context.Context, id uint) (domain.PublicationRequest, error)
	Create(ctx context.Context, r domain.PublicationRequest, files service.PublicationRequestFiles) (domain.PublicationRequest, error)
	Update(ctx context.Context, id uint, apply func(*domain.PublicationRequest) error, files service.PublicationRequestFiles) (domain.PublicationRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.PublicationRequest, error)
	Delete(ctx context.Context, id uint) error
}

type PublicationRequestHandler struct {
	svc   PublicationRequestService
	files []request.FileRule
}

func NewPublicationRequestHandler(svc PublicationRequestService) *PublicationRequestHandler {
	return &PublicationRequestHandler{
		svc: svc,
		files: []request.FileRule{
			{Field: "document_file", MaxSize: request.MaxDocumentSize, Exts: request.DocumentExts},
			{Field: "document_image", MaxSize: request.MaxGalleryImageSize, Exts: request.ImageExts},
		},
	}
}

// HandleListPublicationRequests godoc
// @Summary      List publication requests
// @Tags         publication-requests
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        type      query     string  false  "Filter by type"
// @Param        search    query     string  false  "Matches name, email, title and authors"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.PublicationRequest}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publication-requests [get]
func (h *PublicationRequestHandler) HandleListPublicationRequests(ctx *gin.Context) {
	page, err := request.BindPage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.PublicationRequestFilter{
		Status: ctx.Query("status"),
		Type:   ctx.Query("type"),
		Search: ctx.Query("search"),
	}

	items, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPublicationRequests -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, items, pagination)
}

// HandleGetPublicationRequest godoc
// @Summary      Get a publication request
// @Tags         publication-requests
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Body{data=domain.PublicationRequest}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publication-requests/{id} [get]
func (h *PublicationRequestHandler) HandleGetPublicationRequest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	r, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPublicationRequest -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, r)
}

// HandleSubmitPublicationRequest godoc
// @Summary      Submit a publication request
// @Description  Starts in pending status with the submission date set to now
// @Tags         publication-requests
// @Accept       json,mpfd
// @Produce      json
// @Param        input           body      request.PublicationRequest  true   "Submission"
// @Param        document_file   formData  file                        false  "pdf, doc or docx, up to 10 MB"
// @Param        document_image  formData  file                        false  "Image, up to 5 MB"
// @Success      201  {object}  response.Body{data=domain.PublicationRequest}
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publication-requests [post]
func (h *PublicationRequestHandler) HandleSubmitPublicationRequest(ctx *gin.Context) {
	var input request.PublicationRequest
	if !bind(ctx, &input) || !validate(ctx, input.ValidateCreate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.files...)
	if !ok {
		return
	}

	var r domain.PublicationRequest
	_ = input.ApplyTo(&r)

	created, err := h.svc.Create(ctx.Request.Context(), r, service.PublicationRequestFiles{
		Document: uploads["document_file"],
		Image:    uploads["document_image"],
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubmitPublicationRequest -> h.svc.Create", err, nil)
		return
	}

	response.Created(ctx, "Publication request submitted successfully", created)
}

// HandleUpdatePublicationRequest godoc
// @Summary      Update a publication request
// @Description  Only name, email and status can be changed, plus the attached files
// @Tags         publication-requests
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      int                         true  "Request ID"
// @Param        input  body      request.PublicationRequest  true  "Fields to change"
// @Success      200  {object}  response.Body{data=domain.PublicationRequest}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publication-requests/{id} [put]
func (h *PublicationRequestHandler) HandleUpdatePublicationRequest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.PublicationRequest
	if !bind(ctx, &input) || !validate(ctx, input.ValidateUpdate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.files...)
	if !ok {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyEditable, service.PublicationRequestFiles{
		Document: uploads["document_file"],
		Image:    uploads["document_image"],
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdatePublicationRequest -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Publication request updated successfully", updated)
}

// HandleUpdatePublicationRequestStatus godoc
// @Summary      Review a publication request
// @Description  accepted and rejected stamp reviewed_at, published stamps published_at
// @Tags         publication-requests
// @Accept       json
// @Produce      json
// @Param        id     path      int             true  "Request ID"
// @Param        input  body      request.Status  true  "New status"
// @Success      200  {object}  response.Body{data=domain.PublicationRequest}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publication-requests/{id}/status [patch]
func (h *PublicationRequestHandler) HandleUpdatePublicationRequestStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.Status
	if !bind(ctx, &input) || !validate(ctx, input.Validate(domain.PubRequestStatuses)) {
		return
	}

	updated, err := h.svc.UpdateStatus(ctx.Request.Context(), id, input.Status)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdatePublicationRequestStatus -> h.svc.UpdateStatus", err, id)
		return
	}

	response.Updated(ctx, "Status updated successfully", updated)
}

// HandleDeletePublicationRequest godoc
// @Summary      Delete a publication request
// @Tags         publication-requests
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publication-requests/{id} [delete]
func (h *PublicationRequestHandler) HandleDeletePublicationRequest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeletePublicationRequest -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Publication request deleted successfully")
}
