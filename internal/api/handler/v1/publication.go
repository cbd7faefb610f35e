package v1

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

type PublicationService interface {
	Feed(ctx context.Context, filter domain.PublicationFilter, page domain.PageRequest) ([]domain.FeedItem, domain.Pagination, error)
	Get(ctx context.Context, id uint) (domain.Publication, error)
	GetFromRequest(ctx context.Context, requestID uint) (domain.FeedItem, error)
	Create(ctx context.Context, p domain.Publication, files service.PublicationFiles) (domain.Publication, error)
	Update(ctx context.Context, id uint, apply func(*domain.Publication) error, files service.PublicationFiles) (domain.Publication, error)
	Delete(ctx context.Context, id uint) error
}

type PublicationHandler struct {
	svc   PublicationService
	files []request.FileRule
}

func NewPublicationHandler(svc PublicationService) *PublicationHandler {
	return &PublicationHandler{
		svc: svc,
		files: []request.FileRule{
			{Field: "image", MaxSize: request.MaxImageSize, Exts: request.ImageExts},
			{Field: "pdf", MaxSize: request.MaxDocumentSize, Exts: request.PDFExts},
		},
	}
}

// HandleListPublications godoc
// @Summary      List publications
// @Description  Curated publications merged with accepted or published publication requests, newest first
// @Tags         publications
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        type      query     string  false  "Filter by type, all for every type"
// @Param        featured  query     bool    false  "Only featured publications"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.FeedItem}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications [get]
func (h *PublicationHandler) HandleListPublications(ctx *gin.Context) {
	page, err := request.BindPage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	featured, err := request.OptionalBool(ctx, "featured")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.PublicationFilter{
		Status:   ctx.Query("status"),
		Type:     ctx.Query("type"),
		Featured: featured,
	}

	items, pagination, err := h.svc.Feed(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPublications -> h.svc.Feed", err, nil)
		return
	}

	response.Paginated(ctx, items, pagination)
}

// HandleGetPublication godoc
// @Summary      Get a publication
// @Description  Accepts a numeric id or request_<id> for a publication request shown in the feed
// @Tags         publications
// @Produce      json
// @Param        id   path      string  true  "Publication ID"
// @Success      200  {object}  response.Body{data=domain.Publication}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/{id} [get]
func (h *PublicationHandler) HandleGetPublication(ctx *gin.Context) {
	raw := ctx.Param("id")

	if rest, isRequest := strings.CutPrefix(raw, service.FeedRequestPrefix); isRequest {
		requestID, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid id: %w", err)))
			return
		}

		item, err := h.svc.GetFromRequest(ctx.Request.Context(), uint(requestID))
		if err != nil {
			renderServiceErr(ctx, "v1.HandleGetPublication -> h.svc.GetFromRequest", err, raw)
			return
		}

		response.OK(ctx, item)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPublication -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, p)
}

// HandleCreatePublication godoc
// @Summary      Create a publication
// @Description  An uploaded pdf is stored under publications/pdf and sets pdf_url
// @Tags         publications
// @Accept       json,mpfd
// @Produce      json
// @Param        input  body      request.Publication  true   "Publication"
// @Param        image  formData  file                 false  "Cover image"
// @Param        pdf    formData  file                 false  "Full text"
// @Success      201  {object}  response.Body{data=domain.Publication}
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications [post]
func (h *PublicationHandler) HandleCreatePublication(ctx *gin.Context) {
	var input request.Publication
	if !bind(ctx, &input) || !validate(ctx, input.ValidateCreate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.files...)
	if !ok {
		return
	}

	var p domain.Publication
	_ = input.ApplyTo(&p)

	created, err := h.svc.Create(ctx.Request.Context(), p, service.PublicationFiles{
		Image: uploads["image"],
		PDF:   uploads["pdf"],
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreatePublication -> h.svc.Create", err, nil)
		return
	}

	response.Created(ctx, "Publication created successfully", created)
}

// HandleUpdatePublication godoc
// @Summary      Update a publication
// @Tags         publications
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      int                  true  "Publication ID"
// @Param        input  body      request.Publication  true  "Fields to change"
// @Success      200  {object}  response.Body{data=domain.Publication}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/{id} [put]
func (h *PublicationHandler) HandleUpdatePublication(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.Publication
	if !bind(ctx, &input) || !validate(ctx, input.ValidateUpdate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.files...)
	if !ok {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyTo, service.PublicationFiles{
		Image: uploads["image"],
		PDF:   uploads["pdf"],
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdatePublication -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Publication updated successfully", updated)
}

// HandleDeletePublication godoc
// @Summary      Delete a publication
// @Tags         publications
// @Produce      json
// @Param        id   path      int  true  "Publication ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /publications/{id} [delete]
func (h *PublicationHandler) HandleDeletePublication(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeletePublication -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Publication deleted successfully")
}
