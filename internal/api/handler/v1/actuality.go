package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

type ActualityService interface {
	List(ctx context.Context, filter domain.ActualityFilter, page domain.PageRequest) ([]domain.Actuality, domain.Pagination, error)
	Get(ctx context.Context, id uint) (domain.Actuality, error)
	Create(ctx context.Context, a domain.Actuality, images service.ActualityImages) (domain.Actuality, error)
	Update(ctx context.Context, id uint, apply func(*domain.Actuality) error, images service.ActualityImages) (domain.Actuality, error)
	Delete(ctx context.Context, id uint) error
}

type ActualityHandler struct {
	svc   ActualityService
	files []request.FileRule
}

func NewActualityHandler(svc ActualityService) *ActualityHandler {
	return &ActualityHandler{
		svc: svc,
		files: []request.FileRule{
			{Field: "image", MaxSize: request.MaxImageSize, Exts: request.ImageExts},
			{Field: "author_photo", MaxSize: request.MaxImageSize, Exts: request.ImageExts},
		},
	}
}

// HandleListActualities godoc
// @Summary      List actualities
// @Tags         actualities
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        category  query     string  false  "Filter by category"
// @Param        featured  query     bool    false  "Only featured articles"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.Actuality}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /actualities [get]
func (h *ActualityHandler) HandleListActualities(ctx *gin.Context) {
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

	filter := domain.ActualityFilter{
		Status:   ctx.Query("status"),
		Category: ctx.Query("category"),
		Featured: featured,
	}

	items, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListActualities -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, items, pagination)
}

// HandleGetActuality godoc
// @Summary      Get an actuality
// @Description  Each read increments the view counter
// @Tags         actualities
// @Produce      json
// @Param        id   path      int  true  "Actuality ID"
// @Success      200  {object}  response.Body{data=domain.Actuality}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /actualities/{id} [get]
func (h *ActualityHandler) HandleGetActuality(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	a, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetActuality -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, a)
}

// HandleCreateActuality godoc
// @Summary      Create an actuality
// @Tags         actualities
// @Accept       json,mpfd
// @Produce      json
// @Param        input         body      request.Actuality  true   "Article"
// @Param        image         formData  file               false  "Cover image"
// @Param        author_photo  formData  file               false  "Author photo"
// @Success      201  {object}  response.Body{data=domain.Actuality}
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /actualities [post]
func (h *ActualityHandler) HandleCreateActuality(ctx *gin.Context) {
	var input request.Actuality
	if !bind(ctx, &input) || !validate(ctx, input.ValidateCreate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.files...)
	if !ok {
		return
	}

	var a domain.Actuality
	_ = input.ApplyTo(&a)

	created, err := h.svc.Create(ctx.Request.Context(), a, service.ActualityImages{
		Image:       uploads["image"],
		AuthorPhoto: uploads["author_photo"],
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateActuality -> h.svc.Create", err, nil)
		return
	}

	response.Created(ctx, "Actuality created successfully", created)
}

// HandleUpdateActuality godoc
// @Summary      Update an actuality
// @Tags         actualities
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      int                true  "Actuality ID"
// @Param        input  body      request.Actuality  true  "Fields to change"
// @Success      200  {object}  response.Body{data=domain.Actuality}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /actualities/{id} [put]
func (h *ActualityHandler) HandleUpdateActuality(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.Actuality
	if !bind(ctx, &input) || !validate(ctx, input.ValidateUpdate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.files...)
	if !ok {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyTo, service.ActualityImages{
		Image:       uploads["image"],
		AuthorPhoto: uploads["author_photo"],
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateActuality -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Actuality updated successfully", updated)
}

// HandleDeleteActuality godoc
// @Summary      Delete an actuality
// @Tags         actualities
// @Produce      json
// @Param        id   path      int  true  "Actuality ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /actualities/{id} [delete]
func (h *ActualityHandler) HandleDeleteActuality(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteActuality -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Actuality deleted successfully")
}
