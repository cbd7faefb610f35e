package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
)

type GalleryService interface {
	List(ctx context.Context, filter domain.GalleryFilter, page domain.PageRequest) ([]domain.GalleryPhoto, domain.Pagination, error)
	Categories(ctx context.Context) ([]domain.GalleryCategory, error)
	Get(ctx context.Context, id uint) (domain.GalleryPhoto, error)
	Create(ctx context.Context, p domain.GalleryPhoto, image domain.Upload) (domain.GalleryPhoto, error)
	Update(ctx context.Context, id uint, apply func(*domain.GalleryPhoto) error, image *domain.Upload) (domain.GalleryPhoto, error)
	Delete(ctx context.Context, id uint) error
}

type GalleryHandler struct {
	svc GalleryService
}

func NewGalleryHandler(svc GalleryService) *GalleryHandler {
	return &GalleryHandler{
		svc: svc,
	}
}

func imageRule(required bool) request.FileRule {
	return request.FileRule{
		Field:    "image",
		MaxSize:  request.MaxGalleryImageSize,
		Exts:     request.GalleryExts,
		Required: required,
	}
}

// HandleListGallery godoc
// @Summary      List gallery photos
// @Description  per_page of 1000 or more returns every photo on one page
// @Tags         gallery
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        featured  query     bool    false  "Only featured photos"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.GalleryPhoto}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery [get]
func (h *GalleryHandler) HandleListGallery(ctx *gin.Context) {
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

	filter := domain.GalleryFilter{
		Category: ctx.Query("category"),
		Featured: featured,
	}

	photos, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListGallery -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, photos, pagination)
}

// HandleGalleryCategories godoc
// @Summary      List gallery categories
// @Tags         gallery
// @Produce      json
// @Success      200  {object}  response.Body{data=[]domain.GalleryCategory}
// @Failure      500  {object}  response.Err
// @Router       /gallery/categories [get]
func (h *GalleryHandler) HandleGalleryCategories(ctx *gin.Context) {
	categories, err := h.svc.Categories(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGalleryCategories -> h.svc.Categories", err, nil)
		return
	}

	response.OK(ctx, categories)
}

// HandleGetGalleryPhoto godoc
// @Summary      Get a gallery photo
// @Tags         gallery
// @Produce      json
// @Param        id   path      int  true  "Photo ID"
// @Success      200  {object}  response.Body{data=domain.GalleryPhoto}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/{id} [get]
func (h *GalleryHandler) HandleGetGalleryPhoto(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetGalleryPhoto -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, p)
}

// HandleCreateGalleryPhoto godoc
// @Summary      Add a gallery photo
// @Description  Stores the image and a generated thumbnail
// @Tags         gallery
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        category     formData  string  false  "Category"
// @Param        date         formData  string  false  "Date (YYYY-MM-DD)"
// @Param        author       formData  string  false  "Author"
// @Param        tags         formData  []string  false  "Tags"
// @Param        featured     formData  bool    false  "Featured"
// @Param        order        formData  int     false  "Display order"
// @Param        image        formData  file    true   "Photo, up to 5 MB"
// @Success      201  {object}  response.Body{data=domain.GalleryPhoto}
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery [post]
func (h *GalleryHandler) HandleCreateGalleryPhoto(ctx *gin.Context) {
	var input request.GalleryPhoto
	if !bind(ctx, &input) || !validate(ctx, input.ValidateCreate()) {
		return
	}

	uploads, ok := readUploads(ctx, imageRule(true))
	if !ok {
		return
	}

	var p domain.GalleryPhoto
	_ = input.ApplyTo(&p)

	created, err := h.svc.Create(ctx.Request.Context(), p, *uploads["image"])
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateGalleryPhoto -> h.svc.Create", err, nil)
		return
	}

	response.Created(ctx, "Photo added successfully", created)
}

// HandleUpdateGalleryPhoto godoc
// @Summary      Update a gallery photo
// @Description  A new image also regenerates the thumbnail
// @Tags         gallery
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      int                   true  "Photo ID"
// @Param        input  body      request.GalleryPhoto  true  "Fields to change"
// @Success      200  {object}  response.Body{data=domain.GalleryPhoto}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/{id} [put]
func (h *GalleryHandler) HandleUpdateGalleryPhoto(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.GalleryPhoto
	if !bind(ctx, &input) || !validate(ctx, input.ValidateUpdate()) {
		return
	}

	uploads, ok := readUploads(ctx, imageRule(false))
	if !ok {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyTo, uploads["image"])
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateGalleryPhoto -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Photo updated successfully", updated)
}

// HandleDeleteGalleryPhoto godoc
// @Summary      Delete a gallery photo
// @Tags         gallery
// @Produce      json
// @Param        id   path      int  true  "Photo ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/{id} [delete]
func (h *GalleryHandler) HandleDeleteGalleryPhoto(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteGalleryPhoto -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Photo deleted successfully")
}
