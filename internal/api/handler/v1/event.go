package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
)

type EventService interface {
	List(ctx context.Context, filter domain.EventFilter, page domain.PageRequest) ([]domain.Event, domain.Pagination, error)
	Get(ctx context.Context, id uint) (domain.Event, error)
	Create(ctx context.Context, event domain.Event, image *domain.Upload) (domain.Event, error)
	Update(ctx context.Context, id uint, apply func(*domain.Event) error, image *domain.Upload) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventRegistrar interface {
	Register(ctx context.Context, eventID uint, registrant domain.Registrant) (domain.Registration, error)
	ListForEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
}

type EventHandler struct {
	svc        EventService
	registrar  EventRegistrar
	imageField request.FileRule
}

func NewEventHandler(svc EventService, registrar EventRegistrar) *EventHandler {
	return &EventHandler{
		svc:        svc,
		registrar:  registrar,
		imageField: request.FileRule{Field: "image", MaxSize: request.MaxImageSize, Exts: request.ImageExts},
	}
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Lists events ordered by start date and time
// @Tags         events
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        type      query     string  false  "Filter by type"
// @Param        category  query     string  false  "Filter by category"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.Event}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	page, err := request.BindPage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.EventFilter{
		Status:   ctx.Query("status"),
		Type:     ctx.Query("type"),
		Category: ctx.Query("category"),
	}

	events, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEvents -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, events, pagination)
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  response.Body{data=domain.Event}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{id} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	event, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEvent -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Accepts JSON or multipart form data. An optional image upload is stored under events/.
// @Tags         events
// @Accept       json,mpfd
// @Produce      json
// @Param        input  body      request.Event  true  "Event details"
// @Param        image  formData  file           false "Cover image"
// @Success      201    {object}  response.Body{data=domain.Event}
// @Failure      400    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var input request.Event
	if !bind(ctx, &input) || !validate(ctx, input.ValidateCreate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.imageField)
	if !ok {
		return
	}

	var event domain.Event
	if !validate(ctx, input.ApplyTo(&event)) {
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), event, uploads["image"])
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.Create", err, nil)
		return
	}

	response.Created(ctx, "Event created successfully", created)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Partial update. A new image replaces the stored one. current_attendees cannot be changed here.
// @Tags         events
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      int            true  "Event ID"
// @Param        input  body      request.Event  true  "Fields to change"
// @Success      200    {object}  response.Body{data=domain.Event}
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events/{id} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.Event
	if !bind(ctx, &input) || !validate(ctx, input.ValidateUpdate()) {
		return
	}

	uploads, ok := readUploads(ctx, h.imageField)
	if !ok {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyTo, uploads["image"])
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEvent -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Event updated successfully", updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Description  Removes the event, its image and its registrations
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{id} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteEvent -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Event deleted successfully")
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  Admits a registrant when the event takes registrations, the deadline has not passed, a seat is left and the email holds no active registration.
// @Tags         events,registrations
// @Accept       json
// @Produce      json
// @Param        id     path      int                 true  "Event ID"
// @Param        input  body      request.Registrant  true  "Registrant"
// @Success      201    {object}  response.Body{data=domain.Registration}
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events/{id}/register [post]
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.Registrant
	if !bind(ctx, &input) {
		return
	}

	reg, err := h.registrar.Register(ctx.Request.Context(), id, input.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegister -> h.registrar.Register", err, id)
		return
	}

	response.Created(ctx, "Registration successful", reg)
}

// HandleListEventRegistrations godoc
// @Summary      List registrations of an event
// @Tags         events,registrations
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  response.Body{data=[]domain.Registration}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{id}/registrations [get]
func (h *EventHandler) HandleListEventRegistrations(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	regs, err := h.registrar.ListForEvent(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEventRegistrations -> h.registrar.ListForEvent", err, id)
		return
	}

	response.OK(ctx, regs)
}
