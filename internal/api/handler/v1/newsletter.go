package v1

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/webcms/cms-api/internal/api/handler/v1/request"
	"github.com/webcms/cms-api/internal/api/handler/v1/response"
	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

type NewsletterService interface {
	List(ctx context.Context, filter domain.NewsletterFilter, page domain.PageRequest) ([]domain.NewsletterSubscription, domain.Pagination, error)
	Subscribe(ctx context.Context, sub domain.NewsletterSubscription, prefs *domain.NewsletterPreferences) (domain.NewsletterSubscription, error)
	Unsubscribe(ctx context.Context, email string) (domain.NewsletterSubscription, error)
	Status(ctx context.Context, email string) (domain.NewsletterSubscription, bool, error)
	Get(ctx context.Context, id uint) (domain.NewsletterSubscription, error)
	Update(ctx context.Context, id uint, apply func(*domain.NewsletterSubscription) error) (domain.NewsletterSubscription, error)
	Delete(ctx context.Context, id uint) error
}

type NewsletterHandler struct {
	svc NewsletterService
}

func NewNewsletterHandler(svc NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		svc: svc,
	}
}

// HandleListSubscriptions godoc
// @Summary      List newsletter subscriptions
// @Tags         newsletter
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        search    query     string  false  "Matches email and names"
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Success      200  {object}  response.Body{data=[]domain.NewsletterSubscription}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /newsletter/subscriptions [get]
func (h *NewsletterHandler) HandleListSubscriptions(ctx *gin.Context) {
	page, err := request.BindPage(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := domain.NewsletterFilter{
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
	}

	subs, pagination, err := h.svc.List(ctx.Request.Context(), filter, page)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListSubscriptions -> h.svc.List", err, nil)
		return
	}

	response.Paginated(ctx, subs, pagination)
}

// HandleSubscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Preferences default to every topic
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        input  body      request.Subscription  true  "Subscriber"
// @Success      201  {object}  response.Body{data=domain.NewsletterSubscription}
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /newsletter/subscribe [post]
func (h *NewsletterHandler) HandleSubscribe(ctx *gin.Context) {
	var input request.Subscription
	if !bind(ctx, &input) || !validate(ctx, input.ValidateCreate()) {
		return
	}

	var sub domain.NewsletterSubscription
	_ = input.ApplyTo(&sub)

	created, err := h.svc.Subscribe(ctx.Request.Context(), sub, input.Preferences)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubscribe -> h.svc.Subscribe", err, nil)
		return
	}

	response.Created(ctx, "Subscribed successfully", created)
}

// HandleUnsubscribe godoc
// @Summary      Unsubscribe from the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        input  body      request.Email  true  "Subscriber email"
// @Success      200  {object}  response.Body{data=domain.NewsletterSubscription}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /newsletter/unsubscribe [post]
func (h *NewsletterHandler) HandleUnsubscribe(ctx *gin.Context) {
	var input request.Email
	if !bind(ctx, &input) || !validate(ctx, input.Validate()) {
		return
	}

	sub, err := h.svc.Unsubscribe(ctx.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("subscription", "email", input.Email))
			return
		}

		renderServiceErr(ctx, "v1.HandleUnsubscribe -> h.svc.Unsubscribe", err, nil)
		return
	}

	response.Updated(ctx, "Unsubscribed successfully", sub)
}

// HandleSubscriptionStatus godoc
// @Summary      Look up a subscription by email
// @Description  data is null when the email is not subscribed
// @Tags         newsletter
// @Produce      json
// @Param        email  query     string  true  "Subscriber email"
// @Success      200  {object}  response.Body{data=domain.NewsletterSubscription}
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /newsletter/status [get]
func (h *NewsletterHandler) HandleSubscriptionStatus(ctx *gin.Context) {
	input := request.Email{Email: ctx.Query("email")}
	if !validate(ctx, input.Validate()) {
		return
	}

	sub, found, err := h.svc.Status(ctx.Request.Context(), input.Email)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubscriptionStatus -> h.svc.Status", err, nil)
		return
	}

	if !found {
		response.OK(ctx, nil)
		return
	}

	response.OK(ctx, sub)
}

// HandleGetSubscription godoc
// @Summary      Get a subscription
// @Tags         newsletter
// @Produce      json
// @Param        id   path      int  true  "Subscription ID"
// @Success      200  {object}  response.Body{data=domain.NewsletterSubscription}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /newsletter/subscriptions/{id} [get]
func (h *NewsletterHandler) HandleGetSubscription(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	sub, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetSubscription -> h.svc.Get", err, id)
		return
	}

	response.OK(ctx, sub)
}

// HandleUpdateSubscription godoc
// @Summary      Update a subscription
// @Description  Unsubscribing stamps unsubscribed_at; reactivating stamps subscribed_at
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        id     path      int                   true  "Subscription ID"
// @Param        input  body      request.Subscription  true  "Fields to change"
// @Success      200  {object}  response.Body{data=domain.NewsletterSubscription}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /newsletter/subscriptions/{id} [put]
func (h *NewsletterHandler) HandleUpdateSubscription(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var input request.Subscription
	if !bind(ctx, &input) || !validate(ctx, input.ValidateUpdate()) {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, input.ApplyTo)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateSubscription -> h.svc.Update", err, id)
		return
	}

	response.Updated(ctx, "Subscription updated successfully", updated)
}

// HandleDeleteSubscription godoc
// @Summary      Delete a subscription
// @Tags         newsletter
// @Produce      json
// @Param        id   path      int  true  "Subscription ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /newsletter/subscriptions/{id} [delete]
func (h *NewsletterHandler) HandleDeleteSubscription(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteSubscription -> h.svc.Delete", err, id)
		return
	}

	response.Message(ctx, "Subscription deleted successfully")
}
