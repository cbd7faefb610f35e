package v1

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

type mockNewsletterService struct {
	mock.Mock
}

func (m *mockNewsletterService) List(ctx context.Context, filter domain.NewsletterFilter, page domain.PageRequest) ([]domain.NewsletterSubscription, domain.Pagination, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.NewsletterSubscription), args.Get(1).(domain.Pagination), args.Error(2)
}

func (m *mockNewsletterService) Subscribe(ctx context.Context, sub domain.NewsletterSubscription, prefs *domain.NewsletterPreferences) (domain.NewsletterSubscription, error) {
	args := m.Called(ctx, sub, prefs)
	return args.Get(0).(domain.NewsletterSubscription), args.Error(1)
}

func (m *mockNewsletterService) Unsubscribe(ctx context.Context, email string) (domain.NewsletterSubscription, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.NewsletterSubscription), args.Error(1)
}

func (m *mockNewsletterService) Status(ctx context.Context, email string) (domain.NewsletterSubscription, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.NewsletterSubscription), args.Bool(1), args.Error(2)
}

func (m *mockNewsletterService) Get(ctx context.Context, id uint) (domain.NewsletterSubscription, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.NewsletterSubscription), args.Error(1)
}

func (m *mockNewsletterService) Update(ctx context.Context, id uint, apply func(*domain.NewsletterSubscription) error) (domain.NewsletterSubscription, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.NewsletterSubscription), args.Error(1)
}

func (m *mockNewsletterService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func newNewsletterRouter(svc *mockNewsletterService) *gin.Engine {
	h := NewNewsletterHandler(svc)

	r := gin.New()
	r.POST("/newsletter/subscribe", h.HandleSubscribe)
	r.POST("/newsletter/unsubscribe", h.HandleUnsubscribe)
	r.GET("/newsletter/status", h.HandleSubscriptionStatus)

	return r
}

func TestHandleSubscribe(t *testing.T) {
	svc := &mockNewsletterService{}
	prefs := &domain.NewsletterPreferences{Events: true}
	svc.On("Subscribe", mock.Anything, mock.MatchedBy(func(s domain.NewsletterSubscription) bool {
		return s.Email == "ada@example.com" && s.FirstName != nil && *s.FirstName == "Ada"
	}), prefs).Return(domain.NewsletterSubscription{ID: 1, Email: "ada@example.com", Status: domain.SubscriptionActive}, nil).Once()

	rec := serveJSON(newNewsletterRouter(svc), http.MethodPost, "/newsletter/subscribe",
		`{"email":"ada@example.com","first_name":"Ada","preferences":{"events":true}}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandleSubscribe_AlreadySubscribed(t *testing.T) {
	svc := &mockNewsletterService{}
	dup := &service.ValidationError{Fields: validation.Errors{"email": errors.New("this email is already subscribed")}}
	svc.On("Subscribe", mock.Anything, mock.Anything, mock.Anything).Return(domain.NewsletterSubscription{}, dup).Once()

	rec := serveJSON(newNewsletterRouter(svc), http.MethodPost, "/newsletter/subscribe", `{"email":"ada@example.com"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{"this email is already subscribed"}, decode(t, rec).Errors["email"])
}

func TestHandleUnsubscribe_UnknownEmail(t *testing.T) {
	svc := &mockNewsletterService{}
	svc.On("Unsubscribe", mock.Anything, "ghost@example.com").
		Return(domain.NewsletterSubscription{}, service.ErrSubscriptionNotFound).Once()

	rec := serveJSON(newNewsletterRouter(svc), http.MethodPost, "/newsletter/unsubscribe", `{"email":"ghost@example.com"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "subscription with email = ghost@example.com not found", decode(t, rec).Message)
}

func TestHandleSubscriptionStatus(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		rec := serveJSON(newNewsletterRouter(&mockNewsletterService{}), http.MethodGet, "/newsletter/status", "")

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode(t, rec).Errors, "email")
	})

	t.Run("not subscribed", func(t *testing.T) {
		svc := &mockNewsletterService{}
		svc.On("Status", mock.Anything, "ghost@example.com").Return(domain.NewsletterSubscription{}, false, nil).Once()

		rec := serveJSON(newNewsletterRouter(svc), http.MethodGet, "/newsletter/status?email=ghost@example.com", "")

		require.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "null", string(env.Data))
	})

	t.Run("subscribed", func(t *testing.T) {
		svc := &mockNewsletterService{}
		svc.On("Status", mock.Anything, "ada@example.com").
			Return(domain.NewsletterSubscription{ID: 4, Email: "ada@example.com", Status: domain.SubscriptionActive}, true, nil).Once()

		rec := serveJSON(newNewsletterRouter(svc), http.MethodGet, "/newsletter/status?email=ada@example.com", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got domain.NewsletterSubscription
		decodeData(t, decode(t, rec), &got)
		assert.EqualValues(t, 4, got.ID)
	})
}
