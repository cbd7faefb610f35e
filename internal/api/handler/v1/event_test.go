package v1

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) List(ctx context.Context, filter domain.EventFilter, page domain.PageRequest) ([]domain.Event, domain.Pagination, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Event), args.Get(1).(domain.Pagination), args.Error(2)
}

func (m *mockEventService) Get(ctx context.Context, id uint) (domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) Create(ctx context.Context, event domain.Event, image *domain.Upload) (domain.Event, error) {
	args := m.Called(ctx, event, image)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventService) Update(ctx context.Context, id uint, apply func(*domain.Event) error, image *domain.Upload) (domain.Event, error) {
	args := m.Called(ctx, id, image)
	current := args.Get(0).(domain.Event)
	if err := apply(&current); err != nil {
		return domain.Event{}, err
	}

	return current, args.Error(1)
}

func (m *mockEventService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) Register(ctx context.Context, eventID uint, registrant domain.Registrant) (domain.Registration, error) {
	args := m.Called(ctx, eventID, registrant)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrar) ListForEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func newEventRouter(svc *mockEventService, reg *mockRegistrar) *gin.Engine {
	h := NewEventHandler(svc, reg)

	r := gin.New()
	r.GET("/events", h.HandleListEvents)
	r.POST("/events", h.HandleCreateEvent)
	r.GET("/events/:id", h.HandleGetEvent)
	r.PATCH("/events/:id", h.HandleUpdateEvent)
	r.DELETE("/events/:id", h.HandleDeleteEvent)
	r.POST("/events/:id/register", h.HandleRegister)
	r.GET("/events/:id/registrations", h.HandleListEventRegistrations)

	return r
}

const registrantBody = `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`

func TestHandleRegister(t *testing.T) {
	registrant := domain.Registrant{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "created", code: http.StatusCreated, message: "Registration successful"},
		{name: "capacity", err: service.ErrCapacityExceeded, code: http.StatusBadRequest, message: service.ErrCapacityExceeded.Error()},
		{name: "deadline", err: service.ErrDeadlineExpired, code: http.StatusBadRequest, message: service.ErrDeadlineExpired.Error()},
		{name: "not applicable", err: service.ErrRegistrationNotApplicable, code: http.StatusBadRequest, message: service.ErrRegistrationNotApplicable.Error()},
		{name: "duplicate", err: service.ErrDuplicateRegistration, code: http.StatusBadRequest, message: service.ErrDuplicateRegistration.Error()},
		{name: "unknown event", err: service.ErrEventNotFound, code: http.StatusNotFound, message: "event with id = 4 not found"},
		{name: "unresolved conflict", err: fmt.Errorf("r.repo.Register -> %w after 4 attempts", service.ErrTxConflict), code: http.StatusInternalServerError, message: "internal server error"},
		{name: "timeout", err: fmt.Errorf("r.repo.Register -> %w", context.DeadlineExceeded), code: http.StatusServiceUnavailable, message: "request timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &mockRegistrar{}
			result := domain.Registration{ID: 11, EventID: 4, Registrant: registrant, Status: domain.RegistrationPending}
			if tt.err != nil {
				result = domain.Registration{}
			}
			reg.On("Register", mock.Anything, uint(4), registrant).Return(result, tt.err).Once()

			rec := serveJSON(newEventRouter(&mockEventService{}, reg), http.MethodPost, "/events/4/register", registrantBody)

			assert.Equal(t, tt.code, rec.Code)
			env := decode(t, rec)
			assert.Equal(t, tt.code < 300, env.Success)
			assert.Equal(t, tt.message, env.Message)
			reg.AssertExpectations(t)
		})
	}
}

func TestHandleRegister_ValidationFailure(t *testing.T) {
	reg := &mockRegistrar{}
	invalid := service.NewValidationError(domainValidation(t))
	reg.On("Register", mock.Anything, uint(4), mock.Anything).Return(domain.Registration{}, invalid).Once()

	rec := serveJSON(newEventRouter(&mockEventService{}, reg), http.MethodPost, "/events/4/register", `{"email":"nope"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "first_name")
}

func domainValidation(t *testing.T) error {
	t.Helper()

	err := domain.Registrant{Email: "nope"}.Validate()
	require.Error(t, err)

	return err
}

func TestHandleRegister_BadID(t *testing.T) {
	rec := serveJSON(newEventRouter(&mockEventService{}, &mockRegistrar{}), http.MethodPost, "/events/abc/register", registrantBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateEvent_JSON(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Title == "Launch" &&
			e.StartDate.Format("2006-01-02") == "2026-05-14" &&
			e.StartTime == "09:00" &&
			e.RegistrationRequired &&
			e.MaxAttendees != nil && *e.MaxAttendees == 50 &&
			assert.ObjectsAreEqual([]string{"a", "b"}, e.Tags) &&
			e.Content == nil
	}), (*domain.Upload)(nil)).Return(domain.Event{ID: 1, Title: "Launch"}, nil).Once()

	body := `{
		"title": "Launch",
		"description": "Product launch",
		"content": "",
		"start_date": "2026-05-14",
		"start_time": "09:00",
		"location": "Kinshasa",
		"max_attendees": 50,
		"registration_required": "true",
		"tags": "[\"a\",\"b\"]"
	}`
	rec := serveJSON(newEventRouter(svc, &mockRegistrar{}), http.MethodPost, "/events", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decode(t, rec)
	assert.Equal(t, "Event created successfully", env.Message)
	svc.AssertExpectations(t)
}

func TestHandleCreateEvent_Multipart(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.RegistrationRequired &&
			assert.ObjectsAreEqual([]string{"Alice", "Bob"}, e.Speakers) &&
			e.MaxAttendees == nil
	}), mock.MatchedBy(func(u *domain.Upload) bool {
		return u != nil && u.Filename == "cover.png"
	})).Return(domain.Event{ID: 2}, nil).Once()

	rec := serveMultipart(t, newEventRouter(svc, &mockRegistrar{}), http.MethodPost, "/events",
		[][2]string{
			{"title", "Workshop"},
			{"description", "Hands-on"},
			{"start_date", "2026-06-01"},
			{"start_time", "14:00"},
			{"location", "Goma"},
			{"max_attendees", ""},
			{"registration_required", "on"},
			{"speakers[]", "Alice"},
			{"speakers[]", "Bob"},
		},
		formFile{field: "image", name: "cover.png", content: []byte("png")},
	)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandleCreateEvent_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing title", body: `{"description":"d","start_date":"2026-05-14","start_time":"09:00","location":"x"}`, field: "title"},
		{name: "bad type", body: `{"title":"t","description":"d","type":"party","start_date":"2026-05-14","start_time":"09:00","location":"x"}`, field: "type"},
		{name: "zero capacity", body: `{"title":"t","description":"d","start_date":"2026-05-14","start_time":"09:00","location":"x","max_attendees":0}`, field: "max_attendees"},
		{name: "end before start", body: `{"title":"t","description":"d","start_date":"2026-05-14","end_date":"2026-05-13","start_time":"09:00","location":"x"}`, field: "end_date"},
		{name: "same day end time", body: `{"title":"t","description":"d","start_date":"2026-05-14","start_time":"09:00","end_time":"08:30","location":"x"}`, field: "end_time"},
		{name: "bad flag", body: `{"title":"t","description":"d","start_date":"2026-05-14","start_time":"09:00","location":"x","registration_required":"maybe"}`, field: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEventService{}
			rec := serveJSON(newEventRouter(svc, &mockRegistrar{}), http.MethodPost, "/events", tt.body)

			if tt.field == "" {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			} else {
				require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
				assert.Contains(t, decode(t, rec).Errors, tt.field)
			}
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleUpdateEvent_KeepsAttendeeCounter(t *testing.T) {
	stored := domain.Event{ID: 3, Title: "Old", CurrentAttendees: 7, StartTime: "09:00", Currency: "USD"}
	svc := &mockEventService{}
	svc.On("Update", mock.Anything, uint(3), (*domain.Upload)(nil)).Return(stored, nil).Once()

	rec := serveJSON(newEventRouter(svc, &mockRegistrar{}), http.MethodPatch, "/events/3", `{"title":"New","current_attendees":0}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got domain.Event
	decodeData(t, decode(t, rec), &got)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, 7, got.CurrentAttendees)
}

func TestHandleGetEvent_NotFound(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Get", mock.Anything, uint(9)).Return(domain.Event{}, service.ErrEventNotFound).Once()

	rec := serveJSON(newEventRouter(svc, &mockRegistrar{}), http.MethodGet, "/events/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decode(t, rec).Success)
}

func TestHandleListEvents(t *testing.T) {
	svc := &mockEventService{}
	filter := domain.EventFilter{Status: "upcoming", Type: "workshop"}
	page := domain.PageRequest{Page: 2, PerPage: 5}
	svc.On("List", mock.Anything, filter, page).
		Return([]domain.Event{{ID: 6}}, domain.Pagination{Page: 2, Limit: 5, Total: 6, TotalPages: 2}, nil).Once()

	rec := serveJSON(newEventRouter(svc, &mockRegistrar{}), http.MethodGet, "/events?status=upcoming&type=workshop&page=2&per_page=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.EqualValues(t, 6, env.Pagination.Total)
}

func TestHandleDeleteEvent(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Delete", mock.Anything, uint(5)).Return(nil).Once()

	rec := serveJSON(newEventRouter(svc, &mockRegistrar{}), http.MethodDelete, "/events/5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event deleted successfully", decode(t, rec).Message)
}
