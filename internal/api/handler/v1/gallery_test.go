package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webcms/cms-api/internal/domain"
)

type mockGalleryService struct {
	mock.Mock
}

func (m *mockGalleryService) List(ctx context.Context, filter domain.GalleryFilter, page domain.PageRequest) ([]domain.GalleryPhoto, domain.Pagination, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.GalleryPhoto), args.Get(1).(domain.Pagination), args.Error(2)
}

func (m *mockGalleryService) Categories(ctx context.Context) ([]domain.GalleryCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GalleryCategory), args.Error(1)
}

func (m *mockGalleryService) Get(ctx context.Context, id uint) (domain.GalleryPhoto, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.GalleryPhoto), args.Error(1)
}

func (m *mockGalleryService) Create(ctx context.Context, p domain.GalleryPhoto, image domain.Upload) (domain.GalleryPhoto, error) {
	args := m.Called(ctx, p, image.Filename)
	return args.Get(0).(domain.GalleryPhoto), args.Error(1)
}

func (m *mockGalleryService) Update(ctx context.Context, id uint, apply func(*domain.GalleryPhoto) error, image *domain.Upload) (domain.GalleryPhoto, error) {
	args := m.Called(ctx, id, image)
	return args.Get(0).(domain.GalleryPhoto), args.Error(1)
}

func (m *mockGalleryService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func newGalleryRouter(svc *mockGalleryService) *gin.Engine {
	h := NewGalleryHandler(svc)

	r := gin.New()
	r.POST("/gallery", h.HandleCreateGalleryPhoto)

	return r
}

func TestHandleCreateGalleryPhoto(t *testing.T) {
	t.Run("image required", func(t *testing.T) {
		svc := &mockGalleryService{}

		rec := serveMultipart(t, newGalleryRouter(svc), http.MethodPost, "/gallery", [][2]string{{"title", "Opening"}})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"is required"}, decode(t, rec).Errors["image"])
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong type", func(t *testing.T) {
		rec := serveMultipart(t, newGalleryRouter(&mockGalleryService{}), http.MethodPost, "/gallery",
			[][2]string{{"title", "Opening"}},
			formFile{field: "image", name: "photo.bmp", content: []byte("bmp")},
		)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"must be a file of type: jpeg, jpg, png, gif, webp"}, decode(t, rec).Errors["image"])
	})

	t.Run("stored", func(t *testing.T) {
		svc := &mockGalleryService{}
		svc.On("Create", mock.Anything, mock.MatchedBy(func(p domain.GalleryPhoto) bool {
			return p.Title == "Opening" && p.Featured && assert.ObjectsAreEqual([]string{"ceremony", "2026"}, p.Tags)
		}), "photo.webp").Return(domain.GalleryPhoto{ID: 5, Title: "Opening"}, nil).Once()

		rec := serveMultipart(t, newGalleryRouter(svc), http.MethodPost, "/gallery",
			[][2]string{{"title", "Opening"}, {"featured", "yes"}, {"tags", "ceremony, 2026"}},
			formFile{field: "image", name: "photo.webp", content: []byte("webp")},
		)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		svc.AssertExpectations(t)
	})
}
