package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webcms/cms-api/docs"
	v1 "github.com/webcms/cms-api/internal/api/handler/v1"
	"github.com/webcms/cms-api/internal/api/middleware"
	"github.com/webcms/cms-api/internal/cache"
	"github.com/webcms/cms-api/internal/config"
	"github.com/webcms/cms-api/internal/repository"
	"github.com/webcms/cms-api/internal/repository/dao"
	"github.com/webcms/cms-api/internal/service"
	"github.com/webcms/cms-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	files *storage.FileStorage
	cache service.Cache
}

type handlers struct {
	events        *v1.EventHandler
	registrations *v1.RegistrationHandler
	actualities   *v1.ActualityHandler
	publications  *v1.PublicationHandler
	pubRequests   *v1.PublicationRequestHandler
	gallery       *v1.GalleryHandler
	financing     *v1.FinancingHandler
	training      *v1.TrainingHandler
	newsletter    *v1.NewsletterHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	files, err := storage.NewFileStorage(conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage.NewFileStorage -> %w", err)
	}

	s := &Server{
		Config: conf,
		Router: engine,
		files:  files,
		cache:  newCache(conf.Redis),
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db))

	return s, nil
}

// newCache connects to Redis when an address is configured and falls back
// to no caching otherwise, or when Redis does not answer.
func newCache(conf *config.RedisConfig) service.Cache {
	if conf == nil || conf.Addr == "" {
		return cache.Noop{}
	}

	rc := cache.NewRedisCache(conf)
	if err := rc.Ping(context.Background()); err != nil {
		zap.L().Warn("redis unavailable, caching disabled", zap.String("addr", conf.Addr), zap.Error(err))
		return cache.Noop{}
	}

	return rc
}

func (s *Server) initHandlers(db *gorm.DB) handlers {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db, dao.RetryPolicy{
		MaxRetries: s.Config.Registration.MaxRetries,
		Backoff:    s.Config.Registration.RetryBackoff,
	}))
	pubRequestRepo := repository.NewPublicationRequestRepository(dao.NewPublicationRequestDAO(db))

	registrationSvc := service.NewRegistrationService(registrationRepo, eventRepo)
	thumbs := storage.NewThumbnailer(s.files, s.Config.Storage.ThumbnailWidth, s.Config.Storage.ThumbnailHeight)

	return handlers{
		events:        v1.NewEventHandler(service.NewEventService(eventRepo, s.files), registrationSvc),
		registrations: v1.NewRegistrationHandler(registrationSvc),
		actualities: v1.NewActualityHandler(service.NewActualityService(
			repository.NewActualityRepository(dao.NewActualityDAO(db)), s.files,
		)),
		publications: v1.NewPublicationHandler(service.NewPublicationService(
			repository.NewPublicationRepository(dao.NewPublicationDAO(db)), pubRequestRepo, s.files,
		)),
		pubRequests: v1.NewPublicationRequestHandler(service.NewPublicationRequestService(pubRequestRepo, s.files)),
		gallery: v1.NewGalleryHandler(service.NewGalleryService(
			repository.NewGalleryRepository(dao.NewGalleryDAO(db)), s.files, thumbs, s.cache,
		)),
		financing: v1.NewFinancingHandler(service.NewFinancingService(
			repository.NewFinancingRepository(dao.NewFinancingDAO(db)),
		)),
		training: v1.NewTrainingHandler(service.NewTrainingService(
			repository.NewTrainingRepository(dao.NewTrainingDAO(db)),
		)),
		newsletter: v1.NewNewsletterHandler(service.NewNewsletterService(
			repository.NewNewsletterRepository(dao.NewNewsletterDAO(db)),
		)),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Logger())
	s.Router.Use(middleware.ConfigCORS(s.Config.CORSDomains))
	s.Router.Use(middleware.Timeout(s.Config.Timeout))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"
	api := s.Router.Group(basePath)

	events := api.Group("/events")
	{
		events.GET("", h.events.HandleListEvents)
		events.POST("", h.events.HandleCreateEvent)
		events.GET("/:id", h.events.HandleGetEvent)
		events.PUT("/:id", h.events.HandleUpdateEvent)
		events.PATCH("/:id", h.events.HandleUpdateEvent)
		events.DELETE("/:id", h.events.HandleDeleteEvent)
		events.POST("/:id/register", h.events.HandleRegister)
		events.GET("/:id/registrations", h.events.HandleListEventRegistrations)
	}

	registrations := api.Group("/event-registrations")
	{
		registrations.GET("", h.registrations.HandleListRegistrations)
		registrations.PATCH("/:id/status", h.registrations.HandleUpdateRegistrationStatus)
		registrations.DELETE("/:id", h.registrations.HandleDeleteRegistration)
	}

	actualities := api.Group("/actualities")
	{
		actualities.GET("", h.actualities.HandleListActualities)
		actualities.POST("", h.actualities.HandleCreateActuality)
		actualities.GET("/:id", h.actualities.HandleGetActuality)
		actualities.PUT("/:id", h.actualities.HandleUpdateActuality)
		actualities.PATCH("/:id", h.actualities.HandleUpdateActuality)
		actualities.DELETE("/:id", h.actualities.HandleDeleteActuality)
	}

	publications := api.Group("/publications")
	{
		publications.GET("", h.publications.HandleListPublications)
		publications.POST("", h.publications.HandleCreatePublication)
		publications.GET("/:id", h.publications.HandleGetPublication)
		publications.PUT("/:id", h.publications.HandleUpdatePublication)
		publications.PATCH("/:id", h.publications.HandleUpdatePublication)
		publications.DELETE("/:id", h.publications.HandleDeletePublication)
	}

	pubRequests := api.Group("/publication-requests")
	{
		pubRequests.GET("", h.pubRequests.HandleListPublicationRequests)
		pubRequests.POST("", h.pubRequests.HandleSubmitPublicationRequest)
		pubRequests.GET("/:id", h.pubRequests.HandleGetPublicationRequest)
		pubRequests.PUT("/:id", h.pubRequests.HandleUpdatePublicationRequest)
		pubRequests.PATCH("/:id", h.pubRequests.HandleUpdatePublicationRequest)
		pubRequests.PATCH("/:id/status", h.pubRequests.HandleUpdatePublicationRequestStatus)
		pubRequests.DELETE("/:id", h.pubRequests.HandleDeletePublicationRequest)
	}

	gallery := api.Group("/gallery")
	{
		gallery.GET("", h.gallery.HandleListGallery)
		gallery.GET("/categories", h.gallery.HandleGalleryCategories)
		gallery.POST("", h.gallery.HandleCreateGalleryPhoto)
		gallery.GET("/:id", h.gallery.HandleGetGalleryPhoto)
		gallery.PUT("/:id", h.gallery.HandleUpdateGalleryPhoto)
		gallery.PATCH("/:id", h.gallery.HandleUpdateGalleryPhoto)
		gallery.DELETE("/:id", h.gallery.HandleDeleteGalleryPhoto)
	}

	financing := api.Group("/financing-requests")
	{
		financing.GET("", h.financing.HandleListFinancingRequests)
		financing.POST("", h.financing.HandleSubmitFinancingRequest)
		financing.GET("/:id", h.financing.HandleGetFinancingRequest)
		financing.PUT("/:id", h.financing.HandleUpdateFinancingRequest)
		financing.PATCH("/:id", h.financing.HandleUpdateFinancingRequest)
		financing.PATCH("/:id/status", h.financing.HandleReviewFinancingRequest)
		financing.DELETE("/:id", h.financing.HandleDeleteFinancingRequest)
	}

	training := api.Group("/training-registrations")
	{
		training.GET("", h.training.HandleListTrainingRegistrations)
		training.POST("", h.training.HandleRegisterTraining)
		training.GET("/:id", h.training.HandleGetTrainingRegistration)
		training.PUT("/:id", h.training.HandleUpdateTrainingRegistration)
		training.PATCH("/:id", h.training.HandleUpdateTrainingRegistration)
		training.DELETE("/:id", h.training.HandleDeleteTrainingRegistration)
	}

	newsletter := api.Group("/newsletter")
	{
		newsletter.GET("/subscriptions", h.newsletter.HandleListSubscriptions)
		newsletter.POST("/subscribe", h.newsletter.HandleSubscribe)
		newsletter.POST("/unsubscribe", h.newsletter.HandleUnsubscribe)
		newsletter.GET("/status", h.newsletter.HandleSubscriptionStatus)
		newsletter.GET("/subscriptions/:id", h.newsletter.HandleGetSubscription)
		newsletter.PUT("/subscriptions/:id", h.newsletter.HandleUpdateSubscription)
		newsletter.PATCH("/subscriptions/:id", h.newsletter.HandleUpdateSubscription)
		newsletter.DELETE("/subscriptions/:id", h.newsletter.HandleDeleteSubscription)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.Static("/storage", s.files.Root())

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Website CMS API"
	docs.SwaggerInfo.Description = "Content and event registration backend of the institutional website."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
