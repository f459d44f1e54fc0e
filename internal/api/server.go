package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/campusway/campus-events-api/docs"
	v1 "github.com/campusway/campus-events-api/internal/api/handler/v1"
	"github.com/campusway/campus-events-api/internal/api/middleware"
	"github.com/campusway/campus-events-api/internal/config"
	"github.com/campusway/campus-events-api/internal/repository"
	"github.com/campusway/campus-events-api/internal/repository/dao"
	"github.com/campusway/campus-events-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	registrationHandler := s.initRegistrationHandler(db)
	adminHandler := s.initAdminHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, registrationHandler, adminHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	categoryRepo := repository.NewCategoryRepository(dao.NewCategoryDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewEventService(eventRepo, categoryRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	formRepo := repository.NewFormRepository(dao.NewFormDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	svc := service.NewRegistrationService(registrationRepo, formRepo, eventRepo, userRepo)
	formSvc := service.NewFormService(formRepo, eventRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewRegistrationHandler(svc, formSvc, uSvc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	categoryRepo := repository.NewCategoryRepository(dao.NewCategoryDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	applicationRepo := repository.NewApplicationRepository(dao.NewApplicationDAO(db))
	eventSvc := service.NewEventService(eventRepo, categoryRepo, userRepo)
	appSvc := service.NewApplicationService(applicationRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewAdminHandler(eventSvc, appSvc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	registrationHandler *v1.RegistrationHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/events", eventHandler.HandleListEvents)
		public.GET("/events/featured", eventHandler.HandleListFeaturedEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/events/:eventID/form", registrationHandler.HandleGetForm)
		public.GET("/categories", eventHandler.HandleListCategories)
		public.GET("/categories/:slug/events", eventHandler.HandleListEventsByCategory)
		public.GET("/form-presets", registrationHandler.HandleGetFormPresets)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.GET("/events/mine", eventHandler.HandleListMyEvents)
		authed.GET("/events/:eventID/manage", eventHandler.HandleGetMyEvent)
		authed.POST("/events/:eventID/like", eventHandler.HandleLikeEvent)
		authed.DELETE("/events/:eventID/like", eventHandler.HandleUnlikeEvent)

		authed.PUT("/events/:eventID/form", registrationHandler.HandleDefineForm)
		authed.POST("/events/:eventID/register", registrationHandler.HandleRegister)
		authed.POST("/events/:eventID/register-form", registrationHandler.HandleRegisterWithForm)
		authed.DELETE("/events/:eventID/register", registrationHandler.HandleUnregister)
		authed.GET("/events/:eventID/registrations", registrationHandler.HandleListRegistrations)
		authed.GET("/events/:eventID/registrations/export", registrationHandler.HandleExportRegistrations)
		authed.POST("/registrations/:registrationID/review", registrationHandler.HandleReviewRegistration)

		authed.POST("/applications", adminHandler.HandleApplyForHost)

		authed.GET("/admin/events", adminHandler.HandleListAllEvents)
		authed.POST("/admin/events/:eventID/approve", adminHandler.HandleApproveEvent)
		authed.POST("/admin/events/:eventID/reject", adminHandler.HandleRejectEvent)
		authed.POST("/admin/events/:eventID/publish", adminHandler.HandlePublishEvent)
		authed.POST("/admin/events/:eventID/unpublish", adminHandler.HandleUnpublishEvent)
		authed.POST("/admin/events/:eventID/archive", adminHandler.HandleArchiveEvent)
		authed.POST("/admin/events/:eventID/feature", adminHandler.HandleFeatureEvent)
		authed.GET("/admin/applications", adminHandler.HandleListApplications)
		authed.POST("/admin/applications/:applicationID/review", adminHandler.HandleReviewApplication)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Campus Events API"
	docs.SwaggerInfo.Description = "Campus event discovery, hosting and registration."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
