package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vocoteam/eventparts-api/docs"
	v1 "github.com/vocoteam/eventparts-api/internal/api/handler/v1"
	"github.com/vocoteam/eventparts-api/internal/api/middleware"
	"github.com/vocoteam/eventparts-api/internal/config"
	"github.com/vocoteam/eventparts-api/internal/domain"
	"github.com/vocoteam/eventparts-api/internal/repository"
	"github.com/vocoteam/eventparts-api/internal/repository/dao"
	"github.com/vocoteam/eventparts-api/internal/service"
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

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	eventSvc := service.NewEventService(repository.NewOrderRepository(dao.NewOrderDAO(db)))

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	eventPartHandler := s.initEventPartHandler(db)
	assignmentHandler := s.initAssignmentHandler(db)
	settingsHandler := s.initSettingsHandler(db)
	eventHandler := s.initEventHandler(db, userSvc)

	s.MountHandlers(userSvc, eventSvc, authHandler, userHandler, eventPartHandler, assignmentHandler, settingsHandler, eventHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initEventPartHandler(db *gorm.DB) *v1.EventPartHandler {
	partRepo := repository.NewEventPartRepository(dao.NewEventPartDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	settingsRepo := repository.NewSettingsRepository(dao.NewSettingsDAO(db))
	svc := service.NewEventPartService(partRepo, orderRepo, settingsRepo)
	handler := v1.NewEventPartHandler(svc)

	return handler
}

func (s *Server) initAssignmentHandler(db *gorm.DB) *v1.AssignmentHandler {
	partRepo := repository.NewEventPartRepository(dao.NewEventPartDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	settingsRepo := repository.NewSettingsRepository(dao.NewSettingsDAO(db))
	svc := service.NewAssignmentService(partRepo, orderRepo, settingsRepo)
	handler := v1.NewAssignmentHandler(svc)

	return handler
}

func (s *Server) initSettingsHandler(db *gorm.DB) *v1.SettingsHandler {
	settingsRepo := repository.NewSettingsRepository(dao.NewSettingsDAO(db))
	svc := service.NewSettingsService(settingsRepo)
	handler := v1.NewSettingsHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB, userSvc *service.UserService) *v1.EventHandler {
	logRepo := repository.NewLogEntryRepository(dao.NewLogEntryDAO(db))
	logSvc := service.NewLogEntryService(logRepo)
	handler := v1.NewEventHandler(logSvc, userSvc)

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
	userSvc *service.UserService,
	eventSvc *service.EventService,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventPartHandler *v1.EventPartHandler,
	assignmentHandler *v1.AssignmentHandler,
	settingsHandler *v1.SettingsHandler,
	eventHandler *v1.EventHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	canViewOrders := middleware.RequireCapability(userSvc, domain.CapViewOrders)
	canChangeItems := middleware.RequireCapability(userSvc, domain.CapChangeItems)
	canChangeSettings := middleware.RequireCapability(userSvc, domain.CapChangeSettings)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, verifyJWT)
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	events := s.Router.Group(basePath+"/organizers/:organizerSlug/events/:eventSlug", verifyJWT, middleware.EventScope(eventSvc))
	{
		events.GET("/eventparts", canViewOrders, eventPartHandler.HandleListEventParts)
		events.POST("/eventparts", canChangeItems, eventPartHandler.HandleCreateEventPart)
		events.GET("/eventparts/:partID", canViewOrders, eventPartHandler.HandleGetEventPart)
		events.PUT("/eventparts/:partID", canChangeItems, eventPartHandler.HandleUpdateEventPart)
		events.DELETE("/eventparts/:partID", canChangeItems, eventPartHandler.HandleDeleteEventPart)
		events.GET("/eventparts/:partID/participants", canViewOrders, eventPartHandler.HandleListParticipants)
		events.GET("/eventparts/:partID/contacts", canViewOrders, eventPartHandler.HandleGetContactInfo)
		events.GET("/eventparts/:partID/contact-table", canViewOrders, eventPartHandler.HandleGetContactTable)
		events.GET("/eventparts/:partID/export", canViewOrders, eventPartHandler.HandleExportProjectList)

		events.GET("/orders/:code/eventparts", canViewOrders, assignmentHandler.HandleGetAssignments)
		events.PUT("/orders/:code/eventparts", canChangeItems, assignmentHandler.HandleReplaceAssignments)
		events.GET("/orders/:code/info", canViewOrders, assignmentHandler.HandleGetOrderInfo)
		events.GET("/orders/:code/placeholders", canViewOrders, assignmentHandler.HandleGetPlaceholders)

		events.GET("/settings", canChangeSettings, settingsHandler.HandleGetSettings)
		events.PUT("/settings", canChangeSettings, settingsHandler.HandleUpdateSettings)

		events.GET("/logs", canViewOrders, eventHandler.HandleListLogs)
		events.GET("/navigation", eventHandler.HandleGetNavigation)
	}

	// Customer-facing routes carry no staff authentication.
	public := s.Router.Group(basePath+"/organizers/:organizerSlug/events/:eventSlug", middleware.EventScope(eventSvc))
	{
		public.GET("/orders/:code/public-info", assignmentHandler.HandleGetPublicOrderInfo)
	}

	s.Router.GET("/static/eventparts/postamble.css", settingsHandler.HandleGetPostamble)

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Eventparts API"
	docs.SwaggerInfo.Description = "Staff API for managing event parts, order assignments and exports."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
