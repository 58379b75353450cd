package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dtroode/eventhub-server/internal/api/http/handler"
	"github.com/dtroode/eventhub-server/internal/api/http/middleware"
	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
	"github.com/dtroode/eventhub-server/internal/service"
)

// Services bundles what the router exposes over HTTP. Avatar is optional.
type Services struct {
	Auth   handler.AuthService
	Ticket handler.TicketService
	Review handler.ReviewService
	Event  handler.EventService
	Avatar handler.AvatarService
	Tokens *service.TokenService
	DB     handler.Pinger
}

// Router represents the HTTP router for the event hub API.
type Router struct {
	services       Services
	contextManager model.ContextManager
	cookie         handler.CookieConfig
	staticDir      string
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	services Services,
	contextManager model.ContextManager,
	cookie handler.CookieConfig,
	staticDir string,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		cookie:         cookie,
		staticDir:      staticDir,
		logger:         logger,
	}
}

// Register builds the echo instance with middleware and all routes.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logging := middleware.NewLogging(r.logger)
	guard := middleware.NewGuard(r.services.Tokens, r.logger)
	session := middleware.NewSession(r.services.Tokens, r.contextManager, r.logger)

	// Pre runs before routing, so the guard also sees unknown paths.
	e.Pre(logging.Handle, guard.Handle)

	e.GET("/healthz", handler.NewHealth(r.services.DB, r.logger).Check)

	api := e.Group("/api")
	r.registerAuthRoutes(api, session)
	r.registerTicketRoutes(api, session)
	r.registerReviewRoutes(api, session)
	r.registerEventRoutes(api)
	r.registerAvatarRoutes(api, session)

	if r.staticDir != "" {
		e.Static("/", r.staticDir)
	}

	return e
}

func (r *Router) registerAuthRoutes(api *echo.Group, session *middleware.Session) {
	h := handler.NewAuth(r.services.Auth, r.contextManager, r.cookie, r.logger)

	auth := api.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/user", h.User, session.Require)
	auth.PUT("/user", h.UpdateUser, session.Require)
	auth.DELETE("/user", h.DeleteUser, session.Require)
	auth.PUT("/change-password", h.ChangePassword, session.Require)
}

func (r *Router) registerTicketRoutes(api *echo.Group, session *middleware.Session) {
	h := handler.NewTicket(r.services.Ticket, r.contextManager, r.logger)

	tickets := api.Group("/tickets", session.Require)
	tickets.GET("", h.List)
	tickets.POST("/reserve", h.Reserve)
	tickets.DELETE("/:id", h.Cancel)
}

func (r *Router) registerReviewRoutes(api *echo.Group, session *middleware.Session) {
	h := handler.NewReview(r.services.Review, r.contextManager, r.logger)

	api.GET("/reviews/:eventId", h.List)
	api.POST("/reviews/:eventId", h.Create, session.Require)
}

func (r *Router) registerEventRoutes(api *echo.Group) {
	h := handler.NewEvent(r.services.Event, r.logger)

	api.GET("/events", h.Search)
	api.GET("/events/:id", h.Get)
}

func (r *Router) registerAvatarRoutes(api *echo.Group, session *middleware.Session) {
	if r.services.Avatar == nil {
		return
	}
	h := handler.NewAvatar(r.services.Avatar, r.contextManager, r.logger)

	api.PUT("/auth/user/avatar", h.Upload, session.Require)
	api.GET("/users/:id/avatar", h.Download)
}
