// Package server contains the HTTP and WebSocket handlers for the NexCos API.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"nexcos/internal/assistant"
	"nexcos/internal/bootstrap"
	"nexcos/internal/config"
	"nexcos/internal/database"
	"nexcos/internal/identity"
	"nexcos/internal/middleware"
	"nexcos/internal/models"
	"nexcos/internal/realtime"
	"nexcos/internal/service"
	"nexcos/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	notifier *realtime.Notifier
	chatHub  *realtime.ChatHub

	resources     *service.ResourceService
	alerts        *service.AlertService
	chat          *service.ChatService
	notifications *service.NotificationService
	sessions      *service.SessionService
	theme         *service.ThemeService
	assistant     *assistant.Service
	// functionResponder answers the edge-function endpoint, which is always
	// local.
	functionResponder *assistant.Responder
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, rt)
}

// NewServerWithDeps creates a Server from an already-initialized runtime.
// Tests use it with an in-memory database and an optional miniredis client.
func NewServerWithDeps(cfg *config.Config, rt *bootstrap.Runtime) (*Server, error) {
	if rt == nil || rt.Seed == nil {
		return nil, fmt.Errorf("runtime with seed data is required")
	}

	s := &Server{
		config:         cfg,
		db:             rt.DB,
		redis:          rt.Redis,
		promMiddleware: middleware.InitMetrics("nexcos-api"),
		notifier:       realtime.NewNotifier(rt.Redis),
		chatHub:        realtime.NewChatHub(),
	}
	s.shutdownCtx, s.shutdownFn = context.WithCancel(context.Background())

	data := rt.Seed
	notificationStore := store.NewNotificationStore(data.Notifications, data.NotificationSettings)
	resourceStore := store.NewResourceStore(data.Resources)
	for _, in := range rt.Demo {
		resourceStore.Add(in)
	}

	s.notifications = service.NewNotificationService(notificationStore, s.notifier)
	s.resources = service.NewResourceService(resourceStore, s.notifier, s.notifications)
	s.alerts = service.NewAlertService(store.NewAlertStore(data.Alerts), s.notifier)
	s.chat = service.NewChatService(store.NewChatStore(data.ChatGroups), s.notifier)
	s.theme = service.NewThemeService(store.NewThemeStore(models.ThemeState{}))

	var provider identity.Provider
	if rt.DB != nil {
		provider = identity.NewPasswordProvider(identity.NewAccountRepository(rt.DB), 0)
	} else {
		provider = unavailableProvider{}
	}
	s.sessions = service.NewSessionService(provider, store.NewAuthStore(), rt.Redis, cfg.JWTSecret)

	s.functionResponder = assistant.NewDefaultResponder()
	var remote assistant.Asker
	if cfg.AssistantRemoteURL != "" {
		timeout := time.Duration(cfg.AssistantTimeoutSeconds) * time.Second
		remote = assistant.NewRemoteClient(cfg.AssistantRemoteURL, timeout)
	}
	s.assistant = assistant.NewService(s.functionResponder, remote, assistant.Mode(cfg.AssistantMode))

	if err := s.chatHub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
		return nil, fmt.Errorf("chat hub wiring: %w", err)
	}

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS
	// headers. The function endpoint sets its own wildcard headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/functions/")
		},
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	fn := app.Group("/functions/v1")
	fn.Options("/nexai", s.NexAIPreflight)
	fn.Post("/nexai", s.NexAIFunction)

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "NexCos Backend Metrics Dashboard",
	}))

	resources := api.Group("/resources")
	resources.Get("/", s.ListResources)
	resources.Post("/", middleware.RateLimit(s.redis, 20, time.Minute, "create_resource"), s.CreateResource)
	resources.Post("/:id/request", s.RequestResource)
	resources.Post("/:id/book", s.BookResource)
	resources.Get("/:id", s.GetResource)
	resources.Patch("/:id", s.UpdateResource)
	resources.Delete("/:id", s.DeleteResource)

	alerts := api.Group("/alerts")
	alerts.Get("/", s.ListAlerts)
	alerts.Get("/latest", s.LatestAlert)
	alerts.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_alert"), s.CreateAlert)
	alerts.Post("/:id/verify", s.VerifyAlert)
	alerts.Delete("/:id", s.DeleteAlert)

	chat := api.Group("/chat")
	chat.Get("/groups", s.ListChatGroups)
	chat.Post("/groups", s.CreateChatGroup)
	chat.Get("/groups/:id/messages", s.GetGroupMessages)
	chat.Post("/groups/:id/messages", middleware.RateLimit(s.redis, 30, time.Minute, "send_chat"), s.PostGroupMessage)
	chat.Get("/active", s.GetActiveGroup)
	chat.Put("/active", s.SetActiveGroup)

	notifications := api.Group("/notifications")
	notifications.Get("/", s.ListNotifications)
	notifications.Post("/", s.CreateNotification)
	notifications.Post("/read-all", s.MarkAllNotificationsRead)
	notifications.Get("/settings", s.GetNotificationSettings)
	notifications.Patch("/settings", s.UpdateNotificationSettings)
	notifications.Post("/:id/read", s.MarkNotificationRead)
	notifications.Delete("/:id", s.DeleteNotification)

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/session", s.GetSession)

	api.Get("/users/me", s.AuthRequired(), s.GetMe)

	theme := api.Group("/theme")
	theme.Get("/", s.GetTheme)
	theme.Post("/toggle", s.ToggleTheme)

	api.Post("/assistant", middleware.RateLimit(s.redis, 30, time.Minute, "assistant"), s.AskAssistant)

	api.Get("/ws/chat/:groupId", s.WebSocketUpgrade, s.WebSocketChatHandler())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports the account database and Redis. Redis is
// optional; only the database makes the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"service": "nexcos",
		"status":  overall,
		"checks": fiber.Map{
			"database":  dbStatus,
			"redis":     redisStatus,
			"assistant": string(s.assistant.Mode()),
		},
		"time": time.Now(),
	})
}

// Start builds the Fiber app and listens on the configured port.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:      "NexCos API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: s.ErrorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if err := s.chatHub.Shutdown(ctx); err != nil {
		log.Printf("error shutting down chat hub: %v", err)
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// unavailableProvider stands in when no account database is configured.
type unavailableProvider struct{}

func (unavailableProvider) CreateAccount(context.Context, string, string, string, string) (identity.Identity, error) {
	return identity.Identity{}, fmt.Errorf("identity provider not configured")
}

func (unavailableProvider) SignIn(context.Context, string, string) (identity.Identity, error) {
	return identity.Identity{}, fmt.Errorf("identity provider not configured")
}
