package router

import (
	"context"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskhub/internal/config"
	"taskhub/internal/errors"
	"taskhub/internal/handler"
	"taskhub/internal/logger"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Team       *handler.TeamHandler
	Project    *handler.ProjectHandler
	Task       *handler.TaskHandler
	Attachment *handler.AttachmentHandler
	Health     *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log *logger.Logger, authn Authenticator, h Handlers) {
	e.HideBanner = true
	e.Validator = NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(logger.WithRequestID(c.Request().Context(), id)))
		},
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", h.Health.Live)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", h.Health.Health)

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	// Secured routes (require a valid access token)
	secured := api.Group("", RequireAuth(authn))

	secured.GET("/users/me", h.User.Me)

	secured.POST("/teams", h.Team.CreateTeam)
	secured.GET("/teams", h.Team.ListTeams)
	secured.GET("/teams/:teamId", h.Team.GetTeam)
	secured.POST("/teams/:teamId/members", h.Team.AddMember)

	secured.POST("/projects", h.Project.CreateProject)
	secured.GET("/projects/team/:teamId", h.Project.ListByTeam)
	secured.GET("/projects/:projectId", h.Project.GetProject)

	secured.POST("/tasks", h.Task.CreateTask)
	secured.GET("/tasks/project/:projectId", h.Task.ListByProject)
	secured.PUT("/tasks/:taskId/status", h.Task.UpdateStatus)

	secured.POST("/attachments/upload/:taskId", h.Attachment.Upload)
	secured.GET("/attachments/task/:taskId", h.Attachment.ListByTask)
	secured.GET("/attachments/:attachmentId", h.Attachment.Get)
}

// RequireAuth extracts the bearer token and stores the caller's id under
// handler.UserIDKey. Every failure, including a missing header, produces the
// same 401 body.
func RequireAuth(authn Authenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.UserIDKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authn.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := log.WithContext(c.Request().Context())
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil && v.Status >= 500 {
				l.Errorw("request failed", append(fields, "error", v.Error)...)
				return nil
			}
			l.Infow("request", fields...)
			return nil
		},
	})
}
