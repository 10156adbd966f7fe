package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "taskhub/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"taskhub/internal/access"
	"taskhub/internal/auth"
	"taskhub/internal/cache"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/handler"
	"taskhub/internal/logger"
	"taskhub/internal/repository"
	"taskhub/internal/router"
	"taskhub/internal/service"
)

// @title Taskhub API
// @version 1.0
// @description Team, project and task tracking API with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("development", "info").Fatalw("config", "error", err)
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalw("database init", "error", err)
	}
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB, log.Warnf); err != nil {
		log.Fatalw("database migrate", "error", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	attachmentRepo := repository.NewAttachmentRepository(gormDB)

	// Initialize auth components
	tokenOpts := []auth.Option{}
	if cfg.SessionRevocation {
		tokenOpts = append(tokenOpts, auth.WithRevocationChecker(auth.NewTokenStore(cacheClient)))
		log.Info("renewal token revocation enabled")
	}
	tokens := auth.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, tokenOpts...)
	resolver := access.NewResolver(repository.NewOwnershipRepository(gormDB))

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, log)
	userService := service.NewUserService(userRepo, cacheClient)
	teamService := service.NewTeamService(teamRepo, userRepo, resolver)
	projectService := service.NewProjectService(projectRepo, resolver)
	taskService := service.NewTaskService(taskRepo, resolver)
	attachmentService := service.NewAttachmentService(attachmentRepo, resolver)

	e := echo.New()
	router.Register(e, cfg, log, authService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.CookieSecure),
		User:       handler.NewUserHandler(userService),
		Team:       handler.NewTeamHandler(teamService),
		Project:    handler.NewProjectHandler(projectService),
		Task:       handler.NewTaskHandler(taskService),
		Attachment: handler.NewAttachmentHandler(attachmentService),
		Health: handler.NewHealthHandler(cfg.AppEnv, map[string]handler.Pinger{
			"mysql": db.Pinger{DB: gormDB},
			"redis": cacheClient,
		}),
	})

	log.Infof("Swagger documentation available at: %s", swaggerURL(cfg.SwaggerHost, cfg.ServerPort))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Infow("server starting", "addr", addr, "env", cfg.AppEnv)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server start", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown", "error", err)
	}
}

func swaggerURL(host, port string) string {
	if host == "" {
		return "http://localhost:" + port + "/swagger/index.html"
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host + "/swagger/index.html"
	}
	return "http://" + host + "/swagger/index.html"
}
