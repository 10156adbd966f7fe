package main

import (
	"context"
	"flag"

	"taskhub/internal/access"
	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/logger"
	"taskhub/internal/repository"
	"taskhub/internal/seed"
	"taskhub/internal/service"
)

func main() {
	source := flag.String("file", "seed/demo.json", "seed data file path or http(s) URL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New("development", "info").Fatalw("config", "error", err)
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	log.Info("Starting seed script...")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB, log.Warnf); err != nil {
		log.Fatalw("Failed to run migrations", "error", err)
	}
	log.Info("Database migrations completed")

	data, err := seed.Load(*source)
	if err != nil {
		log.Fatalw("Failed to load seed data", "source", *source, "error", err)
	}
	log.Infow("Loaded seed data", "users", len(data.Users), "teams", len(data.Teams))

	userRepo := repository.NewUserRepository(gormDB)
	resolver := access.NewResolver(repository.NewOwnershipRepository(gormDB))
	tokens := auth.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	seeder := &seed.Seeder{
		Auth:     service.NewAuthService(userRepo, tokens, log),
		Teams:    service.NewTeamService(repository.NewTeamRepository(gormDB), userRepo, resolver),
		Projects: service.NewProjectService(repository.NewProjectRepository(gormDB), resolver),
		Tasks:    service.NewTaskService(repository.NewTaskRepository(gormDB), resolver),
		Log:      log,
	}

	sum, err := seeder.Run(context.Background(), data)
	if err != nil {
		log.Fatalw("Failed to seed", "error", err)
	}

	log.Infow("Seed completed successfully!",
		"users_created", sum.Users,
		"users_existing", sum.ExistingUsers,
		"teams", sum.Teams,
		"members", sum.Members,
		"projects", sum.Projects,
		"tasks", sum.Tasks,
	)
}
