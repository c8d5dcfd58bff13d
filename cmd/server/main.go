package main

import (
	"context"
	"fmt"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/config"
	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/handler"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/ingest"
	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/repository"
	"gamecatalog/backend/internal/repository/gormrepo"
	"gamecatalog/backend/internal/repository/memory"
	"gamecatalog/backend/pkg/jwt"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamecatalog/backend/docs" // This is important for swag to find the generated docs
)

// @title           Game Catalog API
// @version         1.0
// @description     Browse, search and review games from the catalog.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	hasher := auth.NewBcryptHasher()
	repo, err := openRepository(context.Background(), cfg, hasher)
	if err != nil {
		logging.Fatal().Err(err).Str("repository", cfg.Repository).Msg("failed to prepare repository")
	}

	h := handler.New(repo, hasher, jwt.NewIssuer(cfg.JWTSecret, jwt.DefaultTTL), hub.NewHub(), cfg.PageSize)
	router := handler.SetupRouter(h)

	logging.Info().Str("addr", cfg.Addr()).Msg("server is running")
	logging.Info().Msgf("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
	if err := router.Run(cfg.Addr()); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

// openRepository builds the configured backend. The memory backend is always
// loaded from the data files; the database is only loaded while it is empty.
func openRepository(ctx context.Context, cfg *config.Config, hasher ingest.Hasher) (repository.Repository, error) {
	opts := ingest.Options{Users: cfg.SeedUsers}

	if cfg.Repository == config.RepositoryMemory {
		repo := memory.New()
		report, err := ingest.Populate(ctx, repo, cfg.DataPath, hasher, opts)
		if err != nil {
			return nil, err
		}
		logging.Info().Interface("report", report).Msg("catalog loaded into memory")
		return repo, nil
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, err
	}
	repo := gormrepo.New(db)

	empty, err := database.Empty(db)
	if err != nil {
		return nil, fmt.Errorf("check database contents: %w", err)
	}
	if !empty {
		logging.Info().Msg("database already populated, skipping data load")
		return repo, nil
	}
	report, err := ingest.Populate(ctx, repo, cfg.DataPath, hasher, opts)
	if err != nil {
		return nil, err
	}
	logging.Info().Interface("report", report).Msg("catalog loaded into database")
	return repo, nil
}
