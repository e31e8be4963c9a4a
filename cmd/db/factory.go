package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/repository/channel"
	"github.com/Taichi-iskw/ytmeta/internal/repository/common"
	"github.com/Taichi-iskw/ytmeta/internal/repository/video"
	"github.com/Taichi-iskw/ytmeta/internal/service/archive"
)

// ServiceFactory creates archive service instances and applies schema migrations
type ServiceFactory interface {
	Migrate(params *config.Params) (uint, error)
	CreateService(ctx context.Context, params *config.Params, log zerolog.Logger) (archive.ArchiveService, func(), error)
}

type serviceFactory struct{}

// NewServiceFactory creates a new service factory backed by PostgreSQL
func NewServiceFactory() ServiceFactory {
	return &serviceFactory{}
}

// Migrate applies every pending migration and returns the resulting schema version
func (f *serviceFactory) Migrate(params *config.Params) (uint, error) {
	dbConfig, err := params.ParseDatabaseConfig()
	if err != nil {
		return 0, err
	}
	return common.RunMigrations(dbConfig.URL())
}

// CreateService creates a new archive service with all dependencies
func (f *serviceFactory) CreateService(ctx context.Context, params *config.Params, log zerolog.Logger) (archive.ArchiveService, func(), error) {
	dbPool, err := config.NewDatabasePool(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	service := archive.NewArchiveService(
		channel.NewRepository(dbPool),
		video.NewRepository(dbPool),
		log,
	)

	cleanup := func() {
		dbPool.Close()
	}

	return service, cleanup, nil
}
