// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, embeddings) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/docchat/internal/config"
	"github.com/JaimeStill/docchat/migrations"
	"github.com/JaimeStill/docchat/pkg/database"
	"github.com/JaimeStill/docchat/pkg/embeddings"
	"github.com/JaimeStill/docchat/pkg/lifecycle"
	"github.com/JaimeStill/docchat/pkg/logging"
	"github.com/JaimeStill/docchat/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Embedder  embeddings.Embedder

	dbConfig *database.Config
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	embedder, err := embeddings.New(&cfg.Embeddings, logger)
	if err != nil {
		return nil, fmt.Errorf("embeddings init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Embedder:  embedder,
		dbConfig:  &cfg.Database,
	}, nil
}

// Start applies pending migrations when auto_migrate is enabled, then
// registers every system with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.dbConfig != nil && i.dbConfig.AutoMigrate {
		if err := i.migrate(); err != nil {
			return err
		}
	}

	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

func (i *Infrastructure) migrate() error {
	m, err := database.NewMigrator(i.dbConfig, migrations.FS, i.Logger)
	if err != nil {
		return fmt.Errorf("migrator init failed: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	i.Logger.Info("database migrated", "version", version, "dirty", dirty)
	return nil
}
