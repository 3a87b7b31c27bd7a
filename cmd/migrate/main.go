// Command migrate aplica las migraciones embebidas (o las de MIGRATIONS_DIR) sobre la base configurada.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/jhoicas/semillas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/semillas-api/migrations"
	"github.com/jhoicas/semillas-api/pkg/config"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var src fs.FS = migrations.FS
	if cfg.DB.MigrationsDir != "" {
		src = os.DirFS(cfg.DB.MigrationsDir)
	}

	applied, err := postgres.Migrate(ctx, pool, src, log)
	if errors.Is(err, postgres.ErrMigrationLocked) {
		log.Warn().Msg("otro proceso está aplicando migraciones; nada que hacer")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Strs("aplicadas", applied).Msg("migraciones")
	}
	log.Info().Int("aplicadas", len(applied)).Strs("versiones", applied).Msg("migraciones al día")
}
