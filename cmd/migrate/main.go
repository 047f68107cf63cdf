// migrate aplica las migraciones SQL embebidas sobre la base configurada y termina.
//
// Uso: go run ./cmd/migrate
// Lee DATABASE_URL o DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME (ver pkg/config).
package main

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-eletronicos/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-eletronicos/pkg/config"
	"github.com/jhoicas/estoque-eletronicos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: cfg.App.Name + "-migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Strs("applied", applied).Msg("aplicar migraciones")
	}
	if len(applied) == 0 {
		log.Info().Msg("base de datos al día, nada que aplicar")
		return
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
}
