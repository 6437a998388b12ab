// migrate aplica o revierte las migraciones embebidas sin levantar el servidor HTTP.
//
// Uso: go run ./cmd/migrate [up|down]
// Por defecto aplica todas las pendientes (up).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{Env: cfg.App.Env, Level: "debug"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inicializar logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	switch direction {
	case "up":
		err = postgres.Migrate(pool, log)
	case "down":
		err = postgres.MigrateDown(pool, log)
	default:
		fmt.Fprintf(os.Stderr, "Dirección desconocida %q (usar up o down)\n", direction)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migraciones")
	}
	log.Info().Str("direction", direction).Msg("listo")
}
