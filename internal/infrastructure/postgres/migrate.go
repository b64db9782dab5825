package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectAppliedMigrations = `SELECT COALESCE(array_agg(name), '{}') FROM schema_migrations`
)

// Migrate aplica en orden los scripts de migrations/ que no figuren en schema_migrations.
// Cada script corre una sola vez: borrar una unidad sembrada o cambiar su factor
// sobrevive al reinicio.
func Migrate(ctx context.Context, q Querier, log zerolog.Logger) error {
	return migrate(ctx, q, migrationsFS, log)
}

func migrate(ctx context.Context, q Querier, fsys fs.FS, log zerolog.Logger) error {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)

	if _, err := q.Exec(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}
	var applied []string
	if err := q.QueryRow(ctx, selectAppliedMigrations).Scan(&applied); err != nil {
		return fmt.Errorf("leer schema_migrations: %w", err)
	}
	done := make(map[string]struct{}, len(applied))
	for _, name := range applied {
		done[name] = struct{}{}
	}

	for _, file := range names {
		name := path.Base(file)
		if _, ok := done[name]; ok {
			log.Debug().Str("migration", name).Msg("migración ya aplicada")
			continue
		}
		script, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		// Script y registro van en un solo Exec sin argumentos (protocolo simple):
		// PostgreSQL los ejecuta en una transacción implícita.
		batch := string(script) + "\n;\nINSERT INTO schema_migrations (name) VALUES ('" +
			strings.ReplaceAll(name, "'", "''") + "');"
		if _, err := q.Exec(ctx, batch); err != nil {
			return fmt.Errorf("aplicar %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("migración aplicada")
	}
	return nil
}
