package database

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/samber/lo"
)

const dialect = "postgres"

//go:embed migrations/*.sql
var migrationsFS embed.FS

type MigrationStatus struct {
	ID        string
	Applied   bool
	AppliedAt time.Time
}

// source reads dir from disk, or the migrations built into the binary when
// dir is empty.
func source(dir string) migrate.MigrationSource {
	if dir == "" {
		return &migrate.EmbedFileSystemMigrationSource{
			FileSystem: migrationsFS,
			Root:       "migrations",
		}
	}
	return &migrate.FileMigrationSource{Dir: dir}
}

// RunMigrations applies every pending "-- +migrate Up" file and records it
// in the gorp_migrations table.
func RunMigrations(db *sql.DB, dir string) (int, error) {
	n, err := migrate.Exec(db, dialect, source(dir), migrate.Up)
	if err != nil {
		return n, fmt.Errorf("running migrations: %w", err)
	}
	return n, nil
}

func Status(db *sql.DB, dir string) ([]MigrationStatus, error) {
	migrations, err := source(dir).FindMigrations()
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	records, err := migrate.GetMigrationRecords(db, dialect)
	if err != nil {
		return nil, fmt.Errorf("reading migration records: %w", err)
	}

	applied := lo.SliceToMap(records, func(r *migrate.MigrationRecord) (string, time.Time) {
		return r.Id, r.AppliedAt
	})

	return lo.Map(migrations, func(m *migrate.Migration, _ int) MigrationStatus {
		at, ok := applied[m.Id]
		return MigrationStatus{ID: m.Id, Applied: ok, AppliedAt: at}
	}), nil
}
