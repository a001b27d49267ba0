package database

import (
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

const (
	defaultMaxOpenConns    = 5
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultDialTimeout     = 10 * time.Second
)

// Options describe a direct wire connection. URL, when set, wins over the
// discrete fields.
type Options struct {
	URL      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

func (o Options) addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

func connectorOptions(o Options) []pgdriver.Option {
	if o.URL != "" {
		return []pgdriver.Option{pgdriver.WithDSN(o.URL)}
	}
	return []pgdriver.Option{
		pgdriver.WithAddr(o.addr()),
		pgdriver.WithDatabase(o.Name),
		pgdriver.WithUser(o.User),
		pgdriver.WithPassword(o.Password),
		// The pooler presents a certificate that does not verify against
		// the system roots.
		pgdriver.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}), //nolint:gosec
		pgdriver.WithDialTimeout(defaultDialTimeout),
		pgdriver.WithApplicationName("supatools"),
	}
}

func NewDB(o Options) (*bun.DB, error) {
	if o.URL == "" {
		slog.Info("postgres connection", "addr", o.addr(), "database", o.Name, "user", o.User)
	} else {
		slog.Info("postgres connection string provided")
	}

	sqlDB := sql.OpenDB(pgdriver.NewConnector(connectorOptions(o)...))
	sqlDB.SetMaxOpenConns(defaultMaxOpenConns)
	sqlDB.SetMaxIdleConns(defaultMaxIdleConns)
	sqlDB.SetConnMaxLifetime(defaultConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	bunDB := bun.NewDB(sqlDB, pgdialect.New())
	bunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	return bunDB, nil
}
