package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/dskvich/supatools/pkg/database"
	"github.com/dskvich/supatools/pkg/logger"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type Config struct {
	SupabaseURL            string     `env:"SUPABASE_URL"`
	SupabaseAnonKey        string     `env:"SUPABASE_ANON_KEY"`
	SupabaseServiceRoleKey string     `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseProjectRef     string     `env:"SUPABASE_PROJECT_REF"`
	PgURL                  string     `env:"DATABASE_URL"`
	PgHost                 string     `env:"DB_HOST"`
	PgPort                 int        `env:"DB_PORT" envDefault:"5432"`
	PgName                 string     `env:"DB_NAME" envDefault:"postgres"`
	PgUser                 string     `env:"DB_USER" envDefault:"postgres"`
	PgPassword             string     `env:"SUPABASE_DB_PASSWORD"`
	OpenAIToken            string     `env:"OPEN_AI_TOKEN"`
	ReplicateToken         string     `env:"REPLICATE_TOKEN"`
	ImageModel             string     `env:"IMAGE_MODEL" envDefault:"dall-e-3"`
	ImageAPIURL            string     `env:"IMAGE_API_URL" envDefault:"http://localhost:3000"`
	HTTPAddr               string     `env:"HTTP_ADDR" envDefault:":3000"`
	LogLevel               slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	NoColor                bool       `env:"NO_COLOR"`
}

func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, nil
}

// projectRef falls back to the subdomain of SUPABASE_URL
// (https://<ref>.supabase.co).
func (c *Config) projectRef() string {
	if c.SupabaseProjectRef != "" {
		return c.SupabaseProjectRef
	}
	u, err := url.Parse(c.SupabaseURL)
	if err != nil || !strings.HasSuffix(u.Hostname(), ".supabase.co") {
		return ""
	}
	return strings.TrimSuffix(u.Hostname(), ".supabase.co")
}

func (c *Config) dbOptions() (database.Options, error) {
	if c.PgURL != "" {
		return database.Options{URL: c.PgURL}, nil
	}

	host := c.PgHost
	if host == "" {
		if ref := c.projectRef(); ref != "" {
			host = "db." + ref + ".supabase.co"
		}
	}
	if host == "" {
		return database.Options{}, errors.New("set DATABASE_URL, DB_HOST or SUPABASE_PROJECT_REF")
	}
	if c.PgPassword == "" {
		return database.Options{}, errors.New("SUPABASE_DB_PASSWORD is required for a direct connection")
	}

	return database.Options{
		Host:     host,
		Port:     c.PgPort,
		Name:     c.PgName,
		User:     c.PgUser,
		Password: c.PgPassword,
	}, nil
}

// apiKey prefers the service role key; schema changes need it.
func (c *Config) apiKey(preferAnon bool) string {
	if preferAnon {
		return lo.CoalesceOrEmpty(c.SupabaseAnonKey, c.SupabaseServiceRoleKey)
	}
	return lo.CoalesceOrEmpty(c.SupabaseServiceRoleKey, c.SupabaseAnonKey)
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("command failed", logger.Err(err))
		os.Exit(1)
	}
}

func runMain() error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return newRootCmd().ExecuteContext(ctx)
}

type app struct {
	cfg *Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "supatools",
		Short:         "Migration, table check, block and image tooling for a Supabase project",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			color.NoColor = color.NoColor || cfg.NoColor
			slog.SetDefault(slog.New(logger.NewHandler(cmd.ErrOrStderr(), &logger.Options{
				Level:   cfg.LogLevel,
				NoColor: color.NoColor,
			})))
			return nil
		},
	}

	rootCmd.AddCommand(
		a.migrateCmd(),
		a.checkTableCmd(),
		a.blockCmd(),
		a.generateImageCmd(),
		a.serveCmd(),
	)

	return rootCmd
}
