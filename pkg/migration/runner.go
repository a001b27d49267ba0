package migration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/hashicorp/go-multierror"
)

const rule = "----------------------------------------"

type Executor interface {
	ExecSQL(ctx context.Context, script string) error
	Close() error
}

// Opener connects lazily so that an unreadable file never opens a
// connection.
type Opener func(ctx context.Context) (Executor, error)

type Runner struct {
	out io.Writer
}

func NewRunner(out io.Writer) *Runner {
	return &Runner{out: out}
}

func Load(path string) (domain.Migration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Migration{}, fmt.Errorf("reading migration file: %w", err)
	}

	script := string(data)
	if strings.TrimSpace(script) == "" {
		return domain.Migration{}, fmt.Errorf("migration file %s is empty", path)
	}

	return domain.Migration{
		Name: filepath.Base(path),
		Path: path,
		SQL:  script,
	}, nil
}

// Run reads the file at path, opens an executor and applies the script as a
// single batch. The executor is closed whatever the outcome.
func (r *Runner) Run(ctx context.Context, path string, open Opener) (err error) {
	fmt.Fprintf(r.out, "Reading migration %s\n", path)

	m, err := Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, "Connecting to database...")
	exec, err := open(ctx)
	if err != nil {
		return fmt.Errorf("opening connection: %w", err)
	}
	defer func() {
		if closeErr := exec.Close(); closeErr != nil {
			err = multierror.Append(err, fmt.Errorf("closing connection: %w", closeErr))
		}
	}()

	return r.Apply(ctx, m, exec)
}

func (r *Runner) Apply(ctx context.Context, m domain.Migration, exec Executor) error {
	fmt.Fprintf(r.out, "Executing %s:\n%s\n%s\n%s\n", m.Name, rule, strings.TrimRight(m.SQL, "\n"), rule)

	if err := exec.ExecSQL(ctx, m.SQL); err != nil {
		return fmt.Errorf("applying %s: %w", m.Name, err)
	}

	slog.InfoContext(ctx, "migration applied", "name", m.Name)
	fmt.Fprintf(r.out, "Migration %s applied successfully\n", m.Name)
	return nil
}
