package tablecheck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/dskvich/supatools/pkg/logger"
	"github.com/samber/lo"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Prober interface {
	ProbeTable(ctx context.Context, table string) error
}

type Conn interface {
	Prober
	Close() error
}

// Opener connects after the table name has been validated.
type Opener func(ctx context.Context) (Conn, error)

type Checker struct {
	out         io.Writer
	remediation string
}

// NewChecker builds a checker. remediation names the migration that creates
// the table and is printed when it is missing.
func NewChecker(out io.Writer, remediation string) *Checker {
	return &Checker{out: out, remediation: remediation}
}

// Run validates table, opens a connection and checks the table through it.
// A connection that cannot be opened is reported like a missing table. The
// connection is closed whatever the outcome.
func (c *Checker) Run(ctx context.Context, table string, open Opener) error {
	if err := c.validate(table); err != nil {
		return err
	}

	conn, err := open(ctx)
	if err != nil {
		slog.DebugContext(ctx, "opening connection failed", "table", table, logger.Err(err))
		c.printRemediation(table)
		return fmt.Errorf("%w: %s: %w", domain.ErrTableMissing, table, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.WarnContext(ctx, "closing connection", logger.Err(err))
		}
	}()

	return c.probe(ctx, conn, table)
}

// Check returns nil when table answers a limit-1 read. A missing table and a
// failed query both end in domain.ErrTableMissing.
func (c *Checker) Check(ctx context.Context, prober Prober, table string) error {
	if err := c.validate(table); err != nil {
		return err
	}
	return c.probe(ctx, prober, table)
}

func (c *Checker) validate(table string) error {
	if !ValidName(table) {
		fmt.Fprintf(c.out, "Invalid table name %q\n", table)
		return fmt.Errorf("%w: %q", domain.ErrInvalidTable, table)
	}
	return nil
}

func (c *Checker) probe(ctx context.Context, prober Prober, table string) error {
	fmt.Fprintf(c.out, "Checking table %s...\n", table)

	if err := prober.ProbeTable(ctx, table); err != nil {
		slog.DebugContext(ctx, "table probe failed", "table", table, logger.Err(err))
		c.printRemediation(table)
		return fmt.Errorf("%w: %s", domain.ErrTableMissing, table)
	}

	fmt.Fprintf(c.out, "Table %s exists\n", table)
	return nil
}

func (c *Checker) printRemediation(table string) {
	fmt.Fprintf(c.out, "Table %s does not exist or is not readable.\n", table)
	fmt.Fprintln(c.out, "To create it:")
	if c.remediation != "" {
		fmt.Fprintf(c.out, "  1. Run: supatools migrate apply %s\n", c.remediation)
	} else {
		fmt.Fprintln(c.out, "  1. Run: supatools migrate apply <migration.sql>")
	}
	fmt.Fprintln(c.out, "  2. Or paste the migration into the SQL editor of your project dashboard and run it.")
	fmt.Fprintln(c.out, "  3. Check that RLS policies allow the key you are using to read the table.")
}

// ValidName accepts "table" or "schema.table" made of plain identifiers.
func ValidName(table string) bool {
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return false
	}
	return lo.EveryBy(parts, identRe.MatchString)
}
