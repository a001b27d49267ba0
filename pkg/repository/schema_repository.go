package repository

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type schemaRepository struct {
	db *bun.DB
}

func NewSchemaRepository(db *bun.DB) *schemaRepository {
	return &schemaRepository{db: db}
}

// ExecSQL runs the whole script in one round trip. Without bind arguments
// pgdriver uses the simple query protocol, so multi-statement scripts work.
func (s *schemaRepository) ExecSQL(ctx context.Context, script string) error {
	if _, err := s.db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("executing sql: %w", err)
	}
	return nil
}

func (s *schemaRepository) ProbeTable(ctx context.Context, table string) error {
	_, err := s.db.NewSelect().
		TableExpr("?", bun.Ident(table)).
		ColumnExpr("1").
		Limit(1).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("querying table %s: %w", table, err)
	}
	return nil
}

func (s *schemaRepository) Close() error {
	return s.db.Close()
}
