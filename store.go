package main

import (
	"context"
	"fmt"

	"github.com/dskvich/supatools/pkg/database"
	"github.com/dskvich/supatools/pkg/repository"
	"github.com/dskvich/supatools/pkg/supabase"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const (
	viaDirect = "direct"
	viaAPI    = "api"
)

var viaOptions = []string{viaDirect, viaAPI}

// schemaStore is satisfied by both the direct wire connection and the
// managed REST client.
type schemaStore interface {
	ExecSQL(ctx context.Context, script string) error
	ProbeTable(ctx context.Context, table string) error
	Close() error
}

func addViaFlag(cmd *cobra.Command, target *string, def string) {
	cmd.Flags().StringVar(target, "via", def, fmt.Sprintf("connection path, one of %v", viaOptions))
}

func (a *app) openStore(via string, preferAnon bool) (schemaStore, error) {
	if !lo.Contains(viaOptions, via) {
		return nil, fmt.Errorf("unsupported connection path %q, expected one of %v", via, viaOptions)
	}

	if via == viaAPI {
		return supabase.NewClient(a.cfg.SupabaseURL, a.cfg.apiKey(preferAnon))
	}

	opts, err := a.cfg.dbOptions()
	if err != nil {
		return nil, err
	}
	db, err := database.NewDB(opts)
	if err != nil {
		return nil, err
	}
	return repository.NewSchemaRepository(db), nil
}
