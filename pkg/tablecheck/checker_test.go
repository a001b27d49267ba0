package tablecheck

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	tables map[string]bool
	err    error
	probed []string
	closed bool
}

func (f *fakeProber) Close() error {
	f.closed = true
	return nil
}

func (f *fakeProber) ProbeTable(_ context.Context, table string) error {
	f.probed = append(f.probed, table)
	if f.err != nil {
		return f.err
	}
	if !f.tables[table] {
		return errors.New(`relation "` + table + `" does not exist`)
	}
	return nil
}

func TestChecker_PresentTable(t *testing.T) {
	var out bytes.Buffer
	p := &fakeProber{tables: map[string]bool{"disclaimers": true}}

	err := NewChecker(&out, "migrations/001_create_disclaimers.sql").Check(context.Background(), p, "disclaimers")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Table disclaimers exists")
}

func TestChecker_MissingTable(t *testing.T) {
	var out bytes.Buffer
	p := &fakeProber{tables: map[string]bool{"disclaimers": true}}

	err := NewChecker(&out, "migrations/001_create_disclaimers.sql").Check(context.Background(), p, "disclaimer")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTableMissing)
	assert.Contains(t, out.String(), "supatools migrate apply migrations/001_create_disclaimers.sql")
}

func TestChecker_QueryErrorCountsAsMissing(t *testing.T) {
	var out bytes.Buffer
	p := &fakeProber{err: errors.New("permission denied")}

	err := NewChecker(&out, "").Check(context.Background(), p, "disclaimers")

	assert.ErrorIs(t, err, domain.ErrTableMissing)
	assert.Contains(t, out.String(), "<migration.sql>")
}

func TestChecker_InvalidNameIsNotProbed(t *testing.T) {
	p := &fakeProber{}

	err := NewChecker(&bytes.Buffer{}, "").Check(context.Background(), p, "users; DROP TABLE users")

	assert.ErrorIs(t, err, domain.ErrInvalidTable)
	assert.Empty(t, p.probed)
}

func TestChecker_Run_ClosesConnection(t *testing.T) {
	var out bytes.Buffer
	p := &fakeProber{tables: map[string]bool{"disclaimers": true}}

	err := NewChecker(&out, "").Run(context.Background(), "disclaimers", func(context.Context) (Conn, error) {
		return p, nil
	})

	require.NoError(t, err)
	assert.True(t, p.closed)
	assert.Equal(t, []string{"disclaimers"}, p.probed)
}

func TestChecker_Run_ConnectErrorPrintsRemediation(t *testing.T) {
	var out bytes.Buffer
	dialErr := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")

	err := NewChecker(&out, "migrations/001_create_disclaimers.sql").Run(context.Background(), "disclaimers", func(context.Context) (Conn, error) {
		return nil, dialErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTableMissing)
	assert.ErrorIs(t, err, dialErr)
	assert.Contains(t, out.String(), "Table disclaimers does not exist or is not readable.")
	assert.Contains(t, out.String(), "supatools migrate apply migrations/001_create_disclaimers.sql")
}

func TestChecker_Run_InvalidNameDoesNotConnect(t *testing.T) {
	opened := false

	err := NewChecker(&bytes.Buffer{}, "").Run(context.Background(), "a.b.c", func(context.Context) (Conn, error) {
		opened = true
		return &fakeProber{}, nil
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTable)
	assert.False(t, opened)
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"disclaimers", true},
		{"public.disclaimers", true},
		{"_private", true},
		{"", false},
		{"1table", false},
		{"a.b.c", false},
		{"pac-ids", false},
		{"public.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidName(tt.name))
		})
	}
}
