package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcService struct {
	name string
	run  func(ctx context.Context) error
}

func (f funcService) Name() string { return f.name }
func (f funcService) Run(ctx context.Context) error { return f.run(ctx) }

func TestGroup_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	g := Group{
		funcService{name: "failing", run: func(context.Context) error { return boom }},
		funcService{name: "waiting", run: func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}},
	}

	done := make(chan error, 1)
	go func() { done <- g.Start(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("group did not stop after a service failed")
	}
}

func TestGroup_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := Group{funcService{name: "waiting", run: func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}}}

	cancel()
	assert.NoError(t, g.Start(ctx))
}

func TestHTTPServer_ServesAndShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s, err := NewHTTPServer(ln.Addr().String(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	_, err := NewHTTPServer("", http.NotFoundHandler())
	assert.Error(t, err)
}
