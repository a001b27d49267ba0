package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dskvich/supatools/pkg/logger"
	"github.com/hashicorp/go-multierror"
)

type Service interface {
	Name() string
	Run(ctx context.Context) error
}

type Group []Service

// Start runs every service and blocks until all of them return. The first
// failure cancels the rest; all failures are returned together.
func (g Group) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)

	for _, s := range g {
		wg.Add(1)
		go func(s Service) {
			defer wg.Done()

			slog.Info("starting service", "name", s.Name())
			if err := s.Run(ctx); err != nil {
				slog.Error("service stopped with error", "name", s.Name(), logger.Err(err))
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
				cancel()
				return
			}
			slog.Info("service stopped", "name", s.Name())
		}(s)
	}

	wg.Wait()
	return result.ErrorOrNil()
}
