package app

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/five82/quayside/internal/containers"
	"github.com/five82/quayside/internal/state"
)

// Loader fetches the full record set into a state.Store. At most one fetch
// runs at a time.
type Loader struct {
	store   *state.Store
	source  containers.Source
	logger  *zap.Logger
	running atomic.Bool
}

// NewLoader returns a Loader publishing into store.
func NewLoader(store *state.Store, source containers.Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: store, source: source, logger: logger}
}

// Load fetches synchronously and returns the fetch error, which is also
// recorded in the store.
func (l *Loader) Load(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	l.store.Begin()
	return l.fetch(ctx)
}

// Start launches a fetch in the background. It returns false when a fetch
// is already in flight.
func (l *Loader) Start(ctx context.Context) bool {
	return l.start(ctx)
}

// Reload is Start for a user-requested refresh: the fetch bypasses the
// payload cache and goes to the API.
func (l *Loader) Reload(ctx context.Context) bool {
	return l.start(containers.WithFresh(ctx))
}

func (l *Loader) start(ctx context.Context) bool {
	if !l.running.CompareAndSwap(false, true) {
		return false
	}
	l.store.Begin()
	go func() {
		defer l.running.Store(false)
		_ = l.fetch(ctx)
	}()
	return true
}

func (l *Loader) fetch(ctx context.Context) error {
	started := time.Now()
	records, err := l.source.FetchAll(ctx)
	if err != nil {
		l.store.Finish(nil, err)
		l.logger.Error("container load failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(started)),
		)
		return err
	}
	l.store.Finish(records, nil)
	l.logger.Info("containers loaded",
		zap.Int("count", len(records)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}
