package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/quayside/internal/cache"
	"github.com/five82/quayside/internal/config"
	"github.com/five82/quayside/internal/containers"
	"github.com/five82/quayside/internal/logging"
	"github.com/five82/quayside/internal/prefs"
	"github.com/five82/quayside/internal/state"
	"github.com/five82/quayside/internal/ui"
)

// Options configure a quayside session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/quayside/prefs.toml
	Overrides  config.Overrides
}

// Runtime holds the dependencies shared by the TUI and the one-shot
// commands.
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
	Client *containers.Client

	closers []func() error
}

// Setup loads configuration and builds the logger and record client. The
// Redis cache is attached when configured; if it cannot be reached the
// client runs uncached and the failure is logged.
func Setup(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Apply(opts.Overrides); err != nil {
		return nil, fmt.Errorf("apply flags: %w", err)
	}

	logger, closeLog, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	rt := &Runtime{Config: cfg, Logger: logger, closers: []func() error{closeLog}}

	loc, err := cfg.Location()
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	clientOpts := []containers.Option{
		containers.WithTimeout(cfg.RequestTimeout),
		containers.WithLocation(loc),
		containers.WithLogger(logger),
	}
	if cfg.CacheEnabled() {
		redis, err := cache.NewRedis(ctx, cfg.Cache)
		if err != nil {
			logger.Warn("payload cache disabled", zap.Error(err))
		} else {
			clientOpts = append(clientOpts, containers.WithCache(redis, cfg.Cache.TTL))
			rt.closers = append(rt.closers, redis.Close)
			logger.Info("payload cache enabled",
				zap.String("addr", cfg.Cache.RedisAddr),
				zap.Duration("ttl", cfg.Cache.TTL),
			)
		}
	}

	client, err := containers.NewClient(cfg.APIURL, clientOpts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("init container client: %w", err)
	}
	rt.Client = client
	return rt, nil
}

// Close releases everything Setup opened, newest first.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// Run boots the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		rt.Logger.Warn("preferences ignored", zap.Error(err))
	}

	store := &state.Store{}
	loader := NewLoader(store, rt.Client, rt.Logger)
	loader.Start(ctx)

	rt.Logger.Info("starting ui", zap.String("api_url", rt.Config.APIURL))
	return ui.Run(ui.Options{
		Context:   ctx,
		Source:    rt.Client,
		Store:     store,
		Reload:    func() bool { return loader.Reload(ctx) },
		Config:    rt.Config,
		Logger:    rt.Logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}
