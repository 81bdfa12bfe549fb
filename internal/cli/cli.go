package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deskgrid/pkg/cache"
	"github.com/matzehuels/deskgrid/pkg/config"
	"github.com/matzehuels/deskgrid/pkg/dashboard"
	"github.com/matzehuels/deskgrid/pkg/persist"
)

// =============================================================================
// Constants
// =============================================================================

const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	profile    string
	backend    string
	cfg        config.Config

	// openRepo builds the repository for cfg. Tests replace it.
	openRepo func(ctx context.Context, cfg config.Config, logger *log.Logger) (persist.Repository, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		cfg:      config.Default(),
		openRepo: openRepository,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.profile != "" {
		cfg.Profile = c.profile
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Dashboard Factory
// =============================================================================

// openDashboard opens the configured profile.
func (c *CLI) openDashboard(ctx context.Context, opts ...dashboard.Option) (*dashboard.Service, error) {
	repo, err := c.openRepo(ctx, c.cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	opts = append([]dashboard.Option{dashboard.WithLogger(c.Logger)}, opts...)
	svc, err := dashboard.Open(ctx, repo, opts...)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("open dashboard %s: %w", c.cfg.Profile, err)
	}
	c.reportRecovery(svc)
	return svc, nil
}

func (c *CLI) reportRecovery(svc *dashboard.Service) {
	res := svc.Recovery()
	switch res.Mode {
	case persist.ModeSanitized, persist.ModePartial:
		printWarning("Dashboard repaired on load (%s)", res.Mode)
		for _, line := range res.Report {
			printDetail("%s", line)
		}
	case persist.ModeReset:
		c.Logger.Debug("starting with an empty dashboard", "reason", res.Report)
	}
}

// openRepository builds the repository for the configured backend.
func openRepository(ctx context.Context, cfg config.Config, logger *log.Logger) (persist.Repository, error) {
	keyer := cache.NewScopedKeyer(nil, cfg.KeyPrefix)
	cacheRepo := func(c cache.Cache, backend string) persist.Repository {
		return persist.NewCacheRepository(c, cfg.Profile,
			persist.WithKeyer(keyer),
			persist.WithBackendName(backend),
			persist.WithRepositoryLogger(logger),
		)
	}

	switch cfg.Backend {
	case config.BackendMemory:
		return cacheRepo(cache.NewMemoryCache(), cfg.Backend), nil

	case config.BackendRedis:
		sp := newSpinnerWithContext(ctx, "Connecting to Redis at "+cfg.Redis.Addr)
		sp.Start()
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		sp.Stop()
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return cacheRepo(rc, cfg.Backend), nil

	case config.BackendMongo:
		sp := newSpinnerWithContext(ctx, "Connecting to MongoDB")
		sp.Start()
		repo, err := persist.NewMongoRepository(ctx, cfg.Mongo, cfg.Profile)
		sp.Stop()
		if err != nil {
			return nil, err
		}
		return repo, nil

	default:
		fc, err := cache.NewFileCache(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		return cacheRepo(fc, config.BackendFile), nil
	}
}
