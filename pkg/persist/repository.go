package persist

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deskgrid/pkg/cache"
	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/observability"
)

// DefaultProfile is the profile used when none is configured.
const DefaultProfile = "default"

// Repository loads and saves the dashboard of one profile.
type Repository interface {
	// Load returns the stored document, or nil, nil when nothing is stored.
	// The document is not migrated or validated.
	Load(ctx context.Context) (*Document, error)

	// Save replaces the stored document.
	Save(ctx context.Context, d *Document) error

	// Close releases backend resources.
	Close() error
}

// CacheRepository stores documents as JSON blobs in a cache.Cache. Every
// save first copies the previous readable document to a backup key, and
// Load falls back to that backup when the current blob is corrupt.
type CacheRepository struct {
	cache   cache.Cache
	keyer   cache.Keyer
	profile string
	backend string
	logger  *log.Logger
}

// CacheOption configures a CacheRepository.
type CacheOption func(*CacheRepository)

// WithKeyer sets the key layout. The default is cache.NewDefaultKeyer().
func WithKeyer(k cache.Keyer) CacheOption {
	return func(r *CacheRepository) {
		if k != nil {
			r.keyer = k
		}
	}
}

// WithBackendName labels the backend in hooks and logs.
func WithBackendName(name string) CacheOption {
	return func(r *CacheRepository) {
		if name != "" {
			r.backend = name
		}
	}
}

// WithRepositoryLogger sets the logger.
func WithRepositoryLogger(l *log.Logger) CacheOption {
	return func(r *CacheRepository) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewCacheRepository creates a repository for profile on c.
func NewCacheRepository(c cache.Cache, profile string, opts ...CacheOption) *CacheRepository {
	if profile == "" {
		profile = DefaultProfile
	}
	r := &CacheRepository{
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		profile: profile,
		backend: "cache",
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Profile returns the profile name.
func (r *CacheRepository) Profile() string { return r.profile }

// Load reads the current document, falling back to the backup.
func (r *CacheRepository) Load(ctx context.Context) (*Document, error) {
	start := time.Now()
	d, err := r.load(ctx)
	observability.Storage().OnLoad(ctx, r.backend, time.Since(start), err)
	return d, err
}

func (r *CacheRepository) load(ctx context.Context) (*Document, error) {
	key := r.keyer.DashboardKey(r.profile)
	data, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load dashboard %s", r.profile)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "dashboard")
		return nil, nil
	}
	observability.Cache().OnCacheHit(ctx, "dashboard")

	d, decodeErr := Unmarshal(data)
	if decodeErr == nil {
		return d, nil
	}
	r.logger.Warn("stored dashboard is corrupt, trying backup", "profile", r.profile, "err", decodeErr)

	backup, hit, err := r.cache.Get(ctx, r.keyer.BackupKey(r.profile))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load backup %s", r.profile)
	}
	if !hit {
		return nil, decodeErr
	}
	d, err = Unmarshal(backup)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "dashboard %s and its backup are corrupt", r.profile)
	}
	r.logger.Info("loaded dashboard from backup", "profile", r.profile)
	return d, nil
}

// Save writes d, keeping the previous readable document as backup.
func (r *CacheRepository) Save(ctx context.Context, d *Document) error {
	start := time.Now()
	size, err := r.save(ctx, d)
	observability.Storage().OnSave(ctx, r.backend, size, time.Since(start), err)
	return err
}

func (r *CacheRepository) save(ctx context.Context, d *Document) (int, error) {
	if d == nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	data, err := Marshal(d)
	if err != nil {
		return 0, err
	}

	key := r.keyer.DashboardKey(r.profile)
	if prev, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		if _, err := Unmarshal(prev); err == nil {
			if err := r.cache.Set(ctx, r.keyer.BackupKey(r.profile), prev, 0); err != nil {
				r.logger.Warn("could not write dashboard backup", "profile", r.profile, "err", err)
			}
		}
	}

	if err := r.cache.Set(ctx, key, data, 0); err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorage, err, "save dashboard %s", r.profile)
	}
	observability.Cache().OnCacheSet(ctx, "dashboard", len(data))
	r.logger.Debug("dashboard saved", "profile", r.profile, "backend", r.backend, "bytes", len(data))
	return len(data), nil
}

// Delete removes the document and its backup.
func (r *CacheRepository) Delete(ctx context.Context) error {
	if err := r.cache.Delete(ctx, r.keyer.DashboardKey(r.profile)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete dashboard %s", r.profile)
	}
	if err := r.cache.Delete(ctx, r.keyer.BackupKey(r.profile)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete backup %s", r.profile)
	}
	return nil
}

// Close closes the underlying cache.
func (r *CacheRepository) Close() error {
	return r.cache.Close()
}

var _ Repository = (*CacheRepository)(nil)
