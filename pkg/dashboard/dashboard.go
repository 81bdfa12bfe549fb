// Package dashboard ties a [store.Store] to a [persist.Repository].
//
// [Open] loads the stored document, repairs it with [persist.Recover] and
// seeds a fresh Store. With autosave enabled (the default), every committed
// change is written back to the repository; save failures never undo the
// in-memory change and are reported through [Service.LastSaveError].
//
//	repo := persist.NewCacheRepository(fileCache, "default")
//	svc, err := dashboard.Open(ctx, repo)
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	svc.Store().AddWidget(widget.TypeClock, nil)
//
// A Service is not safe for concurrent use; callers serialize access the
// same way they serialize access to the Store.
package dashboard

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/observability"
	"github.com/matzehuels/deskgrid/pkg/persist"
	"github.com/matzehuels/deskgrid/pkg/store"
	"github.com/matzehuels/deskgrid/pkg/widget"
)

// saveTimeout bounds each autosave.
const saveTimeout = 10 * time.Second

type options struct {
	logger   *log.Logger
	registry *widget.Registry
	autosave bool
	now      func() time.Time
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger shared by the service and its Store.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegistry sets the widget registry. The default is widget.Builtin().
func WithRegistry(r *widget.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithAutosave enables or disables saving after each committed change.
// Disabling it also keeps Open from writing back a repaired document.
func WithAutosave(enabled bool) Option {
	return func(o *options) { o.autosave = enabled }
}

// WithClock sets the time source for SavedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Service is an open dashboard.
type Service struct {
	repo        persist.Repository
	store       *store.Store
	resolver    *layout.Resolver
	logger      *log.Logger
	now         func() time.Time
	recovery    persist.RecoveryResult
	issues      []layout.Issue
	lastSaveErr error
	paused      bool
	unsubscribe func()
}

// Open loads the dashboard from repo. A missing or unusable document yields
// a default dashboard; only a failing backend is an error.
func Open(ctx context.Context, repo persist.Repository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil repository")
	}
	o := options{
		logger:   log.New(io.Discard),
		registry: widget.Builtin(),
		autosave: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	resolver := layout.NewResolver(o.registry)
	res := persist.Recover(doc, resolver)
	observability.Storage().OnRecover(ctx, res.Mode.String(), len(res.Issues))
	if res.Mode != persist.ModeClean && doc != nil {
		o.logger.Warn("dashboard recovered", "mode", res.Mode, "changes", len(res.Report))
		for _, line := range res.Report {
			o.logger.Debug(line)
		}
	}

	s := &Service{
		repo:     repo,
		resolver: resolver,
		logger:   o.logger,
		now:      o.now,
		recovery: res,
		store: store.New(
			store.WithRegistry(o.registry),
			store.WithResolver(resolver),
			store.WithLogger(o.logger),
		),
	}
	s.issues = s.store.LoadDashboard(res.Document.Seed())

	// Persist repairs so the next load is clean. Without autosave the
	// repository is only written by an explicit Save.
	if o.autosave && doc != nil && res.Mode != persist.ModeClean {
		if err := s.Save(ctx); err != nil {
			s.logger.Warn("could not save recovered dashboard", "err", err)
		}
	}

	if o.autosave {
		s.unsubscribe = s.store.Subscribe(s.autosave)
	}
	return s, nil
}

// Store returns the live store.
func (s *Service) Store() *store.Store { return s.store }

// Recovery returns how the loaded document was made usable.
func (s *Service) Recovery() persist.RecoveryResult { return s.recovery }

// Issues returns the repairs made while seeding the Store.
func (s *Service) Issues() []layout.Issue { return s.issues }

// LastSaveError returns the error of the most recent save, or nil.
func (s *Service) LastSaveError() error { return s.lastSaveErr }

// Document returns the current state as a persistable document.
func (s *Service) Document() *persist.Document {
	return persist.FromSnapshot(s.store.Snapshot(), s.now())
}

// Save writes the current state to the repository.
func (s *Service) Save(ctx context.Context) error {
	err := s.repo.Save(ctx, s.Document())
	s.lastSaveErr = err
	return err
}

// Import replaces the dashboard with d after recovering it, then saves.
func (s *Service) Import(ctx context.Context, d *persist.Document) (persist.RecoveryResult, error) {
	res := persist.Recover(d, s.resolver)
	s.withoutAutosave(func() {
		s.issues = s.store.LoadDashboard(res.Document.Seed())
	})
	s.recovery = res
	return res, s.Save(ctx)
}

// Reset replaces the dashboard with an empty one on cfg and saves it.
func (s *Service) Reset(ctx context.Context, cfg grid.Config) error {
	if !cfg.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid grid %s", cfg)
	}
	s.withoutAutosave(func() {
		s.issues = s.store.LoadDashboard(&store.Seed{Grid: cfg})
	})
	s.logger.Info("dashboard reset", "grid", cfg)
	return s.Save(ctx)
}

// Close stops autosave and releases the repository.
func (s *Service) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	return s.repo.Close()
}

func (s *Service) autosave(snap store.Snapshot) {
	if s.paused {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	err := s.repo.Save(ctx, persist.FromSnapshot(snap, s.now()))
	s.lastSaveErr = err
	if err != nil {
		s.logger.Error("autosave failed", "err", err)
	}
}

func (s *Service) withoutAutosave(fn func()) {
	s.paused = true
	defer func() { s.paused = false }()
	fn()
}
