package persist

import (
	"fmt"

	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
)

// Grid limits applied to stored documents.
const (
	MinColumns = 6
	MaxColumns = 100
	MinRows    = 4
	MaxRows    = 100
)

// RecoveryMode says how a loaded document was made usable.
type RecoveryMode int

const (
	// ModeClean documents loaded without changes.
	ModeClean RecoveryMode = iota
	// ModeSanitized documents were repaired without losing widgets.
	ModeSanitized
	// ModePartial documents lost at least one widget.
	ModePartial
	// ModeReset documents were unusable and replaced by defaults.
	ModeReset
)

func (m RecoveryMode) String() string {
	switch m {
	case ModeClean:
		return "clean"
	case ModeSanitized:
		return "sanitized"
	case ModePartial:
		return "partial"
	default:
		return "reset"
	}
}

// RecoveryResult is the outcome of Recover. Document is always usable.
type RecoveryResult struct {
	Document *Document
	Mode     RecoveryMode
	Report   []string
	Issues   []layout.Issue
}

// Recover migrates d and re-validates it with r. It never fails: a missing
// or incompatible document becomes a default dashboard in ModeReset.
func Recover(d *Document, r *layout.Resolver) RecoveryResult {
	if r == nil {
		r = layout.NewResolver(nil)
	}
	if d == nil {
		return reset("no stored dashboard")
	}

	var report []string
	if CheckCompatibility(d.Version) != Current {
		report = append(report, CompatibilityMessage(d.Version))
	}
	migrated, steps, err := Migrate(d)
	if err != nil {
		return reset(err.Error())
	}
	for _, v := range steps {
		report = append(report, fmt.Sprintf("migrated v%d to v%d", v, v+1))
	}

	cfg, gridNote := sanitizeGrid(migrated.Grid)
	if gridNote != "" {
		report = append(report, gridNote)
	}
	migrated.Grid = cfg

	widgets, issues := r.Sanitize(cfg, migrated.Widgets)
	migrated.Widgets = widgets
	if migrated.Version > CurrentVersion {
		// Saved back at our version; fields we do not know are gone.
		migrated.Version = CurrentVersion
	}

	mode := ModeClean
	if len(report) > 0 || len(issues) > 0 {
		mode = ModeSanitized
	}
	for _, is := range issues {
		report = append(report, is.String())
		if is.Dropped {
			mode = ModePartial
		}
	}

	return RecoveryResult{Document: migrated, Mode: mode, Report: report, Issues: issues}
}

func reset(reason string) RecoveryResult {
	return RecoveryResult{
		Document: NewDocument(grid.Default()),
		Mode:     ModeReset,
		Report:   []string{reason},
	}
}

// sanitizeGrid replaces an invalid grid with the default and clamps the
// rest into the supported range.
func sanitizeGrid(cfg grid.Config) (grid.Config, string) {
	if !cfg.Valid() {
		return grid.Default(), fmt.Sprintf("invalid grid %s replaced by %s", cfg, grid.Default())
	}
	clamped := grid.Config{
		Columns: grid.Clamp(cfg.Columns, MinColumns, MaxColumns),
		Rows:    grid.Clamp(cfg.Rows, MinRows, MaxRows),
	}
	if clamped != cfg {
		return clamped, fmt.Sprintf("grid %s clamped to %s", cfg, clamped)
	}
	return cfg, ""
}
