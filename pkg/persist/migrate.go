package persist

import (
	"fmt"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
)

// MinSupportedVersion is the oldest document version that still migrates.
const MinSupportedVersion = 0

// Compatibility classifies a stored version against CurrentVersion.
type Compatibility int

const (
	// Current documents need no migration.
	Current Compatibility = iota
	// Migratable documents are one or two versions behind.
	Migratable
	// Risky documents are three to five versions behind; migration may
	// drop data.
	Risky
	// Future documents come from a newer build and load best effort.
	Future
	// Incompatible documents are too old to migrate.
	Incompatible
)

func (c Compatibility) String() string {
	switch c {
	case Current:
		return "current"
	case Migratable:
		return "migratable"
	case Risky:
		return "risky"
	case Future:
		return "future"
	default:
		return "incompatible"
	}
}

// CheckCompatibility classifies version.
func CheckCompatibility(version int) Compatibility {
	if version > CurrentVersion {
		return Future
	}
	if version < MinSupportedVersion {
		return Incompatible
	}
	switch diff := CurrentVersion - version; {
	case diff == 0:
		return Current
	case diff <= 2:
		return Migratable
	case diff <= 5:
		return Risky
	default:
		return Incompatible
	}
}

// CompatibilityMessage describes version for logs and CLI output.
func CompatibilityMessage(version int) string {
	switch CheckCompatibility(version) {
	case Current:
		return fmt.Sprintf("dashboard version %d is current", version)
	case Migratable:
		return fmt.Sprintf("dashboard version %d migrates to v%d", version, CurrentVersion)
	case Risky:
		return fmt.Sprintf("dashboard version %d is %d versions old; migration may lose data", version, CurrentVersion-version)
	case Future:
		return fmt.Sprintf("dashboard version %d is newer than v%d; loading best effort", version, CurrentVersion)
	default:
		return fmt.Sprintf("dashboard version %d is too old to migrate (current v%d)", version, CurrentVersion)
	}
}

// migration upgrades a document from version N to N+1 in place.
type migration func(*Document) error

// migrations is indexed by source version.
var migrations = map[int]migration{
	0: migrateV0,
}

// migrateV0 lifts the nested layout block of unversioned documents.
func migrateV0(d *Document) error {
	if d.Layout != nil {
		if !d.Grid.Valid() {
			d.Grid = d.Layout.Grid
		}
		if len(d.Widgets) == 0 {
			d.Widgets = d.Layout.Widgets
		}
		d.Layout = nil
	}
	if !d.Grid.Valid() {
		d.Grid = grid.Default()
	}
	if d.Widgets == nil {
		d.Widgets = []layout.Widget{}
	}
	return nil
}

// Migrate returns a copy of d upgraded to CurrentVersion, and the versions
// it passed through. Future documents are returned unchanged apart from the
// copy; incompatible ones fail with INCOMPATIBLE_VERSION.
func Migrate(d *Document) (*Document, []int, error) {
	if d == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	out := d.Clone()

	switch CheckCompatibility(out.Version) {
	case Current, Future:
		return out, nil, nil
	case Incompatible:
		return nil, nil, errors.New(errors.ErrCodeIncompatible, "%s", CompatibilityMessage(out.Version))
	}

	var steps []int
	for out.Version < CurrentVersion {
		step, ok := migrations[out.Version]
		if !ok {
			return nil, steps, errors.New(errors.ErrCodeIncompatible, "no migration from version %d", out.Version)
		}
		if err := step(out); err != nil {
			return nil, steps, errors.Wrap(errors.ErrCodeIncompatible, err, "migrate version %d", out.Version)
		}
		steps = append(steps, out.Version)
		out.Version++
	}
	return out, steps, nil
}
