// Package persist stores dashboards: versioned documents, migrations between
// document versions, recovery of damaged documents, and repositories backed
// by a [cache.Cache] or MongoDB.
//
// Loading never trusts stored data. The usual sequence is:
//
//	doc, err := repo.Load(ctx)       // nil, nil on first run
//	res := persist.Recover(doc, resolver)
//	s.LoadDashboard(res.Document.Seed())
//
// [Recover] never fails; the worst case is [ModeReset] with a default
// dashboard.
package persist

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/store"
)

// CurrentVersion is the document version written by this build.
const CurrentVersion = 1

// Document is the persisted form of one dashboard.
type Document struct {
	Version   int             `json:"version" bson:"version"`
	Grid      grid.Config     `json:"grid" bson:"grid"`
	Widgets   []layout.Widget `json:"widgets" bson:"widgets"`
	DebugGrid bool            `json:"debugGrid,omitempty" bson:"debugGrid"`
	SavedAt   time.Time       `json:"savedAt,omitempty" bson:"savedAt"`

	// Layout holds the grid and widgets of unversioned (v0) documents,
	// which nested them under "layout". Migration moves them up.
	Layout *LegacyLayout `json:"layout,omitempty" bson:"layout,omitempty"`
}

// LegacyLayout is the nested layout block of v0 documents.
type LegacyLayout struct {
	Grid    grid.Config     `json:"grid" bson:"grid"`
	Widgets []layout.Widget `json:"widgets" bson:"widgets"`
}

// NewDocument returns an empty current-version document on cfg.
func NewDocument(cfg grid.Config) *Document {
	return &Document{Version: CurrentVersion, Grid: cfg, Widgets: []layout.Widget{}}
}

// FromSnapshot captures store state as a current-version document.
func FromSnapshot(snap store.Snapshot, savedAt time.Time) *Document {
	return &Document{
		Version:   CurrentVersion,
		Grid:      snap.Grid,
		Widgets:   layout.CloneAll(snap.Widgets),
		DebugGrid: snap.DebugGrid,
		SavedAt:   savedAt.UTC(),
	}
}

// Seed converts the document into the input of store.LoadDashboard.
func (d *Document) Seed() *store.Seed {
	if d == nil {
		return nil
	}
	return &store.Seed{
		Grid:      d.Grid,
		Widgets:   layout.CloneAll(d.Widgets),
		DebugGrid: d.DebugGrid,
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Widgets = layout.CloneAll(d.Widgets)
	if d.Layout != nil {
		l := *d.Layout
		l.Widgets = layout.CloneAll(d.Layout.Widgets)
		out.Layout = &l
	}
	return &out
}

// Marshal encodes d as indented JSON.
func Marshal(d *Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode dashboard")
	}
	return data, nil
}

// Unmarshal decodes a JSON document of any version. It does not migrate.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dashboard")
	}
	return &d, nil
}
