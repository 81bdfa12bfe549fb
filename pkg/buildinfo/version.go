// Package buildinfo reports the build version and the dashboard document
// format this build reads and writes.
//
// Version, Commit and Date are set with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/deskgrid/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/deskgrid/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/deskgrid/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"

	"github.com/matzehuels/deskgrid/pkg/persist"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the build description served by the HTTP API.
type Info struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	Date            string `json:"date"`
	DocumentVersion int    `json:"documentVersion"`
	MinDocument     int    `json:"minDocumentVersion"`
}

// Get returns the current build description.
func Get() Info {
	return Info{
		Version:         Version,
		Commit:          Commit,
		Date:            Date,
		DocumentVersion: persist.CurrentVersion,
		MinDocument:     persist.MinSupportedVersion,
	}
}

// String returns the formatted build information.
func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ndashboard format: v%d (reads v%d and later)",
		i.Version, i.Commit, i.Date, i.DocumentVersion, i.MinDocument)
}

// Template returns the version template string for cobra.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
