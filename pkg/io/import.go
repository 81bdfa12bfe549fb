package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/deskgrid/pkg/persist"
)

// ReadJSON decodes a dashboard document from r. Documents of any version
// are accepted; nothing is migrated or validated. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*persist.Document, error) {
	var d persist.Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}

// ImportJSON reads a dashboard document from the file at path.
func ImportJSON(path string) (*persist.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
