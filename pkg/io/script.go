package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/layout"
)

// Format is the encoding of an operation script.
type Format string

// Supported script formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown script format %q (want json or yaml)", s)
	}
}

// ReadOperations decodes a script of tagged operations from r.
func ReadOperations(r io.Reader, format Format) ([]layout.Operation, error) {
	switch format {
	case FormatJSON, "":
		var raw []json.RawMessage
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode script")
		}
		ops := make([]layout.Operation, 0, len(raw))
		for i, entry := range raw {
			op, err := layout.DecodeOperation(entry)
			if err != nil {
				return nil, fmt.Errorf("operation %d: %w", i+1, err)
			}
			ops = append(ops, op)
		}
		return ops, nil

	case FormatYAML:
		var raw []any
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			if err == io.EOF {
				return []layout.Operation{}, nil
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode script")
		}
		ops := make([]layout.Operation, 0, len(raw))
		for i, entry := range raw {
			op, err := layout.OperationFromValue(entry)
			if err != nil {
				return nil, fmt.Errorf("operation %d: %w", i+1, err)
			}
			ops = append(ops, op)
		}
		return ops, nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown script format %q", format)
	}
}

// ImportOperations reads a script from the file at path, choosing the
// format from its extension.
func ImportOperations(path string) ([]layout.Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadOperations(f, FormatFromPath(path))
}

// WriteOperations encodes ops as a JSON script.
func WriteOperations(ops []layout.Operation, w io.Writer) error {
	raw := make([]json.RawMessage, 0, len(ops))
	for i, op := range ops {
		data, err := layout.EncodeOperation(op)
		if err != nil {
			return fmt.Errorf("operation %d: %w", i+1, err)
		}
		raw = append(raw, data)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
