package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension: .yaml/.yml is YAML,
// everything else is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseError reports that a file's content is not well-formed in the format
// its extension indicates. It is raised only by the loader; the transforms
// never produce it.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Decode parses data in the given format.
func Decode(data []byte, format Format) (Node, error) {
	if format == FormatYAML {
		return DecodeYAML(data)
	}
	return DecodeJSON(data)
}

// Encode serializes n in the given format.
func Encode(n Node, format Format) ([]byte, error) {
	if format == FormatYAML {
		return EncodeYAML(n)
	}
	return EncodeJSON(n)
}

// Load reads and parses the document at path, choosing the format from the
// file extension. Malformed content yields a *ParseError.
func Load(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	format := FormatForPath(path)
	n, err := Decode(data, format)
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}
	return n, nil
}

// Write serializes n to path, choosing the format from the file extension.
// Mapping keys are written in insertion order, never re-sorted.
func Write(path string, n Node) error {
	data, err := Encode(n, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
