// Package matrix loads test case definitions from YAML files.
package matrix

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"

	"github.com/darmiel/gatecheck/internal/core"
)

// Pattern selects matrix files directly inside a directory.
const Pattern = "*.{yaml,yml}"

// Load reads matrices from a single YAML file or from every YAML file
// directly inside a directory, in filename order.
// Any failure aborts the whole load; partial results are never returned.
func Load(path string) ([]core.Matrix, error) {
	path = expandHome(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat matrices path '%s': %w", path, err)
	}

	if !info.IsDir() {
		if !IsMatrixFile(path) {
			return nil, &FormatError{Path: path, Reason: "matrix file must be .yaml or .yml"}
		}
		m, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []core.Matrix{*m}, nil
	}

	files, err := Discover(path)
	if err != nil {
		return nil, err
	}

	matrices := make([]core.Matrix, 0, len(files))
	for _, file := range files {
		m, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		matrices = append(matrices, *m)
	}
	return matrices, nil
}

// Discover returns the matrix files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	names, err := doublestar.Glob(os.DirFS(dir), Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing matrices in '%s': %w", dir, err)
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		// hidden files are skipped, like a shell glob would
		if strings.HasPrefix(name, ".") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// LoadFile parses a single matrix file. The document must be a mapping;
// an empty document is treated as an empty mapping.
func LoadFile(path string) (*core.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matrix file '%s': %w", path, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Path: path, Reason: "invalid YAML", Err: err}
	}

	doc, ok := asMapping(raw)
	if !ok {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("matrix YAML must be a mapping, got %T", raw)}
	}

	m, err := decode(doc)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "decoding matrix", Err: err}
	}
	m.Source = path
	return m, nil
}

// IsMatrixFile reports whether path has a YAML extension.
func IsMatrixFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func decode(doc map[string]any) (*core.Matrix, error) {
	var m core.Matrix
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(doc); err != nil {
		return nil, err
	}
	if m.ID == "" {
		m.ID = core.UnknownMatrixID
	}
	return &m, nil
}

func asMapping(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
