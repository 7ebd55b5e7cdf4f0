package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
)

// IncludeKey names the option that pulls in other options files. Its
// value is a path or a list of paths relative to the including file.
const IncludeKey = "include"

// MaxIncludeDepth limits nested options includes.
const MaxIncludeDepth = 8

// ErrIncludeDepthExceeded indicates too many nested options includes.
var ErrIncludeDepthExceeded = errors.New("include depth exceeded")

// decodeFunc parses one file format into a map.
type decodeFunc func(source string, data []byte) (map[string]any, error)

// fileLoader holds what the TOML and YAML loaders share: reading through a
// FileSystem and following include keys.
type fileLoader struct {
	fs     FileSystem
	path   string
	decode decodeFunc
}

// Load reads options from the configured path and its includes.
func (l *fileLoader) Load() (map[string]any, error) {
	return l.LoadWithIncludes(l.path, MaxIncludeDepth)
}

// LoadFrom reads a single file without following includes.
func (l *fileLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading options file %s: %w", path, err)
	}
	return l.decode(path, data)
}

// LoadFromReader reads options from an io.Reader.
func (l *fileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	return l.decode("<reader>", data)
}

// LoadWithIncludes loads path and merges the files named by its include
// key underneath it. maxDepth limits nesting.
func (l *fileLoader) LoadWithIncludes(path string, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}

	config, err := l.LoadFrom(path)
	if err != nil || config == nil {
		return config, err
	}

	includes, ok := config[IncludeKey]
	if !ok {
		return config, nil
	}
	delete(config, IncludeKey)

	list, err := stringList(map[string]any{IncludeKey: includes}, IncludeKey)
	if err != nil {
		return nil, err
	}

	// Included files are lower priority than the including file.
	baseDir := filepath.Dir(path)
	for _, inc := range list {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(baseDir, inc)
		}
		incConfig, err := l.LoadWithIncludes(incPath, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		config = DeepMerge(incConfig, config)
	}
	return config, nil
}
