// Package loader reads keyrc's own options: the mapping modes and
// application commands the parser accepts, the include directory, the log
// level and the settings set commands may assign.
//
// Options come from a TOML or YAML file, chosen by extension, overlaid by
// KEYRC_* environment variables. The FileSystem abstraction defined here
// is also what the rc parser opens include files through.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader is the interface for option sources.
type Loader interface {
	// Load reads the source and returns a map of option keys.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// ReaderLoader is the interface for loaders that read from io.Reader.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems such as
// testing/fstest.MapFS.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ErrUnsupportedFormat indicates an options file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported options format")

// Option keys shared by the file formats and the environment mapping.
const (
	KeyMappingModes        = "mapping_modes"
	KeyApplicationCommands = "application_commands"
	KeyIncludePath         = "include_path"
	KeyLogLevel            = "log_level"
)

// Options configures the rc parser and the command line tool.
type Options struct {
	MappingModes        []string
	ApplicationCommands []string
	IncludePath         string
	LogLevel            string

	// Settings declares the settings set commands may assign.
	Settings []SettingDecl
}

// Defaults returns the options used when nothing else is configured:
// the normal, insert and command modes of a modal editor.
func Defaults() Options {
	return Options{
		MappingModes: []string{"n", "i", "c"},
		LogLevel:     "info",
	}
}

// toMap converts o to the map form loaders produce.
func (o Options) toMap() map[string]any {
	return map[string]any{
		KeyMappingModes:        toAnySlice(o.MappingModes),
		KeyApplicationCommands: toAnySlice(o.ApplicationCommands),
		KeyIncludePath:         o.IncludePath,
		KeyLogLevel:            o.LogLevel,
	}
}

// FromMap builds Options from a loader map. Unknown keys are ignored.
func FromMap(m map[string]any) (Options, error) {
	var o Options
	var err error
	if o.MappingModes, err = stringList(m, KeyMappingModes); err != nil {
		return Options{}, err
	}
	if o.ApplicationCommands, err = stringList(m, KeyApplicationCommands); err != nil {
		return Options{}, err
	}
	if o.IncludePath, err = stringValue(m, KeyIncludePath); err != nil {
		return Options{}, err
	}
	if o.LogLevel, err = stringValue(m, KeyLogLevel); err != nil {
		return Options{}, err
	}
	if o.Settings, err = settingDecls(m); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Load reads options from path, falling back to Defaults for anything the
// file does not set, then applies KEYRC_* environment overrides.
// A missing file is not an error. An empty path skips the file.
func Load(fsys FileSystem, path string) (Options, error) {
	merged := Defaults().toMap()

	if path != "" {
		l, err := ForPath(fsys, path)
		if err != nil {
			return Options{}, err
		}
		data, err := l.Load()
		if err != nil {
			return Options{}, err
		}
		merged = DeepMerge(merged, data)
	}

	env, err := NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return Options{}, err
	}
	merged = DeepMerge(merged, env)

	opts, err := FromMap(merged)
	if err != nil {
		return Options{}, fmt.Errorf("options %s: %w", path, err)
	}
	if opts.IncludePath != "" && path != "" && !filepath.IsAbs(opts.IncludePath) {
		opts.IncludePath = filepath.Join(filepath.Dir(path), opts.IncludePath)
	}
	return opts, nil
}

// ForPath returns the loader for path's extension.
func ForPath(fsys FileSystem, path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func toAnySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// stringList reads key as a list of strings. A single string is split on
// commas, which is how list values arrive from the environment.
func stringList(m map[string]any, key string) ([]string, error) {
	switch v := m[key].(type) {
	case nil:
		return nil, nil
	case string:
		return splitList(v), nil
	case []string:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Key: key, Want: "string list", Got: item}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &TypeError{Key: key, Want: "string list", Got: v}
	}
}

func stringValue(m map[string]any, key string) (string, error) {
	switch v := m[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", &TypeError{Key: key, Want: "string", Got: v}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// TypeError is an option whose value has the wrong type.
type TypeError struct {
	Key  string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("option %s: expected %s, got %T", e.Key, e.Want, e.Got)
}

// ParseError represents an error while parsing an options file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
