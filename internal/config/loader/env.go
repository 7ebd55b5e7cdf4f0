package loader

import (
	"os"
	"strings"
)

// EnvPrefix is the prefix of the environment variables keyrc reads.
const EnvPrefix = "KEYRC_"

// EnvLoader loads options from environment variables.
// List options are given as comma-separated values.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYRC_")
	mapping map[string]string // Env var -> option key
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYRC_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

// defaultEnvMapping returns the names that do not follow the
// prefix-plus-upper-cased-key rule.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "MODES":        KeyMappingModes,
		prefix + "APP_COMMANDS": KeyApplicationCommands,
	}
}

// Load reads environment variables and returns an options map.
// Empty values are kept, so KEYRC_MODES= clears the mapping modes.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, key := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			config[key] = val
		}
	}

	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		config[l.envToKey(name)] = value
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, key string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = key
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// envToKey converts KEYRC_INCLUDE_PATH to include_path.
func (l *EnvLoader) envToKey(env string) string {
	return strings.ToLower(strings.TrimPrefix(env, l.prefix))
}
