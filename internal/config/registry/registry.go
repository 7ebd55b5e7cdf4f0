package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/keyrc/internal/rc"
)

// Errors returned by the registry.
var (
	// ErrSettingAlreadyRegistered indicates a second declaration of a name.
	ErrSettingAlreadyRegistered = errors.New("setting already registered")

	// ErrInvalidSetting indicates a declaration that cannot be registered.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrOutOfRange indicates a numeric value outside a setting's range.
	ErrOutOfRange = errors.New("value out of range")
)

// Setter is a value already validated against its setting.
type Setter struct {
	Name  string
	Value rc.Value
}

// Registry maintains setting declarations and their current values.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	settings  map[string]*Setting
	values    map[string]rc.Value
	observers []func(Setter)
}

var _ rc.Settings[Setter] = (*Registry)(nil)

// New creates an empty settings registry.
func New() *Registry {
	return &Registry{
		settings: make(map[string]*Setting),
		values:   make(map[string]rc.Value),
	}
}

// Register adds a setting declaration to the registry.
// A zero Default becomes the zero value of the setting's kind, or its
// first choice.
func (r *Registry) Register(setting Setting) error {
	if setting.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSetting)
	}
	if err := setting.normalize(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[setting.Name]; exists {
		return fmt.Errorf("%w: %s", ErrSettingAlreadyRegistered, setting.Name)
	}

	s := setting
	r.settings[setting.Name] = &s
	return nil
}

// MustRegister registers a setting and panics on error.
func (r *Registry) MustRegister(setting Setting) {
	if err := r.Register(setting); err != nil {
		panic(err)
	}
}

// Lookup returns a copy of the declaration of name.
func (r *Registry) Lookup(name string) (Setting, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.settings[name]
	if !ok {
		return Setting{}, false
	}
	return *s, true
}

// Has checks if a setting is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.settings[name]
	return exists
}

// All returns all declarations sorted by name.
func (r *Registry) All() []Setting {
	return r.filter(func(*Setting) bool { return true })
}

// Search finds settings whose name, description or tags contain query.
func (r *Registry) Search(query string) []Setting {
	query = strings.ToLower(query)
	return r.filter(func(s *Setting) bool {
		if strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.Description), query) {
			return true
		}
		for _, tag := range s.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				return true
			}
		}
		return false
	})
}

// ByTag returns all settings with the given tag.
func (r *Registry) ByTag(tag string) []Setting {
	return r.filter(func(s *Setting) bool {
		for _, t := range s.Tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

// Deprecated returns all deprecated settings.
func (r *Registry) Deprecated() []Setting {
	return r.filter(func(s *Setting) bool { return s.Deprecated })
}

func (r *Registry) filter(keep func(*Setting) bool) []Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Setting
	for _, s := range r.settings {
		if keep(s) {
			result = append(result, *s)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Get implements rc.Settings. It returns the value set for name, or its
// default when nothing was set.
func (r *Registry) Get(name string) (rc.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if v, ok := r.values[name]; ok {
		return v, true
	}
	if s, ok := r.settings[name]; ok {
		return s.Default, true
	}
	return rc.Value{}, false
}

// ToVariant implements rc.Settings.
func (r *Registry) ToVariant(name string, value rc.Value) (Setter, error) {
	r.mu.RLock()
	s, ok := r.settings[name]
	r.mu.RUnlock()

	if !ok {
		return Setter{}, &rc.UnknownSettingError{Name: name}
	}
	if err := s.Validate(value); err != nil {
		return Setter{}, err
	}
	return Setter{Name: name, Value: value}, nil
}

// SetValue implements rc.Settings. Observers are called after the value
// is stored.
func (r *Registry) SetValue(v Setter) {
	r.mu.Lock()
	r.values[v.Name] = v.Value
	observers := make([]func(Setter), len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}

// Set validates value and stores it under name.
func (r *Registry) Set(name string, value rc.Value) error {
	return rc.Apply[Setter](r, rc.SetCommand{Name: name, Value: value})
}

// Apply applies every set command of result and returns the rejected ones.
func (r *Registry) Apply(result *rc.Result) []error {
	return rc.ApplyAll[Setter](r, result)
}

// Reset drops the value set for name so Get reports the default again.
func (r *Registry) Reset(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, name)
}

// OnChange registers fn to be called for every stored value.
func (r *Registry) OnChange(fn func(Setter)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Values returns the values set so far, without defaults.
func (r *Registry) Values() map[string]rc.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]rc.Value, len(r.values))
	for name, v := range r.values {
		result[name] = v
	}
	return result
}

// Defaults returns a map of all default values.
func (r *Registry) Defaults() map[string]rc.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]rc.Value, len(r.settings))
	for name, s := range r.settings {
		result[name] = s.Default
	}
	return result
}
