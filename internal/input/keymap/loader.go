package keymap

import (
	"io"

	"github.com/dshills/keyrc/internal/rc"
)

// Load parses the config file at path with p and builds a registry from
// its map and unmap commands. Bindings record path as their source.
// The returned errors are commands that parsed but could not be applied,
// such as an unmap of a sequence nothing maps.
func Load[T any](p *rc.Parser[T], path string) (*Registry, *rc.Result, []error) {
	reg := NewRegistry()
	result := p.ParseFile(path)
	return reg, result, reg.applyFrom(result, path)
}

// LoadReader is like Load for config text that does not come from a file.
func LoadReader[T any](p *rc.Parser[T], r io.Reader) (*Registry, *rc.Result, []error) {
	reg := NewRegistry()
	result := p.Parse(r)
	return reg, result, reg.applyFrom(result, "")
}

func (r *Registry) applyFrom(result *rc.Result, source string) []error {
	var errs []error
	for _, cmd := range result.Commands {
		var err error
		switch c := cmd.(type) {
		case rc.MapCommand:
			err = r.Bind(NewBinding(c).WithSource(source))
		case rc.UnmapCommand:
			err = r.Unbind(c.Mode, c.Keys)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
