package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keyrc/internal/input/key"
	"github.com/dshills/keyrc/internal/rc"
)

// Errors returned by the registry.
var (
	// ErrEmptySequence indicates a binding without keys.
	ErrEmptySequence = errors.New("empty key sequence")

	// ErrNotBound indicates an unmap of a sequence that has no binding.
	ErrNotBound = errors.New("no such mapping")

	// ErrInvalidKey indicates a key that has no chord form, such as a
	// character key holding '<' or a space.
	ErrInvalidKey = errors.New("invalid key")
)

// Registry manages the bindings of every mode.
// It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// modes holds one prefix tree per mapping mode.
	modes map[string]*PrefixTree
}

// NewRegistry creates a new, empty binding registry.
func NewRegistry() *Registry {
	return &Registry{
		modes: make(map[string]*PrefixTree),
	}
}

// Bind adds a binding, replacing any binding of the same keys in its mode.
// Every key must be writable in chord syntax, see key.Key.Valid.
func (r *Registry) Bind(b Binding) error {
	if len(b.Keys) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptySequence, b.Action)
	}
	for _, k := range b.Keys {
		if !k.Valid() {
			return fmt.Errorf("%w: %#v", ErrInvalidKey, k)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tree, ok := r.modes[b.Mode]
	if !ok {
		tree = NewPrefixTree()
		r.modes[b.Mode] = tree
	}
	tree.Insert(b)
	return nil
}

// Unbind removes the binding of keys in mode.
func (r *Registry) Unbind(mode string, keys key.Sequence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tree, ok := r.modes[mode]
	if !ok || !tree.Remove(keys) {
		return fmt.Errorf("%w: %s in mode %q", ErrNotBound, keys, mode)
	}
	if tree.Len() == 0 {
		delete(r.modes, mode)
	}
	return nil
}

// Apply updates the registry from one parsed command. Map commands bind,
// unmap commands unbind, other commands are ignored.
func (r *Registry) Apply(cmd rc.Command) error {
	switch c := cmd.(type) {
	case rc.MapCommand:
		return r.Bind(NewBinding(c))
	case rc.UnmapCommand:
		return r.Unbind(c.Mode, c.Keys)
	default:
		return nil
	}
}

// ApplyResult applies every command of result in order and returns the
// errors of those that could not be applied.
func (r *Registry) ApplyResult(result *rc.Result) []error {
	var errs []error
	for _, cmd := range result.Commands {
		if err := r.Apply(cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Lookup finds the binding of keys in mode, falling back to the global
// bindings.
func (r *Registry) Lookup(mode string, keys key.Sequence) (Binding, bool) {
	if len(keys) == 0 {
		return Binding{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range lookupModes(mode) {
		if tree, ok := r.modes[m]; ok {
			if b, ok := tree.Lookup(keys); ok {
				return b, true
			}
		}
	}
	return Binding{}, false
}

// HasPrefix checks if any binding of mode, or any global binding, starts
// with keys and is longer than it.
func (r *Registry) HasPrefix(mode string, keys key.Sequence) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range lookupModes(mode) {
		if tree, ok := r.modes[m]; ok && tree.HasPrefix(keys) {
			return true
		}
	}
	return false
}

// Bindings returns the bindings of mode sorted by their key sequence.
// Global bindings are not included.
func (r *Registry) Bindings(mode string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tree, ok := r.modes[mode]
	if !ok {
		return nil
	}
	result := tree.All()
	sort.Slice(result, func(i, j int) bool {
		return result[i].Keys.String() < result[j].Keys.String()
	})
	return result
}

// Modes returns the modes that hold at least one binding, sorted.
func (r *Registry) Modes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.modes))
	for mode := range r.modes {
		result = append(result, mode)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of bindings across all modes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, tree := range r.modes {
		n += tree.Len()
	}
	return n
}

// Clear removes every binding of mode.
func (r *Registry) Clear(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modes, mode)
}

func lookupModes(mode string) []string {
	if mode == "" {
		return []string{""}
	}
	return []string{mode, ""}
}

// PrefixTree provides prefix-based binding lookup for one mode.
type PrefixTree struct {
	root *prefixNode
	size int
}

type prefixNode struct {
	children map[key.Key]*prefixNode
	binding  *Binding
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Key]*prefixNode)}
}

// NewPrefixTree creates a new prefix tree.
func NewPrefixTree() *PrefixTree {
	return &PrefixTree{root: newPrefixNode()}
}

// Insert adds a binding, replacing the one at the same sequence.
func (t *PrefixTree) Insert(b Binding) {
	node := t.root
	for _, k := range b.Keys {
		child, ok := node.children[k]
		if !ok {
			child = newPrefixNode()
			node.children[k] = child
		}
		node = child
	}

	if node.binding == nil {
		t.size++
	}
	node.binding = &b
}

// Remove deletes the binding at seq and reports whether there was one.
func (t *PrefixTree) Remove(seq key.Sequence) bool {
	if len(seq) == 0 {
		return false
	}

	// Track path for pruning
	path := make([]*prefixNode, 0, len(seq)+1)
	path = append(path, t.root)

	node := t.root
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			return false
		}
		path = append(path, child)
		node = child
	}

	if node.binding == nil {
		return false
	}
	node.binding = nil
	t.size--

	// Prune empty nodes from leaf to root
	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if current.binding != nil || len(current.children) > 0 {
			break
		}
		delete(path[i-1].children, seq[i-1])
	}
	return true
}

// Lookup finds the exact binding of seq.
func (t *PrefixTree) Lookup(seq key.Sequence) (Binding, bool) {
	node := t.find(seq)
	if node == nil || node.binding == nil {
		return Binding{}, false
	}
	return *node.binding, true
}

// HasPrefix checks if a binding longer than seq starts with it.
func (t *PrefixTree) HasPrefix(seq key.Sequence) bool {
	node := t.find(seq)
	return node != nil && len(node.children) > 0
}

// All returns every binding in the tree.
func (t *PrefixTree) All() []Binding {
	result := make([]Binding, 0, t.size)
	var walk func(*prefixNode)
	walk = func(n *prefixNode) {
		if n.binding != nil {
			result = append(result, *n.binding)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(t.root)
	return result
}

// Len returns the number of bindings in the tree.
func (t *PrefixTree) Len() int {
	return t.size
}

func (t *PrefixTree) find(seq key.Sequence) *prefixNode {
	node := t.root
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}
