// Package keymap holds the key bindings produced by map and unmap
// commands.
//
// A Registry keeps one prefix tree per mode. Map commands add or replace a
// binding, unmap commands remove one, and Lookup and HasPrefix answer the
// two questions an input loop asks after every key: is this sequence bound,
// and could more keys still complete a binding.
//
// Bindings registered under the empty mode are global and apply to every
// mode unless the mode binds the same sequence itself.
//
// # Usage
//
//	p := rc.NewWithConfig[Cmd](factory, rc.Config{MappingModes: []string{"n", "i"}})
//	reg, result := keymap.Load(p, "keys.rc")
//
//	seq, _ := key.ParseSequence("gg")
//	if b, ok := reg.Lookup("n", seq); ok {
//	    // Run b.Action
//	}
//	if reg.HasPrefix("n", partial) {
//	    // Wait for more keys
//	}
package keymap
