package keymap

import (
	"strings"

	"github.com/dshills/keyrc/internal/rc"
)

// DefaultModes are the modes the default bindings use.
var DefaultModes = []string{"n", "i", "c"}

// defaultRC holds the built-in bindings in config file syntax.
const defaultRC = `# Normal mode
nmap h :cursor-left
nmap j :cursor-down
nmap k :cursor-up
nmap l :cursor-right
nmap gg :goto-first-line
nmap G :goto-last-line
nmap i :mode-insert
nmap : :mode-command
nmap <C-o> :back
nmap <C-i> :forward
nmap <C-w>v :split-vertical
nmap <C-w>s :split-horizontal

# Insert mode
imap <Esc> :mode-normal
imap <C-h> :delete-backward
imap <C-w> :delete-word-backward

# Command mode
cmap <Esc> :mode-normal
cmap <Enter> :command-run
cmap <Tab> :complete-next
cmap <S-Tab> :complete-previous
`

// LoadDefaults adds the built-in bindings to r.
func LoadDefaults(r *Registry) error {
	p := rc.NewWithConfig[struct{}](nil, rc.Config{MappingModes: DefaultModes})
	result := p.Parse(strings.NewReader(defaultRC))
	if err := result.Err(); err != nil {
		return err
	}
	for _, cmd := range result.Commands {
		if c, ok := cmd.(rc.MapCommand); ok {
			if err := r.Bind(NewBinding(c).WithSource("default")); err != nil {
				return err
			}
		}
	}
	return nil
}
