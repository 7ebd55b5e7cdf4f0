package rc

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
)

// includeCommand parses "include <path>" and the file it names.
func (p *Parser[T]) includeCommand(rest segment) *Result {
	result := &Result{}

	w := FirstWord(rest.text)
	if err := endOfLine(rest.after(w)); err != nil {
		result.fail(err)
		return result
	}

	path := w.Text
	if !filepath.IsAbs(path) && p.includePath != "" {
		path = filepath.Join(p.includePath, path)
	}
	result.Merge(p.includeFile(path, w.Text, rest.at(w)))
	return result
}

// includeFile parses the file at path. word and pos locate the include
// command that named it.
func (p *Parser[T]) includeFile(path, word string, pos Position) *Result {
	result := &Result{}
	log := p.logger.WithField("file", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	if len(p.including) >= MaxIncludeDepth {
		log.Warn("include depth %d exceeded", MaxIncludeDepth)
		result.fail(&Error{
			Type:       IncludeCycle,
			Pos:        pos,
			Unexpected: word,
			Expected:   fmt.Sprintf("include depth <= %d", MaxIncludeDepth),
			Err:        ErrIncludeDepthExceeded,
		})
		return result
	}
	if slices.Contains(p.including, abs) {
		log.Warn("include cycle")
		result.fail(&Error{
			Type:       IncludeCycle,
			Pos:        pos,
			Unexpected: word,
			Expected:   expectNonRecursive,
			Err:        ErrIncludeCycle,
		})
		return result
	}

	f, err := p.fs.Open(path)
	if err != nil {
		log.Warn("cannot open include: %v", err)
		result.fail(&Error{Type: Include, Pos: pos, Unexpected: word, Err: err})
		return result
	}
	defer f.Close()

	log.Debug("including at depth %d", len(p.including)+1)
	sub := p.parseNested(f, abs)
	for _, e := range sub.Errors {
		if e.File == "" {
			e.File = path
		}
	}
	result.Merge(sub)
	return result
}

// ParseFile parses the file at path. Include paths are resolved against
// the include path, or the directory of path when none was set.
func (p *Parser[T]) ParseFile(path string) *Result {
	if p.includePath == "" {
		p.includePath = filepath.Dir(path)
		defer func() { p.includePath = "" }()
	}

	f, err := p.fs.Open(path)
	if err != nil {
		p.logger.WithField("file", path).Warn("cannot open: %v", err)
		return &Result{Errors: []*Error{{Type: Include, Pos: Start(), Unexpected: path, Err: err}}}
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return p.parseNested(f, abs)
}

// parseNested parses r with abs pushed on the include stack.
func (p *Parser[T]) parseNested(r io.Reader, abs string) *Result {
	p.including = append(p.including, abs)
	defer func() { p.including = p.including[:len(p.including)-1] }()

	result := p.parse(r)
	result.Files = append([]string{abs}, result.Files...)
	return result
}
