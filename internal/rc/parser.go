package rc

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/keyrc/internal/config/loader"
	"github.com/dshills/keyrc/internal/input/key"
	"github.com/dshills/keyrc/internal/logging"
)

// Parser parses keyrc input into commands. T is the host's custom command
// type, built by a CommandFactory.
type Parser[T any] struct {
	factory     CommandFactory[T]
	modes       map[string]struct{}
	appCommands map[string]struct{}
	includePath string
	fs          loader.FileSystem
	logger      *logging.Logger

	// including is the stack of absolute paths currently being parsed.
	including []string
}

// New creates a parser without mapping modes or application commands.
func New[T any](factory CommandFactory[T]) *Parser[T] {
	return NewWithConfig(factory, Config{})
}

// NewWithConfig creates a parser for the vocabulary in cfg.
// factory may be nil, in which case no custom commands are recognised.
func NewWithConfig[T any](factory CommandFactory[T], cfg Config) *Parser[T] {
	p := &Parser[T]{
		factory:     factory,
		modes:       make(map[string]struct{}, len(cfg.MappingModes)),
		appCommands: make(map[string]struct{}, len(cfg.ApplicationCommands)),
		fs:          loader.DefaultFS(),
		logger:      logging.NullLogger,
	}
	for _, m := range cfg.MappingModes {
		p.modes[m] = struct{}{}
	}
	for _, c := range cfg.ApplicationCommands {
		p.appCommands[c] = struct{}{}
	}
	return p
}

// SetIncludePath sets the directory relative include paths are joined to.
func (p *Parser[T]) SetIncludePath(dir string) {
	p.includePath = dir
}

// SetFileSystem sets the file system include files are opened from.
func (p *Parser[T]) SetFileSystem(fsys loader.FileSystem) {
	if fsys == nil {
		fsys = loader.DefaultFS()
	}
	p.fs = fsys
}

// SetLogger sets the logger used for include resolution.
func (p *Parser[T]) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.NullLogger
	}
	p.logger = l.WithComponent("rc")
}

// Parse parses every line of r. Lines that fail add an error to the result
// and parsing continues with the next line.
func (p *Parser[T]) Parse(r io.Reader) *Result {
	return p.parse(r)
}

// ParseLine parses a single line, as typed at a command prompt. A blank or
// comment line is reported as a NoCommand error.
func (p *Parser[T]) ParseLine(line string) *Result {
	return p.parseSingle(line, nil)
}

// ParseLineWithPrefix is ParseLine for a command typed after a numeric
// count. The count is passed to CommandFactory.Create.
func (p *Parser[T]) ParseLineWithPrefix(line string, prefix int) *Result {
	return p.parseSingle(line, &prefix)
}

// parseSingle parses the first line of line. Text on any later line is
// reported as a Parse error rather than joined to the first line.
func (p *Parser[T]) parseSingle(line string, prefix *int) *Result {
	line, extra, _ := strings.Cut(line, "\n")
	result := p.line(strings.TrimSuffix(line, "\r"), 1, prefix)
	if result.Empty() {
		result.fail(newError(NoCommand, Start(), unexpectedNothing, expectCommand))
	}
	if err := trailingText(extra); err != nil {
		result.fail(err)
	}
	return result
}

// trailingText returns an error at the first word of extra, the lines that
// follow the first one, or nil when they are blank.
func trailingText(extra string) *Error {
	pos := Start()
	for _, text := range strings.Split(extra, "\n") {
		pos = pos.Newline()
		seg := segment{text: strings.TrimSuffix(text, "\r"), pos: pos}
		if w, ok := MaybeWord(seg.text); ok {
			return newError(Parse, seg.at(w), w.Text, expectEndOfLine)
		}
	}
	return nil
}

func (p *Parser[T]) parse(r io.Reader) *Result {
	result := &Result{}
	br := bufio.NewReader(r)
	pos := Start()
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			result.Merge(p.line(text, pos.Line, nil))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				result.fail(&Error{Type: Include, Pos: pos, Err: err})
			}
			return result
		}
		pos = pos.Newline()
	}
}

// line parses one line of input, numbered lineNo.
func (p *Parser[T]) line(text string, lineNo int, prefix *int) *Result {
	result := &Result{}
	seg := segment{text: norm.NFC.String(text), pos: Position{Line: lineNo, Column: 1}}

	first, ok := MaybeWord(seg.text)
	if !ok || strings.HasPrefix(first.Text, "#") {
		return result
	}
	rest := seg.after(first)

	kw := classify(first.Text, p.modes)
	if kw.kind != kwNone && rest.blank() {
		result.fail(newError(MissingArgument, rest.pos, tokenEndOfLine, expectArguments))
		return result
	}

	var (
		cmd Command
		err *Error
	)
	switch kw.kind {
	case kwInclude:
		return p.includeCommand(rest)
	case kwSet:
		cmd, err = setCommand(rest)
	case kwMap:
		cmd, err = mapCommand(rest, kw.mode)
	case kwUnmap:
		cmd, err = unmapCommand(rest, kw.mode)
	default:
		cmd, err = p.otherCommand(seg, first, rest, prefix)
	}

	if err != nil {
		result.fail(err)
	} else {
		result.add(cmd)
	}
	return result
}

// setCommand parses "set <name> = <value>".
func setCommand(rest segment) (Command, *Error) {
	words, ok := Words(rest.text, 2)
	if !ok {
		return nil, newError(Parse, rest.eol(), tokenEndOfLine, expectEquals)
	}

	name, op := words[0], words[1]
	if err := CheckIdent(name, rest.at(name)); err != nil {
		return nil, err.(*Error)
	}
	if op.Text != "=" {
		return nil, newError(Parse, rest.at(op), op.Text, expectEquals)
	}

	value := rest.after(op)
	raw := strings.TrimSpace(stripComment(value.text))
	if raw == "" {
		return nil, newError(Parse, value.pos, tokenEndOfLine, expectValue)
	}
	return SetCommand{Name: name.Text, Value: ParseValue(raw)}, nil
}

// mapCommand parses "<mode>map <keys> <action>".
func mapCommand(rest segment, mode string) (Command, *Error) {
	keys, after, err := chord(rest)
	if err != nil {
		return nil, err
	}
	action := strings.TrimSpace(after.text)
	if action == "" {
		return nil, newError(Parse, after.pos, tokenEndOfLine, expectAction)
	}
	return MapCommand{Action: action, Keys: keys, Mode: mode}, nil
}

// unmapCommand parses "<mode>unmap <keys>".
func unmapCommand(rest segment, mode string) (Command, *Error) {
	keys, after, err := chord(rest)
	if err != nil {
		return nil, err
	}
	if err := endOfLine(after); err != nil {
		return nil, err
	}
	return UnmapCommand{Keys: keys, Mode: mode}, nil
}

// chord parses the key sequence at the start of rest.
func chord(rest segment) (key.Sequence, segment, *Error) {
	w := FirstWord(rest.text)
	keys, err := key.ParseKeys(w.Text)
	if err != nil {
		var perr *key.ParseError
		if !errors.As(err, &perr) {
			return nil, rest, &Error{Type: Parse, Pos: rest.at(w), Unexpected: w.Text, Expected: "key", Err: err}
		}
		return nil, rest, &Error{
			Type:       Parse,
			Pos:        rest.at(w).Advance(perr.Offset),
			Unexpected: perr.Unexpected,
			Expected:   perr.Expected,
			Err:        err,
		}
	}
	return key.Sequence(keys), rest.after(w), nil
}

// endOfLine fails when s holds another word.
func endOfLine(s segment) *Error {
	if w, ok := MaybeWord(s.text); ok {
		return newError(Parse, s.at(w), w.Text, expectEndOfLine)
	}
	return nil
}

// otherCommand resolves a word that is not a keyword: first through the
// command factory, then against the application commands.
func (p *Parser[T]) otherCommand(seg segment, first Word, rest segment, prefix *int) (Command, *Error) {
	name := first.Text

	if p.factory != nil {
		if needsArg, err := p.factory.HasArgument(name); err == nil {
			arg := strings.TrimSpace(rest.text)
			if needsArg && arg == "" {
				return nil, newError(MissingArgument, rest.pos, tokenEndOfLine, expectArguments)
			}
			value, err := p.factory.Create(name, arg, prefix)
			if err != nil {
				perr := newError(Parse, rest.pos, tokenEndOfLine, expectArguments)
				if w, ok := MaybeWord(rest.text); ok {
					perr.Pos = rest.at(w)
					perr.Unexpected = arg
				}
				perr.Err = err
				return nil, perr
			}
			return CustomCommand[T]{Value: value}, nil
		}
	}

	if _, ok := p.appCommands[name]; ok {
		if err := endOfLine(rest); err != nil {
			return nil, err
		}
		return AppCommand{Name: name}, nil
	}

	return nil, newError(UnknownCommand, seg.at(first), name, expectCommandOrNote)
}
