package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/tidwall/sjson"

	"github.com/dshills/keyrc/internal/input/key"
	"github.com/dshills/keyrc/internal/rc"
)

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// diagnostic is one parse error located in a file.
type diagnostic struct {
	File    string
	Pos     rc.Position
	Type    string
	Message string
	// Source is the offending line, empty when it could not be read.
	Source string
	// Hint names a known command close to an unknown one.
	Hint string
}

// report summarises one parse of a config file.
type report struct {
	File        string
	Files       []string
	Commands    int
	Bindings    int
	Settings    int
	Diagnostics []diagnostic
	// Problems are commands that parsed but could not be applied.
	Problems []string
}

// Failed reports whether anything in the file needs fixing.
func (r *report) Failed() bool {
	return len(r.Diagnostics) > 0 || len(r.Problems) > 0
}

// addErrors converts parse errors to diagnostics. Errors from the root
// file carry no file name, so root names it. Unknown commands get a hint
// when suggest finds a close match.
func (r *report) addErrors(root string, errs []*rc.Error, suggest func(string) (string, bool)) {
	sources := make(map[string][]string)
	for _, e := range errs {
		file := e.File
		if file == "" {
			file = root
		}
		if _, ok := sources[file]; !ok {
			sources[file] = readLines(file)
		}
		d := diagnostic{
			File:    file,
			Pos:     e.Pos,
			Type:    e.Type.String(),
			Message: message(e),
		}
		if lines := sources[file]; e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
			d.Source = lines[e.Pos.Line-1]
		}
		if e.Type == rc.UnknownCommand && suggest != nil {
			if name, ok := suggest(e.Unexpected); ok {
				d.Hint = "did you mean " + name + "?"
			}
		}
		r.Diagnostics = append(r.Diagnostics, d)
	}
}

// message renders e without its position.
func message(e *rc.Error) string {
	if e.Type == rc.Include && e.Err != nil {
		return e.Err.Error()
	}
	msg := fmt.Sprintf("unexpected %s, expecting %s", e.Unexpected, e.Expected)
	// Chord errors already carry their text in Unexpected and Expected.
	var perr *key.ParseError
	if e.Err != nil && !errors.As(e.Err, &perr) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines
}

// caret returns the indentation that puts a caret under column col of
// line. Tabs are kept so the caret lines up however they are rendered.
func caret(line string, col int) string {
	runes := []rune(line)
	if col-1 < len(runes) {
		runes = runes[:max(col-1, 0)]
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(string(runes))
	for g.Next() {
		if g.Str() == "\t" {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", g.Width()))
	}
	return sb.String()
}

// WriteText writes the report for a terminal, one diagnostic per error
// followed by the offending line and a caret.
func (r *report) WriteText(w io.Writer, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			paint(colorBold, d.File), d.Pos.Line, d.Pos.Column, paint(colorRed, d.Type), d.Message)
		if d.Source != "" {
			fmt.Fprintf(w, "    %s\n", d.Source)
			fmt.Fprintf(w, "    %s%s\n", caret(d.Source, d.Pos.Column), paint(colorRed, "^"))
		}
		if d.Hint != "" {
			fmt.Fprintf(w, "    %s\n", d.Hint)
		}
	}
	for _, p := range r.Problems {
		fmt.Fprintf(w, "%s: %s\n", paint(colorBold, r.File), p)
	}

	fmt.Fprintf(w, "%s: %d commands, %d bindings, %d settings, %d errors\n",
		r.File, r.Commands, r.Bindings, r.Settings, len(r.Diagnostics)+len(r.Problems))
}

// JSON renders the report as a JSON document.
func (r *report) JSON() (string, error) {
	doc := `{"files":[],"diagnostics":[],"problems":[]}`
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, v)
		}
	}

	set("file", r.File)
	set("ok", !r.Failed())
	set("commands", r.Commands)
	set("bindings", r.Bindings)
	set("settings", r.Settings)
	for _, f := range r.Files {
		set("files.-1", f)
	}
	for _, d := range r.Diagnostics {
		set("diagnostics.-1", map[string]any{
			"file":    d.File,
			"line":    d.Pos.Line,
			"column":  d.Pos.Column,
			"type":    d.Type,
			"message": d.Message,
			"hint":    d.Hint,
		})
	}
	for _, p := range r.Problems {
		set("problems.-1", p)
	}
	return doc, err
}
