package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/keyrc/internal/commands"
	"github.com/dshills/keyrc/internal/logging"
	"github.com/dshills/keyrc/internal/rc"
)

const browserScript = `
keyrc.command {
    name = "open",
    arg = true,
    help = "Open a URL",
    run = function(arg, count)
        if arg == "bad://" then
            return nil, "unsupported scheme"
        end
        return { url = arg, tabs = count or 1 }
    end,
}

keyrc.command { name = "Quit", help = "Quit the application" }

keyrc.command {
    name = "WinOpen",
    arg = true,
    hidden = true,
    run = function(arg) return arg end,
}

keyrc.command {
    name = "zoom",
    special = true,
    run = function(_, count) return count end,
}
`

func newBrowserFactory(t *testing.T) *Factory {
	t.Helper()
	f := NewFactory()
	t.Cleanup(func() { _ = f.Close() })
	if err := f.LoadString(browserScript); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	return f
}

func TestFactoryCreate(t *testing.T) {
	f := newBrowserFactory(t)
	three := 3

	tests := []struct {
		name   string
		arg    string
		prefix *int
		want   Command
	}{
		{"open", "crates.io", nil, Command{Name: "open", Arg: "crates.io", Data: map[string]any{"url": "crates.io", "tabs": int64(1)}}},
		{"open", "crates.io", &three, Command{Name: "open", Arg: "crates.io", Count: &three, Data: map[string]any{"url": "crates.io", "tabs": int64(3)}}},
		{"quit", "ignored", nil, Command{Name: "quit"}},
		{"win-open", "docs.rs", nil, Command{Name: "win-open", Arg: "docs.rs", Data: "docs.rs"}},
		{"zoom", "", &three, Command{Name: "zoom", Count: &three, Data: int64(3)}},
	}

	for _, tt := range tests {
		got, err := f.Create(tt.name, tt.arg, tt.prefix)
		if err != nil {
			t.Errorf("Create(%q, %q) error = %v", tt.name, tt.arg, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Create(%q, %q) = %+v, want %+v", tt.name, tt.arg, got, tt.want)
		}
	}
}

func TestFactoryCreateErrors(t *testing.T) {
	f := newBrowserFactory(t)

	_, err := f.Create("open", "bad://", nil)
	if err == nil || err.Error() != "open: unsupported scheme" {
		t.Errorf("rejected argument error = %v", err)
	}

	var unknown *commands.UnknownCommandError
	if _, err := f.Create("close", "", nil); !errors.As(err, &unknown) {
		t.Errorf("unknown command error = %v", err)
	}
}

func TestFactoryHasArgumentAndMetaData(t *testing.T) {
	f := newBrowserFactory(t)

	if has, err := f.HasArgument("open"); err != nil || !has {
		t.Errorf("HasArgument(open) = %v, %v", has, err)
	}
	if has, err := f.HasArgument("quit"); err != nil || has {
		t.Errorf("HasArgument(quit) = %v, %v", has, err)
	}
	if _, err := f.HasArgument("missing"); err == nil {
		t.Error("HasArgument(missing) should fail")
	}

	want := map[string]rc.MetaData{
		"open":     {HelpText: "Open a URL"},
		"quit":     {HelpText: "Quit the application"},
		"win-open": {CompletionHidden: true},
		"zoom":     {IsSpecialCommand: true},
	}
	if got := f.MetaData(); !reflect.DeepEqual(got, want) {
		t.Errorf("MetaData() = %+v, want %+v", got, want)
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{"open", "quit", "win-open", "zoom"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestFactoryWithParser(t *testing.T) {
	f := newBrowserFactory(t)
	p := rc.New[Command](f)

	result := p.Parse(strings.NewReader("open crates.io\nquit\nopen bad://\nopen\nclose"))

	if len(result.Commands) != 2 {
		t.Fatalf("commands = %v, want open and quit", result.Commands)
	}
	open := result.Commands[0].(rc.CustomCommand[Command]).Value
	if open.Name != "open" || open.Arg != "crates.io" {
		t.Errorf("first command = %+v", open)
	}

	wantTypes := []rc.ErrorType{rc.Parse, rc.MissingArgument, rc.UnknownCommand}
	if len(result.Errors) != len(wantTypes) {
		t.Fatalf("errors = %v", result.Err())
	}
	for i, e := range result.Errors {
		if e.Type != wantTypes[i] {
			t.Errorf("error %d type = %v, want %v", i, e.Type, wantTypes[i])
		}
	}

	prefixed := p.ParseLineWithPrefix("open crates.io", 2)
	if v := prefixed.Commands[0].(rc.CustomCommand[Command]).Value; v.Count == nil || *v.Count != 2 {
		t.Errorf("prefixed command = %+v", v)
	}
}

func TestFactoryInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"missing name", `keyrc.command { arg = true }`, "name must be a non-empty string"},
		{"bad run", `keyrc.command { name = "x", run = 5 }`, "run must be a function"},
		{"duplicate", `keyrc.command { name = "x" } keyrc.command { name = "X" }`, "command already registered: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFactory()
			defer f.Close()
			err := f.LoadString(tt.script)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadString error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFactoryRemove(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{"by go name", `assert(keyrc.remove("WinOpen") == true)`, ""},
		{"by dash name", `assert(keyrc.remove("win-open") == true)`, ""},
		{"twice", `keyrc.remove("win-open") assert(keyrc.remove("win-open") == false)`, ""},
		{"unknown", `assert(keyrc.remove("close") == false)`, ""},
		{"missing name", `keyrc.remove()`, "bad argument #1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBrowserFactory(t)
			err := f.LoadString(tt.script)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("LoadString error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadString failed: %v", err)
			}
		})
	}

	f := newBrowserFactory(t)
	if err := f.LoadString(`keyrc.remove("WinOpen")`); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{"open", "quit", "zoom"}) {
		t.Errorf("Names() = %v", got)
	}
	var unknown *commands.UnknownCommandError
	if _, err := f.Create("win-open", "x", nil); !errors.As(err, &unknown) {
		t.Errorf("Create after remove error = %v", err)
	}
	if err := f.LoadString(`keyrc.command { name = "win-open", run = function() return "again" end }`); err != nil {
		t.Errorf("redefining a removed command failed: %v", err)
	}
	if cmd, err := f.Create("win-open", "", nil); err != nil || cmd.Data != "again" {
		t.Errorf("Create(win-open) = %+v, %v", cmd, err)
	}
}

func TestFactoryLoadFileAndLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmds.lua")
	script := `keyrc.log("defining reload") keyrc.command { name = "reload" }`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	f := NewFactory()
	defer f.Close()
	f.SetLogger(logging.New(logging.Config{Level: logging.LevelDebug, Output: &logs}))

	if err := f.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
	if !strings.Contains(logs.String(), "defining reload") {
		t.Errorf("log output = %q", logs.String())
	}

	if err := f.LoadFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("LoadFile of a missing file should fail")
	}
}

func TestCommandString(t *testing.T) {
	if got := (Command{Name: "open", Arg: "crates.io"}).String(); got != "open crates.io" {
		t.Errorf("String() = %q", got)
	}
	if got := (Command{Name: "quit"}).String(); got != "quit" {
		t.Errorf("String() = %q", got)
	}
}
