package waybar

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/TheSeaMacs/waybar-autotheme/internal/colour"
	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
	"github.com/TheSeaMacs/waybar-autotheme/internal/process"
)

var testTheme = colour.Theme{Background: "#102030", Foreground: "#a0b0c0"}

func TestRewriteStylesheet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		replaced int
	}{
		{
			name: "both markers",
			input: "* { font-size: 12px; }\n" +
				"@define-color background #000000; /* {variant:bg} */\n" +
				"@define-color text-foreground #ffffff; /* {variant:fg} */\n" +
				"window { background: @background; }\n",
			want: "* { font-size: 12px; }\n" +
				"@define-color background #102030; /* {variant:bg} */\n" +
				"@define-color text-foreground #a0b0c0; /* {variant:fg} */\n" +
				"window { background: @background; }\n",
			replaced: 2,
		},
		{
			name:     "bare marker comments",
			input:    "/* {variant:fg} */\n/* {variant:bg} */",
			want:     "@define-color text-foreground #a0b0c0; /* {variant:fg} */\n@define-color background #102030; /* {variant:bg} */",
			replaced: 2,
		},
		{
			name:     "no markers",
			input:    "label { color: red; }\n",
			want:     "label { color: red; }\n",
			replaced: 0,
		},
		{
			name:     "empty",
			input:    "",
			want:     "",
			replaced: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replaced := RewriteStylesheet(tt.input, testTheme)
			if got != tt.want {
				t.Errorf("RewriteStylesheet() =\n%q\nwant\n%q", got, tt.want)
			}
			if replaced != tt.replaced {
				t.Errorf("RewriteStylesheet() replaced %d lines, want %d", replaced, tt.replaced)
			}
		})
	}
}

func newTestPlugin(t *testing.T, runner process.Runner) (*Plugin, string) {
	t.Helper()
	dir := t.TempDir()
	css := filepath.Join(dir, "return.css")
	if err := os.WriteFile(css, []byte("/* {variant:bg} */\n/* {variant:fg} */\n"), 0o640); err != nil {
		t.Fatalf("failed to write stylesheet: %v", err)
	}
	p := New(runner)
	p.stylesheet = css
	p.config = filepath.Join(dir, "return.jsonc")
	return p, css
}

// waybarOnPath puts a no-op waybar executable first on $PATH.
func waybarOnPath(t *testing.T) {
	t.Helper()
	bin := t.TempDir()
	if err := os.WriteFile(filepath.Join(bin, "waybar"), []byte("#!/bin/sh\nexit 0\n"), 0o700); err != nil {
		t.Fatalf("failed to write waybar: %v", err)
	}
	t.Setenv("PATH", bin)
}

func execContext() output.ExecutionContext {
	return output.ExecutionContext{Theme: testTheme, Logger: hclog.NewNullLogger()}
}

func TestApply(t *testing.T) {
	p, css := newTestPlugin(t, &process.MockRunner{})

	if err := p.Apply(context.Background(), execContext()); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, err := os.ReadFile(css)
	if err != nil {
		t.Fatalf("failed to read stylesheet: %v", err)
	}
	want := "@define-color background #102030; /* {variant:bg} */\n" +
		"@define-color text-foreground #a0b0c0; /* {variant:fg} */\n"
	if string(got) != want {
		t.Errorf("stylesheet =\n%q\nwant\n%q", got, want)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(css)
		if err != nil {
			t.Fatalf("failed to stat stylesheet: %v", err)
		}
		if info.Mode().Perm() != 0o640 {
			t.Errorf("stylesheet mode = %v, want 0640", info.Mode().Perm())
		}
	}
}

func TestApplyMissingStylesheet(t *testing.T) {
	p := New(&process.MockRunner{})
	p.stylesheet = filepath.Join(t.TempDir(), "missing.css")
	if err := p.Apply(context.Background(), execContext()); err == nil {
		t.Error("Apply() expected error for missing stylesheet")
	}
}

func TestPreExecute(t *testing.T) {
	p, _ := newTestPlugin(t, &process.MockRunner{})
	p.restart = false

	skip, reason, err := p.PreExecute(context.Background())
	if err != nil || skip {
		t.Errorf("PreExecute() = (%v, %q, %v), want not skipped", skip, reason, err)
	}

	p.enabled = false
	if skip, _, _ := p.PreExecute(context.Background()); !skip {
		t.Error("PreExecute() should skip a disabled plugin")
	}

	p.enabled = true
	p.stylesheet = filepath.Join(t.TempDir(), "missing.css")
	if skip, _, _ := p.PreExecute(context.Background()); !skip {
		t.Error("PreExecute() should skip when the stylesheet is missing")
	}
}

func TestPostExecuteRestartsWaybar(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("waybar restart is unix only")
	}

	waybarOnPath(t)
	runner := &process.MockRunner{Processes: map[string][]int{"waybar": {101, 202}}}
	p, css := newTestPlugin(t, runner)

	if err := p.PostExecute(context.Background(), execContext()); err != nil {
		t.Fatalf("PostExecute() error = %v", err)
	}

	if !reflect.DeepEqual(runner.Signalled, []int{101, 202}) {
		t.Errorf("signalled %v, want [101 202]", runner.Signalled)
	}
	want := []process.Call{{Name: "waybar", Args: []string{"-c", p.config, "-s", css}, Background: true}}
	if !reflect.DeepEqual(runner.Calls, want) {
		t.Errorf("calls = %+v, want %+v", runner.Calls, want)
	}
}

func TestMissingWaybarSkipsOnlyRestart(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("waybar restart is unix only")
	}
	t.Setenv("PATH", t.TempDir())

	runner := &process.MockRunner{Processes: map[string][]int{"waybar": {7}}}
	p, css := newTestPlugin(t, runner)

	skip, reason, err := p.PreExecute(context.Background())
	if err != nil || skip {
		t.Fatalf("PreExecute() = (%v, %q, %v), want not skipped", skip, reason, err)
	}
	if err := p.Apply(context.Background(), execContext()); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	got, err := os.ReadFile(css)
	if err != nil {
		t.Fatalf("failed to read stylesheet: %v", err)
	}
	if want := "@define-color background #102030; /* {variant:bg} */\n"; !strings.HasPrefix(string(got), want) {
		t.Errorf("stylesheet not rewritten:\n%s", got)
	}

	if err := p.PostExecute(context.Background(), execContext()); err != nil {
		t.Fatalf("PostExecute() error = %v", err)
	}
	if len(runner.Calls) != 0 || len(runner.Signalled) != 0 {
		t.Errorf("PostExecute() restarted waybar without an executable: %+v %v", runner.Calls, runner.Signalled)
	}
}

func TestPostExecuteRestartDisabled(t *testing.T) {
	runner := &process.MockRunner{Processes: map[string][]int{"waybar": {1}}}
	p, _ := newTestPlugin(t, runner)
	p.restart = false

	if err := p.PostExecute(context.Background(), execContext()); err != nil {
		t.Fatalf("PostExecute() error = %v", err)
	}
	if len(runner.Calls) != 0 || len(runner.Signalled) != 0 {
		t.Errorf("PostExecute() touched processes with restart disabled: %+v %v", runner.Calls, runner.Signalled)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvStylesheet, "/env/style.css")

	p := New(nil)
	if got := p.StylesheetPath(); got != "/env/style.css" {
		t.Errorf("StylesheetPath() = %s, want env override", got)
	}
	p.stylesheet = "/flag/style.css"
	if got := p.StylesheetPath(); got != "/flag/style.css" {
		t.Errorf("StylesheetPath() = %s, want flag value", got)
	}

	t.Setenv(EnvConfig, "")
	if got := p.ConfigPath(); filepath.Base(got) != "return.jsonc" {
		t.Errorf("ConfigPath() = %s, want default return.jsonc", got)
	}
}
