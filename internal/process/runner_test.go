package process

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
)

func TestExecRunnerFindByNameUnknown(t *testing.T) {
	procs, err := NewExecRunner().FindByName("definitely-not-a-running-program")
	if err != nil {
		t.Skipf("process table unavailable: %v", err)
	}
	if len(procs) != 0 {
		t.Errorf("FindByName() = %v, want none", procs)
	}
}

func TestExecRunnerRunMissingBinary(t *testing.T) {
	r := NewExecRunner()
	if _, err := r.Run(context.Background(), "autotheme-missing-binary-xyz"); err == nil {
		t.Error("Run() expected error for missing binary")
	}
}

func TestMockRunner(t *testing.T) {
	m := &MockRunner{Processes: map[string][]int{"waybar": {10, 11}}}

	if _, err := m.Run(context.Background(), "hyprctl", "keyword", "x"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := m.Start("waybar", "-c", "cfg"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	pids, _ := m.FindByName("waybar")
	for _, pid := range pids {
		_ = m.Signal(pid, os.Interrupt)
	}

	want := []Call{
		{Name: "hyprctl", Args: []string{"keyword", "x"}},
		{Name: "waybar", Args: []string{"-c", "cfg"}, Background: true},
	}
	if !reflect.DeepEqual(m.Calls, want) {
		t.Errorf("Calls = %+v, want %+v", m.Calls, want)
	}
	if !reflect.DeepEqual(m.Signalled, []int{10, 11}) {
		t.Errorf("Signalled = %v, want [10 11]", m.Signalled)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Run(ctx, "hyprctl"); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() with cancelled context error = %v, want %v", err, context.Canceled)
	}
}
