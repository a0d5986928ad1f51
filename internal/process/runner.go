// Package process runs and inspects the external programs the theme is applied to.
package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/mitchellh/go-ps"
)

// Runner defines the process operations used by output plugins.
// This abstraction allows for dependency injection and easier testing.
type Runner interface {
	// Run executes a command and waits for it, returning its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start launches a command in the background without waiting for it.
	Start(name string, args ...string) error

	// FindByName returns the PIDs of all processes whose executable is name.
	FindByName(name string) ([]int, error)

	// Signal sends sig to the process with the given PID.
	Signal(pid int, sig os.Signal) error
}

// ExecRunner implements Runner using os/exec and the process table.
type ExecRunner struct{}

// NewExecRunner creates a new real process runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a real external process.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Start launches the process and releases it so it outlives this program.
func (r *ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 - fixed program names chosen by output plugins
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

// FindByName finds all PIDs of processes with the given executable name.
// Uses go-ps for cross-platform process discovery.
func (r *ExecRunner) FindByName(name string) ([]int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}

// Signal sends sig to pid.
func (r *ExecRunner) Signal(pid int, sig os.Signal) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	return proc.Signal(sig)
}
