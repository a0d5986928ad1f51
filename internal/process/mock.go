package process

import (
	"context"
	"os"
	"slices"
	"sync"
)

// Call records one command passed to a MockRunner.
type Call struct {
	Name string
	Args []string
	// Background is true for commands launched with Start.
	Background bool
}

// MockRunner is a mock implementation of Runner for testing.
type MockRunner struct {
	mu sync.Mutex

	// RunFunc allows tests to provide custom behaviour for Run.
	RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

	// StartErr is returned by every Start call.
	StartErr error

	// Processes maps executable names to the PIDs FindByName reports.
	Processes map[string][]int

	// Calls lists every Run and Start invocation in order.
	Calls []Call

	// Signalled lists the PIDs passed to Signal.
	Signalled []int
}

// Run records the call and runs RunFunc if set.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, Call{Name: name, Args: slices.Clone(args)})
	fn := m.RunFunc
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fn != nil {
		return fn(ctx, name, args...)
	}
	return nil, nil
}

// Start records the call.
func (m *MockRunner) Start(name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, Call{Name: name, Args: slices.Clone(args), Background: true})
	return m.StartErr
}

// FindByName returns the configured PIDs.
func (m *MockRunner) FindByName(name string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Processes[name]), nil
}

// Signal records the PID.
func (m *MockRunner) Signal(pid int, _ os.Signal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Signalled = append(m.Signalled, pid)
	return nil
}
