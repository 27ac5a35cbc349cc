// Package runner wraps os/exec for the external tools epsconv drives.
// Run is a package-level variable so tests can swap in a recording
// function and assert on the exact command sequences the orchestrator
// generates without Ghostscript or Inkscape installed.
package runner

import (
	"errors"
	"fmt"
	"io"
	osexec "os/exec"
	"strings"
	"time"
)

// ErrTimeout marks a command that was killed for exceeding its
// Timeout. Callers use errors.Is to tell a timeout from a plain
// non-zero exit.
var ErrTimeout = errors.New("command timed out")

// Command describes one external-process invocation.
type Command struct {
	// Name of the binary, as passed to osexec.Command.
	Name string
	// Args, not including Name.
	Args []string
	// Working directory; empty means the current directory.
	Dir string
	// Receives the combined stdout and stderr of the process.
	CombinedOutput io.Writer
	// Time limit for the process. No limit if zero.
	Timeout time.Duration
}

// String renders the invocation as a shell-like command line for
// verbose echo and error messages.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// DefaultRun executes the command and waits for it to finish,
// killing it if Timeout elapses first.
func DefaultRun(command *Command) error {
	cmd := osexec.Command(command.Name, command.Args...)
	cmd.Dir = command.Dir
	cmd.Stdout = command.CombinedOutput
	cmd.Stderr = command.CombinedOutput

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", command.Name, err)
	}
	if command.Timeout == 0 {
		return cmd.Wait()
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	select {
	case <-time.After(command.Timeout):
		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to kill timed out %s: %w", command.Name, err)
		}
		<-done
		return fmt.Errorf("%s killed after %s: %w", command.Name, command.Timeout, ErrTimeout)
	case err := <-done:
		return err
	}
}

// Run runs a command and waits for it to finish. Non-nil on non-zero
// exit, start failure, or timeout.
var Run func(command *Command) error = DefaultRun

// SetRunForTesting replaces Run so tests can observe commands without
// executing them. Restore with SetRunForTesting(DefaultRun).
func SetRunForTesting(testRun func(command *Command) error) {
	Run = testRun
}

// Run method is convenience for Run(command).
func (c *Command) Run() error {
	return Run(c)
}
