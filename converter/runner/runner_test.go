package runner

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	cmd := &Command{Name: "gs", Args: []string{"-dBATCH", "-f", "in.ps"}}
	assert.Equal(t, "gs -dBATCH -f in.ps", cmd.String())
}

func TestSetRunForTesting(t *testing.T) {
	var got *Command
	SetRunForTesting(func(cmd *Command) error {
		got = cmd
		return nil
	})
	defer SetRunForTesting(DefaultRun)

	cmd := &Command{Name: "gs", Args: []string{"-h"}}
	require.NoError(t, cmd.Run())
	assert.Same(t, cmd, got)
}

func TestDefaultRunCapturesOutput(t *testing.T) {
	var out bytes.Buffer
	err := DefaultRun(&Command{
		Name:           "sh",
		Args:           []string{"-c", "echo hello; echo world >&2"},
		CombinedOutput: &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "world")
}

func TestDefaultRunNonZeroExit(t *testing.T) {
	err := DefaultRun(&Command{Name: "sh", Args: []string{"-c", "exit 3"}})
	assert.Error(t, err)
}

func TestDefaultRunMissingBinary(t *testing.T) {
	err := DefaultRun(&Command{Name: "definitely-not-a-binary-epsconv"})
	assert.Error(t, err)
}

func TestDefaultRunTimeout(t *testing.T) {
	start := time.Now()
	err := DefaultRun(&Command{
		Name:    "sh",
		Args:    []string{"-c", "sleep 10"},
		Timeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "killed")
	assert.Less(t, time.Since(start), 5*time.Second)
}
