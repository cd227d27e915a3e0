//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/epollo/epollo/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)

	pid := renderer.LauncherPID()
	require.NotZero(t, pid, "launcher PID should be set")

	// On Unix, FindProcess always succeeds, so signal 0 is the way to
	// check whether the process is alive.
	err = syscall.Kill(pid, syscall.Signal(0))
	require.NoError(t, err, "launcher process should be running before Close()")

	err = renderer.Close()
	require.NoError(t, err)

	// Give the OS a moment to clean up the process
	time.Sleep(100 * time.Millisecond)

	err = syscall.Kill(pid, syscall.Signal(0))
	assert.Error(t, err, "launcher process should be terminated after Close()")
}
