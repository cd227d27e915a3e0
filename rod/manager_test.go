//go:build integration

package rod_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epollo/epollo/rod"
)

func TestManager_RecyclesAtThreshold(t *testing.T) {
	t.Parallel()

	m, err := rod.NewManager(rod.WithRecycleAfter(3))
	require.NoError(t, err)
	defer m.Close()

	first := m.Browser()
	require.NotNil(t, first)

	for range 3 {
		m.PageDone()
	}

	second := m.Browser()
	require.NotNil(t, second)
	assert.NotSame(t, first, second, "browser should be replaced once the threshold is reached")
}

func TestManager_KeepsBrowserBelowThreshold(t *testing.T) {
	t.Parallel()

	m, err := rod.NewManager(rod.WithRecycleAfter(5))
	require.NoError(t, err)
	defer m.Close()

	first := m.Browser()
	m.PageDone()
	m.PageDone()

	assert.Same(t, first, m.Browser())
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	m, err := rod.NewManager()
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Zero(t, m.LauncherPID())
}
