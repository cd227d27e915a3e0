package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the default number of captured pages before
// the browser is replaced.
const DefaultRecycleAfter = 75

// Manager owns the headless Chrome process behind a Renderer. Chrome
// leaks memory across page loads even when every page is closed, so
// long batch runs replace the whole browser after a fixed number of
// captures.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	pages        atomic.Int64
	recycleAfter int64
	closed       atomic.Bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRecycleAfter sets how many captured pages a browser serves before
// it is replaced.
func WithRecycleAfter(n int64) ManagerOption {
	return func(m *Manager) {
		m.recycleAfter = n
	}
}

// NewManager launches a headless Chrome browser. Close must be called
// when the manager is no longer needed.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.launch(); err != nil {
		return nil, err
	}
	return m, nil
}

// Browser returns the current browser, replacing it first when the
// capture count has reached the recycle threshold. Callers report
// captures via PageDone.
func (m *Manager) Browser() *rod.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pages.Load() >= m.recycleAfter {
		m.recycle()
	}
	return m.browser
}

// PageDone records one captured page toward the recycle threshold.
func (m *Manager) PageDone() {
	m.pages.Add(1)
}

// Close shuts down the browser and its launcher. Safe to call more
// than once.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shutdown()
}

// LauncherPID exposes the browser process ID so tests can verify the
// process is gone after Close.
func (m *Manager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launcher == nil {
		return 0
	}
	return m.launcher.PID()
}

// launch starts a browser with flags that keep background pages from
// being throttled or discarded mid-capture.
func (m *Manager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = b
	m.launcher = l
	return nil
}

// shutdown closes the browser and kills the launcher. Caller holds mu.
func (m *Manager) shutdown() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycle replaces the browser with a fresh one. When the replacement
// fails to launch the old browser stays so captures can continue.
// Caller holds mu.
func (m *Manager) recycle() {
	old, oldLauncher := m.browser, m.launcher
	m.browser, m.launcher = nil, nil

	if err := m.launch(); err != nil {
		m.browser, m.launcher = old, oldLauncher
		return
	}

	if old != nil {
		_ = old.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	m.pages.Store(0)
}
