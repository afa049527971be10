package rulebase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func copyFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/economy.yaml")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "economy.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := copyFixture(t)
	w, err := NewWatcher(path, 20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	reloaded := make(chan *Definition, 4)
	w.OnReload(func(def *Definition) error {
		reloaded <- def
		return nil
	})
	w.Start()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	updated := strings.Replace(string(data), "name: economy", "name: economy-v2", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case def := <-reloaded:
		assert.Equal(t, "economy-v2", def.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	require.NoError(t, w.Stop())
}

func TestWatcherReportsBrokenFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := copyFixture(t)
	w, err := NewWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)

	failures := make(chan error, 4)
	w.OnError(func(err error) { failures <- err })
	w.OnReload(func(*Definition) error {
		t.Error("broken file must not reload")
		return nil
	})
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("schema_version: \"9.0.0\"\n"), 0o644))

	select {
	case err := <-failures:
		assert.Contains(t, err.Error(), "not supported")
	case <-time.After(5 * time.Second):
		t.Fatal("no error after broken write")
	}

	require.NoError(t, w.Stop())
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := copyFixture(t)
	w, err := NewWatcher(path, 10*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	reloaded := make(chan struct{}, 1)
	w.OnReload(func(*Definition) error {
		reloaded <- struct{}{}
		return nil
	})
	w.Start()

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("x"), 0o644))

	select {
	case <-reloaded:
		t.Fatal("sibling file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, w.Stop())
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "rules.yaml"), 0, nil)
	assert.Error(t, err)
}
