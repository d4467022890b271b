package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/config"
	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/service"
	"github.com/xolan/chronos/internal/storage"
	"github.com/xolan/chronos/internal/timer"
)

// testNow is the fixed clock used by every handler test: 2026-10-18 10:00 UTC
var testNow = time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	deps     *cli.Deps
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode *int
	store    *storage.DiskStore
	clock    *timer.Manual
}

// setupTestDeps creates deps over a temporary store and a manual clock
func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	env := newTestEnv(t)
	return env.deps, env.stdout, env.stderr, env.exitCode
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := storage.Open(filepath.Join(tmpDir, "data"), nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	clock := timer.NewManual(testNow)
	services := service.NewServicesWithStore(store, clock, filepath.Join(tmpDir, "config.toml"), config.DefaultConfig(), nil)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
	}

	return &testEnv{deps: deps, stdout: stdout, stderr: stderr, exitCode: &exitCode, store: store, clock: clock}
}

func (e *testEnv) reset() {
	e.stdout.Reset()
	e.stderr.Reset()
	*e.exitCode = 0
}

func (e *testEnv) writeEntries(t *testing.T, entries ...entry.Entry) {
	t.Helper()
	if err := e.store.WriteEntries(entries); err != nil {
		t.Fatalf("failed to write entries: %v", err)
	}
}

func (e *testEnv) writeDraft(t *testing.T, d entry.Draft) {
	t.Helper()
	if err := e.store.WriteDraft(d); err != nil {
		t.Fatalf("failed to write draft: %v", err)
	}
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in output, got %q", want, out)
	}
}

func assertExit(t *testing.T, got *int, want int) {
	t.Helper()
	if *got != want {
		t.Errorf("expected exit code %d, got %d", want, *got)
	}
}
