package main

import (
	"os"
	"testing"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	t.Cleanup(func() { os.Args = original })
	os.Args = append([]string{"chronos"}, args...)
}

func TestRun_Version(t *testing.T) {
	withArgs(t, "--version")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	withArgs(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	originalExit := exitFunc
	t.Cleanup(func() { exitFunc = originalExit })

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}
	withArgs(t, "--version")

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
