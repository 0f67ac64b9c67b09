package recovery

import (
	"bytes"
	"os"
	"os/exec"
	"testing"
)

// TestHandlePanic_NoPanic verifies that HandlePanic does nothing when there's no panic
func TestHandlePanic_NoPanic(t *testing.T) {
	func() {
		defer HandlePanic()
	}()
	// If we get here, the test passed
}

// TestHandlePanic_ExitsOnPanic uses a subprocess to test panic behavior
func TestHandlePanic_ExitsOnPanic(t *testing.T) {
	if os.Getenv("TEST_PANIC_EXIT") == "1" {
		defer HandlePanic()
		panic("test panic")
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestHandlePanic_ExitsOnPanic")
	cmd.Env = append(os.Environ(), "TEST_PANIC_EXIT=1")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	if exitErr, ok := err.(*exec.ExitError); ok {
		if exitErr.ExitCode() != 1 {
			t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
		}
	} else if err == nil {
		t.Error("expected process to exit with error, but it succeeded")
	}

	output := stderr.String()
	if !bytes.Contains([]byte(output), []byte("FATAL")) {
		t.Errorf("stderr should contain 'FATAL', got: %s", output)
	}
	if !bytes.Contains([]byte(output), []byte("test panic")) {
		t.Errorf("stderr should contain 'test panic', got: %s", output)
	}
}
