// internal/recovery/recovery.go
package recovery

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandlePanic should be deferred at the top of main().
// It logs panic details and exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
		os.Exit(1)
	}
}
