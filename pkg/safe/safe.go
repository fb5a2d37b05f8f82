package safe

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
)

func Run(fn func()) {
	RunWithLog(fn, "safe.Run")
}

// RunWithLog executes fn and logs a recovered panic with its stack.
func RunWithLog(fn func(), component string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", stackTrace()),
			)
		}
	}()

	fn()
}

// Call is RunWithLog for functions that return an error. A panic is turned
// into an error instead of being swallowed.
func Call(fn func() error, component string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", stackTrace()),
			)
			err = fmt.Errorf("%s: panic: %v", component, r)
		}
	}()

	return fn()
}

const maxStackLines = 40

func stackTrace() string {
	lines := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
	if len(lines) > maxStackLines {
		lines = append(lines[:maxStackLines], "... (truncated)")
	}
	return strings.Join(lines, "\n")
}
