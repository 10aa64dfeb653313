package arbor

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// logger receives debug traces and tree-shape warnings.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "arbor"})

// globalDebug enables contract checks on destroyed elements and debug-level
// focus traces.
var globalDebug bool

// SetDebugMode enables or disables debug checks and traces.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// SetLogger replaces the package logger. A nil logger restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "arbor"})
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// debugCheckDestroyed panics with a descriptive message when a destroyed
// element is used in a tree operation. Only called in debug mode.
func debugCheckDestroyed(e *Element, op string) {
	if e.destroyed {
		panic(fmt.Sprintf("arbor debug: %s on destroyed element %q (ID was %d)", op, e.Name, e.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Element) {
	depth := 1
	for p := e.parent; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold", "depth", depth, "threshold", debugMaxTreeDepth, "element", e.Name)
	}
}

// debugCheckChildCount warns if a container has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *Container) {
	if c.count > debugMaxChildCount {
		logger.Warn("child count exceeds threshold", "container", c.Name, "children", c.count, "threshold", debugMaxChildCount)
	}
}
