package util

import (
	"fmt"
	"os"
	"runtime/debug"
)

// AssertsPanic makes a failed assert panic instead of exiting, so tests
// can catch invariant violations.
var AssertsPanic bool = false

func fail(msg string) {
	if AssertsPanic {
		panic(msg)
	}
	debug.PrintStack()
	fmt.Fprint(os.Stderr, msg)
	os.Exit(1)
}

// Assert aborts on an internal invariant violation. Violations caused by
// the input data are returned as errors instead, never asserted.
func Assert(cond bool, o ...interface{}) {
	if !cond {
		fail(fmt.Sprint(o...))
	}
}

func Assertf(cond bool, fmtstr string, o ...interface{}) {
	if !cond {
		fail(fmt.Sprintf(fmtstr, o...))
	}
}
