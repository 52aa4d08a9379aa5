package schemy

import (
	"fmt"

	"github.com/shurcooL/go-goon"
)

var Verbose bool // set to true to debug

var Q = func(quietly_ignored ...interface{}) {} // quiet

// P is a shortcut for a call to fmt.Printf that implicitly starts
// and ends its message with a newline.
func P(format string, stuff ...interface{}) {
	fmt.Printf("\n "+format+"\n", stuff...)
}

func VPrintf(format string, a ...interface{}) {
	if Verbose {
		fmt.Printf(format, a...)
	}
}

// Dump pretty-prints any value's internal structure; handy when
// chasing trampoline or substitution issues.
func Dump(x interface{}) {
	goon.Dump(x)
}

func panicOn(err error) {
	if err != nil {
		panic(err)
	}
}
