//go:build debug

package assert

import "fmt"

// Debug reports whether this build was compiled with the "debug" tag.
const Debug = true

// Invariant panics with msg if test is false.
func Invariant(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
