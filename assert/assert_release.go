//go:build !debug

// Package assert provides a build-tag-gated invariant check: a no-op in
// release builds, a panic in builds tagged "debug". Callers always guard
// with "if assert.Debug" so the compiler strips the call entirely (and
// any argument-formatting cost with it) when the tag is absent.
package assert

// Debug reports whether this build was compiled with the "debug" tag.
const Debug = false

// Invariant panics with msg if test is false. Only called under an
// "if assert.Debug" guard so it compiles away to nothing otherwise.
func Invariant(test bool, msg string, a ...interface{}) {}
