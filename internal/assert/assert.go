// Package assert holds the precondition checks shared by rawmem and vector.
//
// Checks compile to nothing unless the module is built with the vectordebug
// tag. Call sites guard with Enabled so the arguments are never evaluated in
// release builds:
//
//	if assert.Enabled && k >= n {
//		assert.Failf("index %d out of range [0,%d)", k, n)
//	}
package assert

import "fmt"

// Failf panics with a formatted precondition violation.
func Failf(format string, args ...any) {
	panic(fmt.Sprintf("assertion failed: "+format, args...))
}
