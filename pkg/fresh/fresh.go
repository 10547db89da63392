// Package fresh implements the compiler's single monotonic name supply.
//
// Every pass that needs to invent a new binder (alpha-rename, ANF
// conversion, closure conversion, hoisting) pulls from the same
// Counter for the lifetime of one compile, so that no two binders
// introduced during that compile ever collide. A Counter is reset only
// at the start of the next, unrelated compile.
package fresh

import "strconv"

// Counter hands out names of the form prefix+N, where N is a strictly
// increasing integer shared across every call, regardless of prefix.
type Counter struct{ n int }

// New returns a Counter starting at 0.
func New() *Counter { return &Counter{} }

// Reset rewinds the counter to 0, as if it had just been constructed.
func (c *Counter) Reset() { c.n = 0 }

// Next returns a name of the form "tmp"+N.
func (c *Counter) Next() string { return c.NextPrefixed("tmp") }

// NextPrefixed returns a name of the form prefix+N and advances N.
func (c *Counter) NextPrefixed(prefix string) string {
	name := prefix + strconv.Itoa(c.n)
	c.n++
	return name
}
