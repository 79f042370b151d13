package state

import (
	"cmp"

	"github.com/gogpu/gputypes"
)

// Depth describes depth testing and depth writes.
// Func is ignored by Compare while Test is false.
type Depth struct {
	Test  bool
	Write bool
	Func  gputypes.CompareFunction
}

// DefaultDepth returns less-than testing with writes enabled.
func DefaultDepth() Depth {
	return Depth{Test: true, Write: true, Func: gputypes.CompareFunctionLess}
}

// NoDepth returns depth testing and writes disabled.
func NoDepth() Depth {
	return Depth{Func: gputypes.CompareFunctionAlways}
}

// Compare orders disabled testing first.
func (d Depth) Compare(o Depth) int {
	if c := cmp.Or(compareBool(d.Test, o.Test), compareBool(d.Write, o.Write)); c != 0 {
		return c
	}
	if !d.Test {
		return 0
	}
	return cmp.Compare(d.Func, o.Func)
}

// Clone returns d.
func (d Depth) Clone() Depth {
	return d
}
