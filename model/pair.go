package model

import (
	"cmp"
	"fmt"
)

// Pair is an ordered pair of adjacent token ids.
type Pair struct {
	Left, Right int32
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.Left, p.Right)
}

// Compare orders pairs lexicographically by Left, then Right.
func (p Pair) Compare(o Pair) int {
	if c := cmp.Compare(p.Left, o.Left); c != 0 {
		return c
	}
	return cmp.Compare(p.Right, o.Right)
}
