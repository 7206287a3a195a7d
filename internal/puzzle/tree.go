// Package puzzle validates the Phase 2 tree puzzles. Trees are fixed-size
// complete binary trees addressed by 1-indexed slots: slot i has children
// 2i and 2i+1. Everything here is pure and safe for concurrent use.
package puzzle

import (
	"fmt"
	"strconv"
)

// SlotCount is the number of slots in every puzzle tree.
const SlotCount = 7

// 各子任务得分（通过/失败）
const (
	BSTPoints       = 40
	RBPoints        = 40
	DetectivePoints = 20

	// DetectiveThreshold is the minimum number of global-bound violations a
	// detective submission must contain.
	DetectiveThreshold = 2
)

const (
	ReasonInvalidData = "Invalid Data"
	ReasonEmpty       = "The tree is empty."
	ReasonIncomplete  = "Incomplete Tree. Use all stones."
)

// Result is the outcome of a validator run.
type Result struct {
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason"`
	Violations  int    `json:"violationsFound"`
	BlackHeight int    `json:"blackHeight,omitempty"`
}

// Slots maps a slot index (1..SlotCount) to the value placed in it.
type Slots map[int]int

func (s Slots) filled() int {
	n := 0
	for i := 1; i <= SlotCount; i++ {
		if _, ok := s[i]; ok {
			n++
		}
	}
	return n
}

// values lists the placed values in slot order.
func (s Slots) values() []int {
	out := make([]int, 0, SlotCount)
	for i := 1; i <= SlotCount; i++ {
		if v, ok := s[i]; ok {
			out = append(out, v)
		}
	}
	return out
}

// completeness returns a failure reason when not every slot is filled.
func (s Slots) completeness() (string, bool) {
	switch n := s.filled(); {
	case n == 0:
		return ReasonEmpty, false
	case n < SlotCount:
		return ReasonIncomplete, false
	}
	return "", true
}

func left(i int) int  { return 2 * i }
func right(i int) int { return 2*i + 1 }

// interval is an open interval whose ends may be unbounded.
type interval struct {
	lo, hi       int
	hasLo, hasHi bool
}

func unbounded() interval { return interval{} }

func (b interval) contains(v int) bool {
	if b.hasLo && v <= b.lo {
		return false
	}
	if b.hasHi && v >= b.hi {
		return false
	}
	return true
}

// withHi and withLo intersect, so a violating ancestor never widens the
// interval of its descendants.
func (b interval) withHi(v int) interval {
	if !b.hasHi || v < b.hi {
		b.hi, b.hasHi = v, true
	}
	return b
}

func (b interval) withLo(v int) interval {
	if !b.hasLo || v > b.lo {
		b.lo, b.hasLo = v, true
	}
	return b
}

func (b interval) String() string {
	lo, hi := "-∞", "∞"
	if b.hasLo {
		lo = strconv.Itoa(b.lo)
	}
	if b.hasHi {
		hi = strconv.Itoa(b.hi)
	}
	return fmt.Sprintf("between %s and %s", lo, hi)
}
