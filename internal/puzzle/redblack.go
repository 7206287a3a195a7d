package puzzle

type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

const (
	ReasonRootRed         = "Root must be black"
	ReasonRedRed          = "Red node has Red child"
	ReasonBlackHeightSkew = "Black height mismatch"
)

// RBValues fixes the value of every slot of the Red-Black puzzle; only the
// coloring is submitted.
var RBValues = Slots{1: 40, 2: 20, 3: 60, 4: 10, 5: 30, 6: 50, 7: 70}

// Coloring maps a slot index to its submitted color.
type Coloring map[int]Color

// ValidateRB checks the root color first, then red-red conflicts and
// black-height balance bottom-up. The first conflict wins.
func ValidateRB(c Coloring) Result {
	n := 0
	for i := 1; i <= SlotCount; i++ {
		if _, ok := c[i]; ok {
			n++
		}
	}
	switch {
	case n == 0:
		return Result{Reason: ReasonEmpty}
	case n < SlotCount:
		return Result{Reason: ReasonIncomplete}
	}

	if c[1] != Black {
		return Result{Reason: ReasonRootRed}
	}

	bh, reason, ok := checkRB(c, 1)
	if !ok {
		return Result{Reason: reason}
	}
	// black-height 不计根节点自身
	return Result{Valid: true, Reason: "Valid Red-Black Tree", BlackHeight: bh - 1}
}

// checkRB returns the number of black nodes from slot i down to a virtual
// leaf, counting slot i itself.
func checkRB(c Coloring, i int) (int, string, bool) {
	if i > SlotCount {
		return 0, "", true
	}
	lh, reason, ok := checkRB(c, left(i))
	if !ok {
		return 0, reason, false
	}
	rh, reason, ok := checkRB(c, right(i))
	if !ok {
		return 0, reason, false
	}

	if c[i] == Red && (c.isRed(left(i)) || c.isRed(right(i))) {
		return 0, ReasonRedRed, false
	}
	if lh != rh {
		return 0, ReasonBlackHeightSkew, false
	}

	if c[i] == Black {
		return lh + 1, "", true
	}
	return lh, "", true
}

func (c Coloring) isRed(i int) bool {
	return i <= SlotCount && c[i] == Red
}
