package puzzle

import "fmt"

// BSTStones are the values handed out for the BST puzzle.
var BSTStones = []int{10, 20, 30, 40, 50, 60, 70}

// ValidateBST checks that every slot is filled and every value lies strictly
// inside the interval inherited from all of its ancestors.
func ValidateBST(slots Slots) Result {
	if reason, ok := slots.completeness(); !ok {
		return Result{Reason: reason}
	}
	if reason, ok := checkBST(slots, 1, unbounded()); !ok {
		return Result{Reason: reason}
	}
	return Result{Valid: true, Reason: "Valid BST"}
}

func checkBST(slots Slots, i int, b interval) (string, bool) {
	v, ok := slots[i]
	if !ok || i > SlotCount {
		return "", true
	}
	if !b.contains(v) {
		return fmt.Sprintf("Violation: Node %d must be %s", v, b), false
	}
	if reason, ok := checkBST(slots, left(i), b.withHi(v)); !ok {
		return reason, false
	}
	return checkBST(slots, right(i), b.withLo(v))
}
