package puzzle

import "fmt"

// DetectiveBoard is the pre-populated broken tree served to participants.
// Every parent/child pair is locally ordered, but 45 and 35 break the bounds
// inherited from the root.
var DetectiveBoard = Slots{1: 40, 2: 20, 3: 60, 4: 10, 5: 45, 6: 35, 7: 70}

// DetectiveStones are the values a detective arrangement may use.
var DetectiveStones = DetectiveBoard.values()

// CountViolations counts the placements that fall outside the open interval
// derived from all of their ancestors. Intervals keep narrowing by ancestor
// values even below a violating node.
func CountViolations(slots Slots) int {
	return countViolations(slots, 1, unbounded())
}

func countViolations(slots Slots, i int, b interval) int {
	v, ok := slots[i]
	if !ok || i > SlotCount {
		return 0
	}
	n := 0
	if !b.contains(v) {
		n = 1
	}
	return n + countViolations(slots, left(i), b.withHi(v)) + countViolations(slots, right(i), b.withLo(v))
}

// ValidateDetective accepts an arrangement only when it is not already a
// valid BST and contains at least DetectiveThreshold deep violations.
func ValidateDetective(slots Slots) Result {
	if reason, ok := slots.completeness(); !ok {
		return Result{Reason: reason}
	}
	if ValidateBST(slots).Valid {
		return Result{Reason: "No violations detected: the tree is already a valid BST"}
	}

	n := CountViolations(slots)
	if n < DetectiveThreshold {
		return Result{
			Reason:     fmt.Sprintf("Only %d violation(s) detected, at least %d required", n, DetectiveThreshold),
			Violations: n,
		}
	}
	return Result{
		Valid:      true,
		Reason:     fmt.Sprintf("Detected %d deep violations", n),
		Violations: n,
	}
}
