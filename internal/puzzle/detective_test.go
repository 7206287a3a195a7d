package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDetective(t *testing.T) {
	tests := []struct {
		name       string
		slots      Slots
		valid      bool
		violations int
	}{
		{
			name:  "valid BST has nothing to detect",
			slots: Slots{1: 40, 2: 20, 3: 60, 4: 10, 5: 30, 6: 50, 7: 70},
		},
		{
			name:       "served board has two deep violations",
			slots:      DetectiveBoard,
			valid:      true,
			violations: 2,
		},
		{
			name:       "single violation is not enough",
			slots:      Slots{1: 40, 2: 20, 3: 60, 4: 10, 5: 45, 6: 50, 7: 70},
			violations: 1,
		},
		{
			name:       "three violations",
			slots:      Slots{1: 40, 2: 20, 3: 60, 4: 10, 5: 45, 6: 35, 7: 30},
			valid:      true,
			violations: 3,
		},
		{
			name:  "incomplete",
			slots: Slots{1: 40, 2: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDetective(tt.slots)
			assert.Equal(t, tt.valid, got.Valid, got.Reason)
			assert.Equal(t, tt.violations, got.Violations)
		})
	}
}

func TestDetectiveBoard_LocallyOrdered(t *testing.T) {
	// every parent/child pair passes a naive local check
	for i := 1; i <= 3; i++ {
		assert.Less(t, DetectiveBoard[left(i)], DetectiveBoard[i])
		assert.Greater(t, DetectiveBoard[right(i)], DetectiveBoard[i])
	}
	assert.False(t, ValidateBST(DetectiveBoard).Valid)
}

func TestCountViolations_KeepsNarrowingBelowViolator(t *testing.T) {
	// 50 sits left of root 40; its children stay bounded above by 40
	slots := Slots{1: 40, 2: 50, 3: 60, 4: 45, 5: 55, 6: 50, 7: 70}
	assert.Equal(t, 3, CountViolations(slots))
}
