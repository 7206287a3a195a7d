package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipant_PhaseStates(t *testing.T) {
	p := &Participant{}

	assert.Equal(t, PhaseUnlocked, p.State(Phase1))
	assert.Equal(t, PhaseLocked, p.State(Phase2))
	assert.Equal(t, PhaseLocked, p.State(Phase3))

	p.Phase1Score = IntPtr(0)
	assert.Equal(t, PhaseCompleted, p.State(Phase1), "zero score still completes phase 1")
	assert.Equal(t, PhaseUnlocked, p.State(Phase2))
	assert.Equal(t, PhaseLocked, p.State(Phase3))

	// phase 2 score alone does not complete the phase
	p.Phase2Score = IntPtr(40)
	assert.Equal(t, PhaseUnlocked, p.State(Phase2))
	assert.Equal(t, PhaseLocked, p.State(Phase3))

	p.Phase2Completed = true
	assert.Equal(t, PhaseCompleted, p.State(Phase2))
	assert.Equal(t, PhaseUnlocked, p.State(Phase3))

	p.Phase3Score = IntPtr(85)
	assert.Equal(t, PhaseCompleted, p.State(Phase3))
}

func TestParticipant_Total(t *testing.T) {
	p := &Participant{}
	assert.Equal(t, 0, p.Total())

	p.Phase1Score = IntPtr(15)
	p.Phase3Score = IntPtr(85)
	assert.Equal(t, 100, p.Total())

	p.Phase2Score = IntPtr(40)
	assert.Equal(t, 140, p.Total())
}

func TestPhase2State_ValueScan(t *testing.T) {
	s := Phase2State{SubPuzzleBST: 40, SubPuzzleRB: 0}

	v, err := s.Value()
	require.NoError(t, err)

	var out Phase2State
	require.NoError(t, out.Scan(v))
	assert.Equal(t, s, out)
	assert.Equal(t, 40, out.Sum())

	require.NoError(t, out.Scan([]byte(`{"detective_score":20}`)))
	assert.Equal(t, Phase2State{SubPuzzleDetective: 20}, out)

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)

	assert.Error(t, out.Scan(42))
	assert.Error(t, out.Scan("not json"))
}

func TestPhase2State_NilValue(t *testing.T) {
	var s Phase2State
	v, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestUUIDBase_BeforeCreate(t *testing.T) {
	var b UUIDBase
	require.NoError(t, b.BeforeCreate(nil))
	assert.Len(t, b.ID, 36)

	b = UUIDBase{ID: "fixed"}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, "fixed", b.ID)
}
