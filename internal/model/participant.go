package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Phase2 子任务名称，作为 phase2_state 的键
const (
	SubPuzzleBST       = "bst_score"
	SubPuzzleRB        = "rb_score"
	SubPuzzleDetective = "detective_score"
)

// Phase2State maps a sub-puzzle name to its last recorded score.
type Phase2State map[string]int

// Sum adds up whichever sub-scores have been recorded.
func (s Phase2State) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

func (s Phase2State) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Phase2State) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = Phase2State{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("phase2_state: unsupported type %T", value)
	}
	if len(raw) == 0 {
		*s = Phase2State{}
		return nil
	}
	m := map[string]int{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*s = m
	return nil
}

// swagger:model Participant
type Participant struct {
	UUIDBase
	Email           string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name            string      `gorm:"size:100;not null" json:"name"`
	RollNo          string      `gorm:"size:50" json:"rollNo"`
	Phase1Score     *int        `json:"phase1Score"`
	Phase2Score     *int        `json:"phase2Score"`
	Phase3Score     *int        `json:"phase3Score"`
	Phase2Completed bool        `gorm:"not null;default:false" json:"phase2Completed"`
	Phase2State     Phase2State `gorm:"type:text" json:"phase2State"`
}

func (Participant) TableName() string {
	return "participants"
}

// Phase 进度阶段
type Phase int

const (
	Phase1 Phase = 1
	Phase2 Phase = 2
	Phase3 Phase = 3
)

func (p Phase) String() string {
	return fmt.Sprintf("phase%d", int(p))
}

type PhaseState string

const (
	PhaseLocked    PhaseState = "locked"
	PhaseUnlocked  PhaseState = "unlocked"
	PhaseCompleted PhaseState = "completed"
)

func (p *Participant) Phase1Completed() bool {
	return p.Phase1Score != nil
}

func (p *Participant) Phase3Completed() bool {
	return p.Phase3Score != nil
}

// Completed reports completion per phase: score presence for phases 1 and 3,
// the explicit flag for phase 2.
func (p *Participant) Completed(phase Phase) bool {
	switch phase {
	case Phase1:
		return p.Phase1Completed()
	case Phase2:
		return p.Phase2Completed
	case Phase3:
		return p.Phase3Completed()
	}
	return false
}

// Unlocked: phase 1 always, phase k+1 once phase k is completed.
func (p *Participant) Unlocked(phase Phase) bool {
	switch phase {
	case Phase1:
		return true
	case Phase2:
		return p.Completed(Phase1)
	case Phase3:
		return p.Completed(Phase2)
	}
	return false
}

func (p *Participant) State(phase Phase) PhaseState {
	if p.Completed(phase) {
		return PhaseCompleted
	}
	if p.Unlocked(phase) {
		return PhaseUnlocked
	}
	return PhaseLocked
}

// Total 由三个阶段分数实时计算，不落库
func (p *Participant) Total() int {
	return valueOrZero(p.Phase1Score) + valueOrZero(p.Phase2Score) + valueOrZero(p.Phase3Score)
}

// LastActivity 返回最近一次写入时间
func (p *Participant) LastActivity() time.Time {
	return p.UpdatedAt
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// IntPtr 便于构造可空分数
func IntPtr(v int) *int {
	return &v
}
