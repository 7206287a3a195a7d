package service

import (
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/puzzle"
	"codeverse_backend/internal/quiz"
	"context"
)

// Phase3MaxScore is the ceiling of the externally scored final round.
const Phase3MaxScore = 100

type MaxScores struct {
	Phase1 int `json:"phase1"`
	Phase2 int `json:"phase2"`
	Phase3 int `json:"phase3"`
	Total  int `json:"total"`
}

// TotalView hides every number until phase 3 has been recorded; completion
// flags are always visible.
type TotalView struct {
	ScoresVisible   bool      `json:"scores_visible"`
	TotalScore      *int      `json:"total_score"`
	Phase1Score     *int      `json:"phase1_score"`
	Phase2Score     *int      `json:"phase2_score"`
	Phase3Score     *int      `json:"phase3_score"`
	Phase1Completed bool      `json:"phase1_completed"`
	Phase2Completed bool      `json:"phase2_completed"`
	Phase3Completed bool      `json:"phase3_completed"`
	MaxScores       MaxScores `json:"max_scores"`
}

type ScoreService struct {
	Participants *ParticipantService
	Bank         *quiz.Bank
}

func NewScoreService(participants *ParticipantService, bank *quiz.Bank) *ScoreService {
	return &ScoreService{Participants: participants, Bank: bank}
}

func (s *ScoreService) MaxScores() MaxScores {
	m := MaxScores{
		Phase1: s.Bank.MaxPoints(),
		Phase2: puzzle.BSTPoints + puzzle.RBPoints + puzzle.DetectivePoints,
		Phase3: Phase3MaxScore,
	}
	m.Total = m.Phase1 + m.Phase2 + m.Phase3
	return m
}

// TotalOf derives the total view from a participant record.
func (s *ScoreService) TotalOf(p *model.Participant) *TotalView {
	v := &TotalView{
		ScoresVisible:   p.Phase3Completed(),
		Phase1Completed: p.Completed(model.Phase1),
		Phase2Completed: p.Completed(model.Phase2),
		Phase3Completed: p.Completed(model.Phase3),
		MaxScores:       s.MaxScores(),
	}
	if v.ScoresVisible {
		v.TotalScore = model.IntPtr(p.Total())
		v.Phase1Score = p.Phase1Score
		v.Phase2Score = p.Phase2Score
		v.Phase3Score = p.Phase3Score
	}
	return v
}

func (s *ScoreService) GetTotal(ctx context.Context, email string) (*TotalView, error) {
	p, err := s.Participants.ReadParticipant(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.TotalOf(p), nil
}
