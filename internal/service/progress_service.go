package service

import (
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/puzzle"
	"codeverse_backend/internal/quiz"
	"codeverse_backend/internal/util"
	"codeverse_backend/pkg/logger"
	"codeverse_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// 谜题名称，用于指标标签
const (
	PuzzleBST       = "bst"
	PuzzleRB        = "rb"
	PuzzleDetective = "detective"
)

// ProgressService drives the per-participant phase state machine. Every
// gate is decided on a fresh store read.
type ProgressService struct {
	Participants *ParticipantService
	Bank         *quiz.Bank
}

func NewProgressService(participants *ParticipantService, bank *quiz.Bank) *ProgressService {
	return &ProgressService{Participants: participants, Bank: bank}
}

type Phase1Result struct {
	Score     int                   `json:"score"`
	Completed bool                  `json:"completed"`
	Correct   int                   `json:"correct"`
	Total     int                   `json:"total"`
	MaxPoints int                   `json:"maxPoints"`
	Results   []quiz.QuestionResult `json:"results"`
}

// SubmitPhase1 grades answers against the full bank; the last submission
// wins.
func (s *ProgressService) SubmitPhase1(ctx context.Context, email string, answers map[string]string) (*Phase1Result, error) {
	if _, err := s.Participants.ReadParticipant(ctx, email); err != nil {
		return nil, err
	}

	grade := s.Bank.Grade(answers)
	if err := s.Participants.UpdateParticipant(ctx, email, map[string]interface{}{
		"phase1_score": grade.Points,
	}); err != nil {
		return nil, err
	}

	monitoring.ObserveTransition(model.Phase1.String())
	logger.Log.Info("Phase 1 submitted",
		zap.String("email", email),
		zap.Int("correct", grade.Correct),
		zap.Int("score", grade.Points))

	return &Phase1Result{
		Score:     grade.Points,
		Completed: true,
		Correct:   grade.Correct,
		Total:     grade.Total,
		MaxPoints: s.Bank.MaxPoints(),
		Results:   grade.Results,
	}, nil
}

type PuzzleResult struct {
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason"`
	Score       int    `json:"score"`
	Phase2Score int    `json:"phase2Score"`
	Violations  *int   `json:"violationsFound,omitempty"`
	BlackHeight int    `json:"blackHeight,omitempty"`
}

func (s *ProgressService) SubmitBST(ctx context.Context, email string, raw json.RawMessage) (*PuzzleResult, error) {
	return s.submitPuzzle(ctx, email, PuzzleBST, model.SubPuzzleBST, puzzle.BSTPoints, func() (puzzle.Result, error) {
		slots, err := puzzle.ParseArrangement(raw, puzzle.BSTStones)
		if err != nil {
			return puzzle.Result{}, err
		}
		return puzzle.ValidateBST(slots), nil
	})
}

func (s *ProgressService) SubmitRB(ctx context.Context, email string, raw json.RawMessage) (*PuzzleResult, error) {
	return s.submitPuzzle(ctx, email, PuzzleRB, model.SubPuzzleRB, puzzle.RBPoints, func() (puzzle.Result, error) {
		coloring, err := puzzle.ParseColoring(raw)
		if err != nil {
			return puzzle.Result{}, err
		}
		return puzzle.ValidateRB(coloring), nil
	})
}

func (s *ProgressService) SubmitDetective(ctx context.Context, email string, raw json.RawMessage) (*PuzzleResult, error) {
	res, err := s.submitPuzzle(ctx, email, PuzzleDetective, model.SubPuzzleDetective, puzzle.DetectivePoints, func() (puzzle.Result, error) {
		slots, err := puzzle.ParseArrangement(raw, puzzle.DetectiveStones)
		if err != nil {
			return puzzle.Result{}, err
		}
		return puzzle.ValidateDetective(slots), nil
	})
	if err != nil {
		return nil, err
	}
	if res.Violations == nil {
		zero := 0
		res.Violations = &zero
	}
	return res, nil
}

// submitPuzzle gates on phase 2 being open, runs validate and records the
// sub-score (points or 0). The phase 2 running sum is reported but only
// persisted by ExitPhase2.
func (s *ProgressService) submitPuzzle(ctx context.Context, email, name, key string, points int, validate func() (puzzle.Result, error)) (*PuzzleResult, error) {
	p, err := s.Participants.ReadParticipant(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := phase2Open(p); err != nil {
		monitoring.ObservePuzzle(name, monitoring.OutcomeLocked)
		return nil, err
	}

	result, err := validate()
	outcome := monitoring.OutcomeInvalid
	switch {
	case errors.Is(err, puzzle.ErrMalformed):
		logger.Log.Debug("Malformed puzzle payload", zap.String("email", email), zap.String("puzzle", name), zap.Error(err))
		result = puzzle.Result{Reason: puzzle.ReasonInvalidData}
		outcome = monitoring.OutcomeMalformed
	case err != nil:
		return nil, err
	case result.Valid:
		outcome = monitoring.OutcomeValid
	}

	score := 0
	if result.Valid {
		score = points
	}

	state := model.Phase2State{}
	for k, v := range p.Phase2State {
		state[k] = v
	}
	state[key] = score

	if err := s.Participants.UpdatePhase2Progress(ctx, email, map[string]interface{}{
		"phase2_state": state,
	}); err != nil {
		return nil, err
	}
	monitoring.ObservePuzzle(name, outcome)

	logger.Log.Info("Phase 2 puzzle submitted",
		zap.String("email", email),
		zap.String("puzzle", name),
		zap.Bool("valid", result.Valid),
		zap.Int("score", score))

	res := &PuzzleResult{
		Valid:       result.Valid,
		Reason:      result.Reason,
		Score:       score,
		Phase2Score: state.Sum(),
		BlackHeight: result.BlackHeight,
	}
	if name == PuzzleDetective {
		v := result.Violations
		res.Violations = &v
	}
	return res, nil
}

func phase2Open(p *model.Participant) error {
	if !p.Unlocked(model.Phase2) {
		return fmt.Errorf("%w: complete phase 1 first", util.ErrPhaseLocked)
	}
	if p.Phase2Completed {
		return fmt.Errorf("%w: phase 2 already completed", util.ErrPhaseLocked)
	}
	return nil
}

type ExitResult struct {
	Completed        bool `json:"completed"`
	TotalPhase2Score int  `json:"totalPhase2Score"`
}

// ExitPhase2 freezes phase 2 with the sum of its sub-scores. Calling it
// again returns the frozen score without writing.
func (s *ProgressService) ExitPhase2(ctx context.Context, email string) (*ExitResult, error) {
	p, err := s.Participants.ReadParticipant(ctx, email)
	if err != nil {
		return nil, err
	}
	if !p.Unlocked(model.Phase2) {
		return nil, fmt.Errorf("%w: complete phase 1 first", util.ErrPhaseLocked)
	}
	if p.Phase2Completed {
		return frozenExit(p), nil
	}

	total := p.Phase2State.Sum()
	err = s.Participants.UpdatePhase2Progress(ctx, email, map[string]interface{}{
		"phase2_score":     total,
		"phase2_completed": true,
	})
	if errors.Is(err, util.ErrPhaseLocked) {
		// a concurrent exit won; report what it froze
		p, err = s.Participants.ReadParticipant(ctx, email)
		if err != nil {
			return nil, err
		}
		return frozenExit(p), nil
	}
	if err != nil {
		return nil, err
	}

	monitoring.ObserveTransition(model.Phase2.String())
	logger.Log.Info("Phase 2 completed", zap.String("email", email), zap.Int("score", total))
	return &ExitResult{Completed: true, TotalPhase2Score: total}, nil
}

func frozenExit(p *model.Participant) *ExitResult {
	score := 0
	if p.Phase2Score != nil {
		score = *p.Phase2Score
	}
	return &ExitResult{Completed: true, TotalPhase2Score: score}
}

type Phase3Result struct {
	Completed bool `json:"completed"`
	Score     int  `json:"score"`
}

// SubmitPhase3 records externally computed points once phase 2 is done.
func (s *ProgressService) SubmitPhase3(ctx context.Context, email string, points int) (*Phase3Result, error) {
	if points < 0 {
		return nil, util.ErrInvalidPoints
	}
	p, err := s.Participants.ReadParticipant(ctx, email)
	if err != nil {
		return nil, err
	}
	if !p.Unlocked(model.Phase3) {
		return nil, fmt.Errorf("%w: complete phase 2 first", util.ErrPhaseLocked)
	}

	if err := s.Participants.UpdateParticipant(ctx, email, map[string]interface{}{
		"phase3_score": points,
	}); err != nil {
		return nil, err
	}

	monitoring.ObserveTransition(model.Phase3.String())
	logger.Log.Info("Phase 3 recorded", zap.String("email", email), zap.Int("score", points))
	return &Phase3Result{Completed: true, Score: points}, nil
}

type PhaseStatus struct {
	State     model.PhaseState `json:"state"`
	Unlocked  bool             `json:"unlocked"`
	Completed bool             `json:"completed"`
	Score     *int             `json:"score"`
}

type StatusView struct {
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	Phase1      PhaseStatus       `json:"phase1"`
	Phase2      PhaseStatus       `json:"phase2"`
	Phase3      PhaseStatus       `json:"phase3"`
	Phase2State model.Phase2State `json:"phase2State"`
	TotalScore  int               `json:"totalScore"`
}

func phaseStatus(p *model.Participant, phase model.Phase, score *int) PhaseStatus {
	return PhaseStatus{
		State:     p.State(phase),
		Unlocked:  p.Unlocked(phase),
		Completed: p.Completed(phase),
		Score:     score,
	}
}

// StatusOf derives the phase view from a participant record.
func StatusOf(p *model.Participant) *StatusView {
	state := p.Phase2State
	if state == nil {
		state = model.Phase2State{}
	}
	return &StatusView{
		Email:       p.Email,
		Name:        p.Name,
		Phase1:      phaseStatus(p, model.Phase1, p.Phase1Score),
		Phase2:      phaseStatus(p, model.Phase2, p.Phase2Score),
		Phase3:      phaseStatus(p, model.Phase3, p.Phase3Score),
		Phase2State: state,
		TotalScore:  p.Total(),
	}
}

// GetStatus is always derived from a fresh store read.
func (s *ProgressService) GetStatus(ctx context.Context, email string) (*StatusView, error) {
	p, err := s.Participants.ReadParticipant(ctx, email)
	if err != nil {
		return nil, err
	}
	return StatusOf(p), nil
}
