package service

import (
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/util"
	"codeverse_backend/pkg/logger"
	"context"
	"strings"

	"go.uber.org/zap"
)

// ParticipantStore is the authoritative participant record store.
type ParticipantStore interface {
	Create(ctx context.Context, p *model.Participant) (bool, error)
	FindByEmail(ctx context.Context, email string) (*model.Participant, error)
	Update(ctx context.Context, email string, fields map[string]interface{}) error
	UpdateWhilePhase2Open(ctx context.Context, email string, fields map[string]interface{}) error
	List(ctx context.Context) ([]model.Participant, error)
}

// DisplayCache holds advisory copies of participant records for display.
type DisplayCache interface {
	Get(ctx context.Context, email string) (*model.Participant, bool)
	Set(ctx context.Context, p *model.Participant)
	Invalidate(ctx context.Context, email string)
}

// ParticipantService keeps the store the single source of truth. The cache
// is only written from fresh store reads and only read for display.
type ParticipantService struct {
	Store ParticipantStore
	Cache DisplayCache
}

func NewParticipantService(store ParticipantStore, cache DisplayCache) *ParticipantService {
	return &ParticipantService{Store: store, Cache: cache}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateParticipant registers email on first login. An existing record keeps
// its name and scores untouched.
func (s *ParticipantService) CreateParticipant(ctx context.Context, email, name, rollNo string) (*model.Participant, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, util.ErrEmailRequired
	}
	if name == "" {
		return nil, util.ErrNameRequired
	}

	p := &model.Participant{
		Email:       email,
		Name:        name,
		RollNo:      strings.TrimSpace(rollNo),
		Phase2State: model.Phase2State{},
	}
	created, err := s.Store.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Log.Info("Participant created", zap.String("email", email))
	}
	s.cacheSet(ctx, p)
	return p, nil
}

// UpdateParticipant merges fields into an existing record. The cached copy is
// dropped so display reads cannot outlive the write.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, email string, fields map[string]interface{}) error {
	email = normalizeEmail(email)
	if err := s.Store.Update(ctx, email, fields); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, email)
	return nil
}

// UpdatePhase2Progress is UpdateParticipant for writes that must not land
// once phase 2 is frozen.
func (s *ParticipantService) UpdatePhase2Progress(ctx context.Context, email string, fields map[string]interface{}) error {
	email = normalizeEmail(email)
	if err := s.Store.UpdateWhilePhase2Open(ctx, email, fields); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, email)
	return nil
}

func (s *ParticipantService) ReadParticipant(ctx context.Context, email string) (*model.Participant, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, util.ErrIdentityMissing
	}
	return s.Store.FindByEmail(ctx, email)
}

// Sync re-reads the authoritative record and refreshes the display cache.
func (s *ParticipantService) Sync(ctx context.Context, email string) (*model.Participant, error) {
	p, err := s.ReadParticipant(ctx, email)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, p)
	return p, nil
}

// CachedProfile serves display-only reads, preferring the cache.
func (s *ParticipantService) CachedProfile(ctx context.Context, email string) (*model.Participant, error) {
	if s.Cache != nil {
		if p, ok := s.Cache.Get(ctx, normalizeEmail(email)); ok {
			return p, nil
		}
	}
	return s.Sync(ctx, email)
}

func (s *ParticipantService) List(ctx context.Context) ([]model.Participant, error) {
	return s.Store.List(ctx)
}

func (s *ParticipantService) cacheSet(ctx context.Context, p *model.Participant) {
	if s.Cache != nil {
		s.Cache.Set(ctx, p)
	}
}

func (s *ParticipantService) cacheInvalidate(ctx context.Context, email string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, email)
	}
}
