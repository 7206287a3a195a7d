package repository

import (
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/util"
	"codeverse_backend/pkg/monitoring"
	"codeverse_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultStoreTimeout bounds a single store call when none is configured.
const DefaultStoreTimeout = 3 * time.Second

// ParticipantRepository is the authoritative participant store. Every call
// runs under Timeout; anything that does not verifiably succeed comes back
// wrapped in util.ErrPersistence.
type ParticipantRepository struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func NewParticipantRepository(db *gorm.DB, timeout time.Duration) *ParticipantRepository {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &ParticipantRepository{DB: db, Timeout: timeout}
}

func (r *ParticipantRepository) begin(ctx context.Context, op, email string) (context.Context, context.CancelFunc, func(error) error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	ctx, span := tracing.StartStoreSpan(ctx, op, email)
	finish := func(err error) error {
		if err != nil && !errors.Is(err, util.ErrParticipantNotFound) && !errors.Is(err, util.ErrPhaseLocked) {
			monitoring.ObserveStoreFailure(op)
			if !errors.Is(err, util.ErrPersistence) {
				err = fmt.Errorf("%w: %s %s: %w", util.ErrPersistence, op, email, err)
			}
		}
		tracing.EndSpan(span, err)
		return err
	}
	return ctx, cancel, finish
}

// Create inserts p unless a participant with the same email exists, then
// loads the stored record into p. created reports whether a row was inserted.
func (r *ParticipantRepository) Create(ctx context.Context, p *model.Participant) (created bool, err error) {
	ctx, cancel, finish := r.begin(ctx, "create", p.Email)
	defer cancel()
	defer func() { err = finish(err) }()

	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(p)
	if result.Error != nil {
		return false, result.Error
	}

	// RowsAffected is unreliable for conflicts on mysql; compare ids instead
	stored, err := r.find(ctx, p.Email)
	if err != nil {
		return false, err
	}
	created = stored.ID == p.ID
	*p = *stored
	return created, nil
}

func (r *ParticipantRepository) FindByEmail(ctx context.Context, email string) (p *model.Participant, err error) {
	ctx, cancel, finish := r.begin(ctx, "read", email)
	defer cancel()
	defer func() { err = finish(err) }()

	return r.find(ctx, email)
}

func (r *ParticipantRepository) find(ctx context.Context, email string) (*model.Participant, error) {
	var p model.Participant
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update merges fields into an existing participant. updated_at is stamped
// by gorm. Zero rows affected is a failure.
func (r *ParticipantRepository) Update(ctx context.Context, email string, fields map[string]interface{}) (err error) {
	ctx, cancel, finish := r.begin(ctx, "update", email)
	defer cancel()
	defer func() { err = finish(err) }()

	result := r.DB.WithContext(ctx).
		Model(&model.Participant{}).
		Where("email = ?", email).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.explainNoRows(ctx, email, false)
	}
	return nil
}

// UpdateWhilePhase2Open is Update guarded by phase2_completed = false, so a
// write racing with exitPhase2 cannot touch a frozen phase.
func (r *ParticipantRepository) UpdateWhilePhase2Open(ctx context.Context, email string, fields map[string]interface{}) (err error) {
	ctx, cancel, finish := r.begin(ctx, "update_phase2", email)
	defer cancel()
	defer func() { err = finish(err) }()

	result := r.DB.WithContext(ctx).
		Model(&model.Participant{}).
		Where("email = ? AND phase2_completed = ?", email, false).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.explainNoRows(ctx, email, true)
	}
	return nil
}

// explainNoRows tells a missing participant and a frozen phase 2 apart from
// a write that silently did nothing.
func (r *ParticipantRepository) explainNoRows(ctx context.Context, email string, phase2Guard bool) error {
	p, err := r.find(ctx, email)
	if err != nil {
		return err
	}
	if phase2Guard && p.Phase2Completed {
		return util.ErrPhaseLocked
	}
	return fmt.Errorf("%w: no rows affected for %s", util.ErrPersistence, email)
}

func (r *ParticipantRepository) List(ctx context.Context) (ps []model.Participant, err error) {
	ctx, cancel, finish := r.begin(ctx, "list", "")
	defer cancel()
	defer func() { err = finish(err) }()

	err = r.DB.WithContext(ctx).Order("created_at ASC").Find(&ps).Error
	return ps, err
}

func (r *ParticipantRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
