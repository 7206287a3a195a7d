package service

import (
	"codeverse_backend/internal/config"
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/quiz"
	"codeverse_backend/internal/repository"
	"codeverse_backend/internal/util"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newTestStore(t *testing.T) *repository.ParticipantRepository {
	t.Helper()
	name := fmt.Sprintf("file:svc_%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Participant{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return repository.NewParticipantRepository(db, time.Second)
}

// failingStore passes reads through and fails writes when armed.
type failingStore struct {
	ParticipantStore
	failWrites atomic.Bool
}

func (f *failingStore) Update(ctx context.Context, email string, fields map[string]interface{}) error {
	if f.failWrites.Load() {
		return fmt.Errorf("%w: injected", util.ErrPersistence)
	}
	return f.ParticipantStore.Update(ctx, email, fields)
}

func (f *failingStore) UpdateWhilePhase2Open(ctx context.Context, email string, fields map[string]interface{}) error {
	if f.failWrites.Load() {
		return fmt.Errorf("%w: injected", util.ErrPersistence)
	}
	return f.ParticipantStore.UpdateWhilePhase2Open(ctx, email, fields)
}

type fixture struct {
	store        ParticipantStore
	participants *ParticipantService
	progress     *ProgressService
	scores       *ScoreService
}

func newFixture(t *testing.T, store ParticipantStore) *fixture {
	t.Helper()
	participants := NewParticipantService(store, nil)
	bank := quiz.DefaultBank()
	return &fixture{
		store:        store,
		participants: participants,
		progress:     NewProgressService(participants, bank),
		scores:       NewScoreService(participants, bank),
	}
}

func (f *fixture) login(t *testing.T, email string) {
	t.Helper()
	_, err := f.participants.CreateParticipant(context.Background(), email, "Tester", "")
	require.NoError(t, err)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", ExpireTime: time.Hour},
	}
}

const (
	validBST        = `{"1":40,"2":20,"3":60,"4":10,"5":30,"6":50,"7":70}`
	rbRootRed       = `[{"id":"rb-slot-1","color":"red"},{"id":"rb-slot-2","color":"black"},{"id":"rb-slot-3","color":"black"},{"id":"rb-slot-4","color":"red"},{"id":"rb-slot-5","color":"red"},{"id":"rb-slot-6","color":"red"},{"id":"rb-slot-7","color":"red"}]`
	rbAllBlack      = `[{"id":"rb-slot-1","color":"black"},{"id":"rb-slot-2","color":"black"},{"id":"rb-slot-3","color":"black"},{"id":"rb-slot-4","color":"black"},{"id":"rb-slot-5","color":"black"},{"id":"rb-slot-6","color":"black"},{"id":"rb-slot-7","color":"black"}]`
	detectiveHit    = `{"1":40,"2":20,"3":60,"4":10,"5":45,"6":35,"7":70}`
	detectiveSorted = `{"1":40,"2":20,"3":60,"4":10,"5":35,"6":45,"7":70}`
)

var threeOfFive = map[string]string{
	"1": "Tree",
	"2": "O(log n)",
	"3": "Stack",
	"4": "Bubble Sort",
	"5": "def",
}
