package repository

import (
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/util"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newTestRepo(t *testing.T) *ParticipantRepository {
	t.Helper()
	name := fmt.Sprintf("file:repo_%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Participant{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewParticipantRepository(db, time.Second)
}

func TestParticipantRepository_CreateIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &model.Participant{Email: "peter@parker.io", Name: "Peter", RollNo: "21CS001"}
	created, err := repo.Create(ctx, p)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, p.ID)
	assert.Nil(t, p.Phase1Score)
	assert.Nil(t, p.Phase2Score)
	assert.Nil(t, p.Phase3Score)

	require.NoError(t, repo.Update(ctx, "peter@parker.io", map[string]interface{}{"phase1_score": 15}))

	again := &model.Participant{Email: "peter@parker.io", Name: "Spidey"}
	created, err = repo.Create(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, "Peter", again.Name)
	require.NotNil(t, again.Phase1Score)
	assert.Equal(t, 15, *again.Phase1Score)
}

func TestParticipantRepository_UpdateMergesFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Participant{Email: "a@b.c", Name: "A"})
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, "a@b.c", map[string]interface{}{"phase1_score": 0}))
	require.NoError(t, repo.Update(ctx, "a@b.c", map[string]interface{}{
		"phase2_state": model.Phase2State{model.SubPuzzleBST: 40},
	}))

	p, err := repo.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	require.NotNil(t, p.Phase1Score, "zero must stay distinct from absent")
	assert.Equal(t, 0, *p.Phase1Score)
	assert.Equal(t, 40, p.Phase2State[model.SubPuzzleBST])
	assert.Nil(t, p.Phase2Score)
	assert.Equal(t, "A", p.Name)
}

func TestParticipantRepository_UpdateMissing(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Update(context.Background(), "ghost@nowhere", map[string]interface{}{"phase1_score": 5})
	assert.ErrorIs(t, err, util.ErrParticipantNotFound)

	_, err = repo.FindByEmail(context.Background(), "ghost@nowhere")
	assert.ErrorIs(t, err, util.ErrParticipantNotFound)
}

func TestParticipantRepository_UpdateWhilePhase2Open(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Participant{Email: "a@b.c", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateWhilePhase2Open(ctx, "a@b.c", map[string]interface{}{
		"phase2_state": model.Phase2State{model.SubPuzzleRB: 40},
	}))
	require.NoError(t, repo.Update(ctx, "a@b.c", map[string]interface{}{
		"phase2_score":     40,
		"phase2_completed": true,
	}))

	err = repo.UpdateWhilePhase2Open(ctx, "a@b.c", map[string]interface{}{
		"phase2_state": model.Phase2State{model.SubPuzzleRB: 0},
	})
	assert.ErrorIs(t, err, util.ErrPhaseLocked)

	p, err := repo.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Phase2State[model.SubPuzzleRB])
}

func TestParticipantRepository_CanceledContextIsPersistenceFailure(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Update(ctx, "a@b.c", map[string]interface{}{"phase1_score": 5})
	assert.ErrorIs(t, err, util.ErrPersistence)
}

func TestParticipantRepository_List(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, e := range []string{"x@y.z", "y@y.z"} {
		_, err := repo.Create(ctx, &model.Participant{Email: e, Name: e})
		require.NoError(t, err)
	}
	ps, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ps, 2)
	assert.NoError(t, repo.Ping(ctx))
}
