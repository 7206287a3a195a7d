package database

import (
	"codeverse_backend/internal/config"
	"codeverse_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.DatabaseConfig
		want   string
		errMsg string
	}{
		{name: "sqlite default", cfg: config.DatabaseConfig{}, want: "sqlite"},
		{name: "mysql", cfg: config.DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306}, want: "mysql"},
		{name: "postgres url", cfg: config.DatabaseConfig{Driver: "postgres", URL: "postgres://u:p@db/x"}, want: "postgres"},
		{name: "unknown", cfg: config.DatabaseConfig{Driver: "oracle"}, errMsg: "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(&tt.cfg)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestInitDB_SQLiteMigrates(t *testing.T) {
	db, err := InitDB(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:dbtest?mode=memory&cache=shared",
	}, false)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&model.Participant{}))
	assert.True(t, db.Migrator().HasColumn(&model.Participant{}, "phase2_state"))
}
