package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "MYSQL_DSN", "DB_NAME", "DB_HOST", "DB_MAX_OPEN_CONNS", "REQUEST_TIMEOUT", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Contains(t, cfg.MySQLDSN, "tcp(localhost:3306)/godpill")
	assert.Contains(t, cfg.MySQLDSN, "parseTime=true")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("RESET_DB", "true")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5, cfg.DB.MaxIdleConns)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.ResetDB)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantErr    error
		wantDevKey bool
		wantSecret string
	}{
		{
			name:    "missing secret in production fails",
			cfg:     Config{AppEnv: "production", DB: PoolConfig{MaxOpenConns: 10}, RequestTimeout: time.Second},
			wantErr: ErrMissingJWTSecret,
		},
		{
			name:       "missing secret in development falls back",
			cfg:        Config{AppEnv: EnvDevelopment, DB: PoolConfig{MaxOpenConns: 10}, RequestTimeout: time.Second},
			wantDevKey: true,
			wantSecret: developmentJWTSecret,
		},
		{
			name:       "configured secret is kept",
			cfg:        Config{AppEnv: "production", JWTSecret: "s3cret", DB: PoolConfig{MaxOpenConns: 10}, RequestTimeout: time.Second},
			wantSecret: "s3cret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			usedDev, err := cfg.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDevKey, usedDev)
			assert.Equal(t, tt.wantSecret, cfg.JWTSecret)
		})
	}
}

func TestValidate_RejectsEmptyPool(t *testing.T) {
	cfg := Config{AppEnv: "production", JWTSecret: "x", RequestTimeout: time.Second}
	_, err := cfg.Validate()
	assert.Error(t, err)
}
