package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bikeshare/cmd"
	"bikeshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, time.Minute, cfg.RentalBillingUnit)
	assert.Equal(t, int64(16), cfg.RepairWorkers)
	assert.InDelta(t, 1, cfg.TimeAcceleration, 0)
	assert.False(t, cfg.PersistenceEnabled())
	assert.False(t, cfg.NotificationsEnabled())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DB_HOST=db\nRENTAL_BILLING_UNIT=1s\nTIME_ACCELERATION=60\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"DB_HOST", "RENTAL_BILLING_UNIT", "TIME_ACCELERATION", "LOG_LEVEL"} {
			_ = os.Unsetenv(k)
		}
	})
	t.Setenv("TIME_ACCELERATION", "10")

	cfg, err := cmd.LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.PersistenceEnabled())
	assert.Equal(t, time.Second, cfg.RentalBillingUnit)
	assert.InDelta(t, 10, cfg.TimeAcceleration, 0, "the real environment wins over .env")
	assert.Equal(t, "host=db port=5432 user=postgres password= dbname=bikeshare sslmode=disable", cfg.DBSettings().DSN())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"REPAIR_WORKERS":      "0",
		"RENTAL_BILLING_UNIT": "0s",
		"TIME_ACCELERATION":   "-2",
		"LOG_LEVEL":           "chatty",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := cmd.LoadConfig("")
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("unparsable duration", func(t *testing.T) {
		t.Setenv("DEFAULT_MOVE_TIME", "soon")

		_, err := cmd.LoadConfig("")
		require.Error(t, err)
	})
}
