package stations_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bikeshare/internal/adapters/out/stations"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := stations.Parse([]byte(`
stations:
  - name: 성복동
    move_time: 3s
  - name: " 상현동 "
    move_time: 1m30s
`))
	require.NoError(t, err)

	got, err := d.MoveTime(t.Context(), kernel.MustStation("성복동"))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, got)

	got, err = d.MoveTime(t.Context(), kernel.MustStation("상현동"))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, got)

	assert.Equal(t, []string{"상현동", "성복동"}, d.Names())
}

func TestParse_UnknownStation(t *testing.T) {
	d, err := stations.Parse([]byte("stations: []"))
	require.NoError(t, err)

	_, err = d.MoveTime(t.Context(), kernel.MustStation("죽전동"))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.False(t, d.Known(kernel.MustStation("죽전동")))
}

func TestDirectory_Known(t *testing.T) {
	d, err := stations.Parse([]byte("stations:\n  - name: 보정동\n    move_time: 6s\n"))
	require.NoError(t, err)

	assert.True(t, d.Known(kernel.MustStation("보정동")))
	assert.True(t, d.Known(kernel.MustStation(" 보정동 ")))
	assert.False(t, d.Known(kernel.MustStation("Nowhere")))
}

func TestParse_Empty(t *testing.T) {
	d, err := stations.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, d.Names())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "stations:\n  - name: a\n    movetime: 3s\n"},
		{"blank name", "stations:\n  - name: '  '\n    move_time: 3s\n"},
		{"duplicate", "stations:\n  - name: a\n    move_time: 3s\n  - name: a\n    move_time: 4s\n"},
		{"negative", "stations:\n  - name: a\n    move_time: -3s\n"},
		{"not a duration", "stations:\n  - name: a\n    move_time: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stations.Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("shipped file", func(t *testing.T) {
		d, err := stations.Load(filepath.Join("..", "..", "..", "..", "configs", "stations.yaml"))
		require.NoError(t, err)
		assert.Equal(t, []string{"보정동", "상현동", "성복동", "죽전동"}, d.Names())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := stations.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
