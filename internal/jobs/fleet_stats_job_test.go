package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bikeshare/internal/adapters/out/memory/bicyclerepo"
	"bikeshare/internal/core/application/usecases/queries"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/jobs"
	"bikeshare/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type failingStats struct{}

func (failingStats) Handle(context.Context, queries.GetFleetStatsQuery) (queries.FleetStats, error) {
	return queries.FleetStats{}, errors.New("registry unavailable")
}

func TestFleetStatsJob_Run(t *testing.T) {
	registry := bicyclerepo.NewRegistry()
	for i, id := range []string{"B-1", "B-2", "E-1"} {
		kind := bicycle.Regular
		if i == 2 {
			kind = bicycle.Electric
		}
		b, err := bicycle.NewBicycle(kernel.MustBicycleID(id), kind, kernel.MustStation("성복동"), epoch)
		require.NoError(t, err)
		require.NoError(t, registry.Add(t.Context(), b))
	}
	_, err := registry.Update(t.Context(), kernel.MustBicycleID("B-2"), func(b *bicycle.Bicycle) error {
		return b.SetRented()
	})
	require.NoError(t, err)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	job := jobs.NewFleetStatsJob(queries.NewGetFleetStatsQueryHandler(registry), m, "", discardLogger())

	job.Run(t.Context())

	last := job.Last()
	assert.Equal(t, 3, last.Total)
	assert.Equal(t, 1, last.Electric)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Bicycles.WithLabelValues(bicycle.Available.String())), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Bicycles.WithLabelValues(bicycle.Rented.String())), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.Bicycles.WithLabelValues(bicycle.Repairing.String())), 0)
}

func TestFleetStatsJob_RunKeepsLastOnError(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	job := jobs.NewFleetStatsJob(failingStats{}, m, "", discardLogger())

	job.Run(t.Context())

	assert.Equal(t, queries.FleetStats{}, job.Last())
	assert.Equal(t, 0, testutil.CollectAndCount(m.Bicycles))
}

func TestFleetStatsJob_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	registry := bicyclerepo.NewRegistry()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	job := jobs.NewFleetStatsJob(queries.NewGetFleetStatsQueryHandler(registry), m, "* * * * * *", discardLogger())

	require.NoError(t, job.Start())
	require.Eventually(t, func() bool {
		return testutil.CollectAndCount(m.Bicycles) == len(bicycle.AllStatuses())
	}, 3*time.Second, 50*time.Millisecond)
	job.Stop()
}

func TestFleetStatsJob_StartTwiceFails(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	job := jobs.NewFleetStatsJob(failingStats{}, metrics.NewMetrics(prometheus.NewRegistry()), "", discardLogger())

	require.NoError(t, job.Start())
	require.Error(t, job.Start())
	job.Stop()
	job.Stop()

	require.NoError(t, job.Start(), "a stopped job can be started again")
	job.Stop()
}

func TestFleetStatsJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewFleetStatsJob(failingStats{}, metrics.NewMetrics(prometheus.NewRegistry()), "not a schedule", discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := newFixture(t, fixtureOption{})
	// newFixture already started the workflow job.
	f.job.Stop()

	stats := jobs.NewFleetStatsJob(failingStats{}, f.metrics, "", discardLogger())
	manager := jobs.NewJobManager(f.job, stats)

	require.NoError(t, manager.StartAll())
	id := f.addBicycle(t, "B-1", bicycle.Regular, "성복동")
	f.reportBreakdown(t, id, breakdown.Other)
	manager.StopAll()
}

func TestJobManager_StartAllStopsWorkflowOnFailure(t *testing.T) {
	f := newFixture(t, fixtureOption{})
	f.job.Stop()

	stats := jobs.NewFleetStatsJob(failingStats{}, f.metrics, "bad", discardLogger())
	manager := jobs.NewJobManager(f.job, stats)

	require.Error(t, manager.StartAll())
	// The workflow job was stopped again, so it can be restarted.
	require.NoError(t, f.job.Start())
}
