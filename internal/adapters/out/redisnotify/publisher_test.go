package redisnotify_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"bikeshare/internal/adapters/out/redisnotify"
	"bikeshare/internal/core/domain/events"
	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completed() events.RepairCompleted {
	return events.RepairCompleted{
		ID:          kernel.MustBicycleID("E-7"),
		ReportID:    kernel.NewReportID(),
		Station:     kernel.MustStation("죽전동"),
		CompletedAt: time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestPublisher_Notify(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sub := client.Subscribe(t.Context(), "repairs")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(t.Context())
	require.NoError(t, err)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	p := redisnotify.NewPublisher(client, "repairs", m, discardLogger())

	e := completed()
	p.Notify(t.Context(), e)

	select {
	case msg := <-sub.Channel():
		var got redisnotify.Message
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "repair_completed", got.Kind)
		assert.Equal(t, "E-7", got.BicycleID)
		assert.Equal(t, e.ReportID.String(), got.ReportID)
		assert.Equal(t, "죽전동", got.Station)
		assert.True(t, got.CompletedAt.Equal(e.CompletedAt))
	case <-time.After(3 * time.Second):
		t.Fatal("no message received")
	}

	assert.InDelta(t, 1, testutil.ToFloat64(m.Notifications.WithLabelValues("ok")), 0)
}

func TestPublisher_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	p := redisnotify.NewPublisher(client, "", m, discardLogger())

	p.Notify(t.Context(), completed())

	assert.InDelta(t, 1, testutil.ToFloat64(m.Notifications.WithLabelValues("error")), 0)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redisnotify.Connect(t.Context(), redisnotify.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = redisnotify.Connect(t.Context(), redisnotify.Config{Addr: mr.Addr()})
	require.Error(t, err)
}
