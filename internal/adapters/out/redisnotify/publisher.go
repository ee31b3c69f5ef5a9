// Package redisnotify announces finished repairs on a Redis pub/sub channel.
package redisnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"bikeshare/internal/core/domain/events"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "bikeshare.repairs"

const publishTimeout = 2 * time.Second

// Message is the JSON payload published for every RepairCompleted event.
type Message struct {
	Kind        string    `json:"kind"`
	BicycleID   string    `json:"bicycle_id"`
	ReportID    string    `json:"report_id"`
	Station     string    `json:"station"`
	CompletedAt time.Time `json:"completed_at"`
}

// Recorder counts delivery attempts.
type Recorder interface {
	NotificationSent(ok bool)
}

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Connect opens a client and pings the server.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// Publisher observes RepairCompleted events and publishes them.
// Delivery failures are logged and counted, never returned.
type Publisher struct {
	client   redis.UniversalClient
	channel  string
	recorder Recorder
	logger   *slog.Logger
}

// NewPublisher creates a publisher. An empty channel means DefaultChannel.
func NewPublisher(client redis.UniversalClient, channel string, recorder Recorder, logger *slog.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		client:   client,
		channel:  channel,
		recorder: recorder,
		logger:   logger.With("component", "redis_notifier", "channel", channel),
	}
}

// Notify implements observer.Observer.
func (p *Publisher) Notify(ctx context.Context, e events.RepairCompleted) {
	payload, err := json.Marshal(Message{
		Kind:        string(e.Kind()),
		BicycleID:   e.ID.String(),
		ReportID:    e.ReportID.String(),
		Station:     e.Station.String(),
		CompletedAt: e.CompletedAt.UTC(),
	})
	if err != nil {
		p.failed(ctx, e, err)
		return
	}

	// The workflow context may already be canceled at shutdown; the announcement
	// is still worth a bounded attempt.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err = p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.failed(ctx, e, err)
		return
	}

	p.recorder.NotificationSent(true)
	p.logger.DebugContext(ctx, "Repair completion published", "bicycle_id", e.ID.String())
}

func (p *Publisher) failed(ctx context.Context, e events.RepairCompleted, err error) {
	p.recorder.NotificationSent(false)
	p.logger.WarnContext(ctx, "Failed to publish repair completion",
		"bicycle_id", e.ID.String(), "report_id", e.ReportID.String(), "error", err)
}
