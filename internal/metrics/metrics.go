// Package metrics exposes the Prometheus instruments of the bikeshare service.
//
// A Metrics value is bound to one registerer so tests can use a private
// registry; the composition root registers it on its own registry and serves it
// on /metrics.
package metrics

import (
	"time"

	"bikeshare/internal/core/domain/model/bicycle"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bikeshare"

// Workflow outcomes used as the "outcome" label.
const (
	OutcomeCompleted      = "completed"
	OutcomeUnknownBicycle = "unknown_bicycle"
	OutcomeCanceled       = "canceled"
	OutcomePanicked       = "panicked"
	OutcomeFailed         = "failed"
)

// Metrics holds every instrument.
type Metrics struct {
	WorkflowsStarted  prometheus.Counter
	WorkflowsFinished *prometheus.CounterVec
	WorkflowsInFlight prometheus.Gauge
	StageDuration     *prometheus.HistogramVec
	Bicycles          *prometheus.GaugeVec
	Refusals          *prometheus.CounterVec
	Notifications     *prometheus.CounterVec
}

// NewMetrics creates and registers the instruments on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		WorkflowsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repair_workflows_started_total",
			Help:      "Repair workflows started by breakdown reports",
		}),
		WorkflowsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repair_workflows_finished_total",
			Help:      "Repair workflows finished, by outcome",
		}, []string{"outcome"}),
		WorkflowsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "repair_workflows_in_flight",
			Help:      "Repair workflows currently running",
		}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repair_stage_duration_seconds",
			Help:      "Simulated duration of each repair workflow stage",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"stage"}),
		Bicycles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bicycles",
			Help:      "Bicycles in the fleet, by status",
		}, []string{"status"}),
		Refusals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refusals_total",
			Help:      "Refused actions, by action and status",
		}, []string{"action", "status"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Repair completion notifications sent, by result",
		}, []string{"result"}),
	}
}

// WorkflowStarted counts a started workflow and marks it in flight.
func (m *Metrics) WorkflowStarted() {
	m.WorkflowsStarted.Inc()
	m.WorkflowsInFlight.Inc()
}

// WorkflowFinished records the outcome and clears the in-flight mark.
func (m *Metrics) WorkflowFinished(outcome string) {
	m.WorkflowsFinished.WithLabelValues(outcome).Inc()
	m.WorkflowsInFlight.Dec()
}

// StageObserved records how long a stage was set to take.
func (m *Metrics) StageObserved(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetFleet publishes the per-status counts. Missing statuses are set to zero.
func (m *Metrics) SetFleet(byStatus map[bicycle.Status]int) {
	for _, s := range bicycle.AllStatuses() {
		m.Bicycles.WithLabelValues(s.String()).Set(float64(byStatus[s]))
	}
}

// Refused counts a refused action.
func (m *Metrics) Refused(refusal *bicycle.RefusalError) {
	m.Refusals.WithLabelValues(refusal.Action.String(), refusal.Status.String()).Inc()
}

// NotificationSent counts a notification attempt.
func (m *Metrics) NotificationSent(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.Notifications.WithLabelValues(result).Inc()
}
