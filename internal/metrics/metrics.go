package metrics

import (
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	AutoModerationUserDisabled      = "user_disabled"
	AutoModerationRecipeUnpublished = "recipe_unpublished"

	resultDelivered = "delivered"
	resultFailed    = "failed"
)

var (
	ReportsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_reports_created_total",
			Help: "Total number of reports submitted, by report type",
		},
		[]string{"report_type"},
	)

	ReportsReviewed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_reports_reviewed_total",
			Help: "Total number of admin report reviews, by action taken",
		},
		[]string{"action"},
	)

	AutoModerationActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_auto_moderation_actions_total",
			Help: "Total number of threshold-triggered enforcements",
		},
		[]string{"kind"},
	)

	ReporterNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_reporter_notifications_total",
			Help: "Total number of review-complete notification attempts, by result",
		},
		[]string{"result"},
	)

	WorkerPoolCallerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_worker_pool_caller_runs_total",
			Help: "Tasks run on the submitting goroutine because the queue was full",
		},
		[]string{"pool"},
	)

	WorkerPoolTaskPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_worker_pool_task_panics_total",
			Help: "Tasks that panicked inside a worker",
		},
		[]string{"pool"},
	)

	WorkerPoolQueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipehub_worker_pool_queue_depth",
			Help: "Tasks waiting in the worker pool queue",
		},
		[]string{"pool"},
	)

	SuspensionsLifted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipehub_suspensions_lifted_total",
			Help: "Users reinstated after their suspension ended",
		},
	)
)

func RecordReportCreated(t models.ReportType) {
	ReportsCreated.WithLabelValues(string(t)).Inc()
}

func RecordReview(action models.ReportActionType) {
	ReportsReviewed.WithLabelValues(string(action)).Inc()
}

func RecordAutoModeration(kind string) {
	AutoModerationActions.WithLabelValues(kind).Inc()
}

// RecordReporterNotification counts a delivery attempt; a nil err is a
// successful delivery.
func RecordReporterNotification(err error) {
	if err != nil {
		ReporterNotifications.WithLabelValues(resultFailed).Inc()
		return
	}
	ReporterNotifications.WithLabelValues(resultDelivered).Inc()
}

func RecordSuspensionsLifted(n int64) {
	if n > 0 {
		SuspensionsLifted.Add(float64(n))
	}
}
