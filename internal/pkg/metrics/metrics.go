// Package metrics exposes the Prometheus collectors of the attendance service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hris_attendance"

var (
	holidayChecksCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "holiday",
		Name:      "checks_total",
		Help:      "Number of holiday lookups grouped by outcome.",
	}, []string{"outcome"})

	marksCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "attendance",
		Name:      "marks_total",
		Help:      "Number of mark-in/mark-out actions grouped by action and resulting status.",
	}, []string{"action", "status"})

	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "report",
		Name:      "monthly_analysis_duration_seconds",
		Help:      "Time spent building a monthly analysis, including data fetch.",
		Buckets:   prometheus.DefBuckets,
	})

	weeklyDriftGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "holiday",
		Name:      "weekly_rule_drift_days",
		Help:      "Weekdays whose weekly holiday rule disagrees with the weekly-off configuration (missing plus stale), per company.",
	}, []string{"company_id"})

	lastDriftCheckGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "holiday",
		Name:      "last_drift_check_timestamp_seconds",
		Help:      "Unix timestamp of the most recent weekly drift check.",
	})
)

func init() {
	prometheus.MustRegister(holidayChecksCounter, marksCounter, analysisDuration, weeklyDriftGauge, lastDriftCheckGauge)
}

// RecordHolidayCheck counts one isHoliday lookup.
func RecordHolidayCheck(isHoliday bool) {
	outcome := "working"
	if isHoliday {
		outcome = "holiday"
	}
	holidayChecksCounter.WithLabelValues(outcome).Inc()
}

// RecordMark counts a mark-in ("in") or mark-out ("out").
func RecordMark(action, status string) {
	marksCounter.WithLabelValues(action, status).Inc()
}

// ObserveAnalysis records the duration of a monthly analysis started at start.
func ObserveAnalysis(start time.Time) {
	analysisDuration.Observe(time.Since(start).Seconds())
}

// RecordWeeklyDrift sets the drift gauge for one company.
func RecordWeeklyDrift(companyID string, missing int) {
	weeklyDriftGauge.WithLabelValues(companyID).Set(float64(missing))
}

// RecordDriftCheck updates the drift check watermark.
func RecordDriftCheck(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastDriftCheckGauge.Set(float64(ts.Unix()))
}
