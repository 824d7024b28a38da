package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWeeklyDrift(t *testing.T) {
	RecordWeeklyDrift("acme", 3)
	RecordWeeklyDrift("beta", 0)

	assert.Equal(t, 3.0, testutil.ToFloat64(weeklyDriftGauge.WithLabelValues("acme")))
	assert.Equal(t, 0.0, testutil.ToFloat64(weeklyDriftGauge.WithLabelValues("beta")))
}

func TestWeeklyDriftGauge_DescribesWeekdayCount(t *testing.T) {
	descs := make(chan *prometheus.Desc, 1)
	weeklyDriftGauge.Describe(descs)
	desc := <-descs

	require.NotNil(t, desc)
	assert.Contains(t, desc.String(), "Weekdays whose weekly holiday rule disagrees")
}

func TestRecordDriftCheck(t *testing.T) {
	ts := time.Unix(1750000000, 0)
	RecordDriftCheck(ts)
	assert.Equal(t, float64(ts.Unix()), testutil.ToFloat64(lastDriftCheckGauge))

	RecordDriftCheck(time.Time{})
	assert.Equal(t, float64(ts.Unix()), testutil.ToFloat64(lastDriftCheckGauge))
}
