package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementCheckinWrite(t *testing.T) {
	before := testutil.ToFloat64(CheckinWrites.WithLabelValues("toggle", "true"))

	IncrementCheckinWrite("toggle", true)
	IncrementCheckinWrite("toggle", true)
	IncrementCheckinWrite("toggle", false)

	assert.Equal(t, before+2, testutil.ToFloat64(CheckinWrites.WithLabelValues("toggle", "true")))
}

func TestIncrementReportBuild(t *testing.T) {
	before := testutil.ToFloat64(ReportBuilds.WithLabelValues("overview"))

	IncrementReportBuild("overview")

	assert.Equal(t, before+1, testutil.ToFloat64(ReportBuilds.WithLabelValues("overview")))
}

func TestRecordHistograms(t *testing.T) {
	RecordHTTPRequestDuration("GET", "/healthz", "200", 3*time.Millisecond)
	RecordSnapshotLoad(time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), 1)
	assert.Equal(t, 1, testutil.CollectAndCount(SnapshotLoadDuration))
}
