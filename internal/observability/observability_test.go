package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordIngest("product", nil)
	m.RecordQueryLatency("product", 10*time.Millisecond)
	m.RecordCandidateSetSize(42)
	m.RecordRankingDegradation()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(false)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordIngest("product", nil)
		m.RecordQueryLatency("product", time.Second)
		m.RecordCandidateSetSize(1)
		m.RecordRankingDegradation()
	})
}
