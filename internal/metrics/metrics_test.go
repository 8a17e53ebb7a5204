package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/jjenkins/boardsite/internal/assistant"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

var (
	_ content.Recorder   = (*Metrics)(nil)
	_ assistant.Recorder = (*Metrics)(nil)
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("notices", "applied", 20*time.Millisecond)
	m.ObserveFetch("notices", "applied", 10*time.Millisecond)
	m.ObserveFetch("pages", "failed", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("notices", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("pages", "failed")))
}

func TestObserveRefreshCountsFailures(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRefresh(time.Second, 0)
	m.ObserveRefresh(time.Second, 3)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.refreshFailures))
}

func TestObserveMutationResult(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveMutation("notices", "create", nil)
	m.ObserveMutation("notices", "create", errors.New("denied"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutationTotal.WithLabelValues("notices", "create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutationTotal.WithLabelValues("notices", "create", "error")))
}

func TestCollectorsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObservePageView("/")
	m.ObserveAssistant("answered")

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
