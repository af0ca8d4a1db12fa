// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGeneration(t *testing.T) {
	r := NewRegistry()

	r.ObserveGeneration(10*time.Millisecond, 4, 0, nil)
	r.ObserveGeneration(20*time.Millisecond, 3, 2, nil)
	r.ObserveGeneration(5*time.Millisecond, 0, 0, fmt.Errorf("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Generations.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Generations.WithLabelValues(ResultDiagnostics)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Generations.WithLabelValues(ResultFailed)))

	// The failed run keeps the gauges from the previous one.
	assert.Equal(t, 3.0, testutil.ToFloat64(r.Endpoints))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Diagnostics))
}

func TestObserveRequest(t *testing.T) {
	r := NewRegistry()
	r.ObserveRequest("/api.md", 200)
	r.ObserveRequest("/api.md", 200)
	r.ObserveRequest("/render/{format}", 400)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Requests.WithLabelValues("/api.md", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Requests.WithLabelValues("/render/{format}", "400")))
}

func TestGatherer(t *testing.T) {
	r := NewRegistry()
	r.ObserveGeneration(time.Millisecond, 1, 0, nil)

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["uridoc_generations_total"])
	assert.True(t, names["uridoc_generation_duration_seconds"])
	assert.True(t, names["uridoc_endpoints"])
	assert.True(t, names["uridoc_diagnostics"])
}
