package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSnapshotJSONShape(t *testing.T) {
	snap := AggregateSnapshot{
		TotalSteps:         2,
		PerCategory:        map[string]int{"Build": 1, "Util": 1},
		PerSecurityLevel:   map[string]int{"Trusted": 2},
		TotalExecutions:    5,
		TotalFailures:      1,
		OverallSuccessRate: 0.8,
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var roundTripped map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, float64(2), roundTripped["total_steps"])
	assert.Equal(t, float64(5), roundTripped["total_executions"])
}
