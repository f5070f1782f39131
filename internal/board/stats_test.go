package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/crackats/internal/db"
)

// TestComputeStats_Empty verifies zero records produce zeroed aggregates
func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.ResponseRate)
	require.Len(t, stats.ByStatus, 8)
	for _, col := range Columns() {
		assert.Equal(t, 0, stats.ByStatus[col])
	}
}

// TestComputeStats_TotalEqualsSum verifies the core invariant
// total == sum(by_status) + unassigned
func TestComputeStats_TotalEqualsSum(t *testing.T) {
	records := []db.Application{
		app(1, "saved"),
		app(2, "applied"),
		app(3, "interview"),
		app(4, "rejected"),
		app(5, "phone_screen"), // unrecognized
	}

	stats := ComputeStats(records)

	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	assert.Equal(t, stats.Total, sum+stats.Unassigned)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Unassigned)
}

// TestStatsFromCounts verifies aggregation from per-status counts, including
// zero-fill of absent columns and unassigned overflow for unknown statuses
func TestStatsFromCounts(t *testing.T) {
	stats := StatsFromCounts(map[string]int{
		"saved":        2,
		"applied":      3,
		"interview":    1,
		"phone_screen": 2,
	})

	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 2, stats.Unassigned)
	require.Len(t, stats.ByStatus, 8)
	assert.Equal(t, 0, stats.ByStatus[StatusOffer])
	assert.Equal(t, 3, stats.ByStatus[StatusApplied])
	// Four submitted, one responded.
	assert.InDelta(t, 25.0, stats.ResponseRate, 0.001)
}

// TestComputeStats_ResponseRate verifies the documented formula: percentage
// of submitted applications (past saved) that reached an employer-responsive
// stage; withdrawn and applied are non-responses
func TestComputeStats_ResponseRate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     float64
	}{
		{"all saved", []string{"saved", "saved"}, 0},
		{"applied only", []string{"applied", "applied"}, 0},
		{"half responded", []string{"applied", "interview"}, 50},
		{"rejection counts as response", []string{"rejected"}, 100},
		{"withdrawn is not a response", []string{"withdrawn", "offer"}, 50},
		{"saved excluded from denominator", []string{"saved", "saved", "interview"}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []db.Application
			for i, status := range tt.statuses {
				records = append(records, app(int64(i+1), status))
			}
			stats := ComputeStats(records)
			assert.InDelta(t, tt.want, stats.ResponseRate, 0.001)
		})
	}
}
