package board

import "github.com/jonathan/crackats/internal/db"

// Stats holds the aggregates derived from the record store.
type Stats struct {
	Total        int            `json:"total"`
	ByStatus     map[Status]int `json:"by_status"`
	Unassigned   int            `json:"unassigned,omitempty"`
	ResponseRate float64        `json:"response_rate"`
}

// respondedStatuses are the stages that imply the employer reacted to a
// submitted application. Withdrawn is a candidate action, not a response.
var respondedStatuses = map[Status]bool{
	StatusShortlisted: true,
	StatusInterview:   true,
	StatusTechnical:   true,
	StatusOffer:       true,
	StatusRejected:    true,
}

// ComputeStats derives the aggregates from the full record set.
// Invariant: Total == sum(ByStatus) + Unassigned.
func ComputeStats(records []db.Application) Stats {
	counts := make(map[string]int, len(columnOrder))
	for _, rec := range records {
		counts[rec.Status]++
	}
	return StatsFromCounts(counts)
}

// StatsFromCounts derives the aggregates from per-status counts, as returned
// by the store's GROUP BY query. Missing statuses are zero-filled; counts for
// unrecognized statuses land in Unassigned.
//
// ResponseRate is the percentage of submitted applications (anything past
// "saved") that reached an employer-responsive stage. Zero submissions
// yields a rate of 0.
func StatsFromCounts(counts map[string]int) Stats {
	stats := Stats{ByStatus: make(map[Status]int, len(columnOrder))}
	for _, col := range columnOrder {
		stats.ByStatus[col] = 0
	}

	submitted, responded := 0, 0
	for raw, n := range counts {
		stats.Total += n
		status := Status(raw)
		if !status.Valid() {
			stats.Unassigned += n
			continue
		}
		stats.ByStatus[status] += n
		if status != StatusSaved {
			submitted += n
		}
		if respondedStatuses[status] {
			responded += n
		}
	}

	if submitted > 0 {
		stats.ResponseRate = 100 * float64(responded) / float64(submitted)
	}
	return stats
}
