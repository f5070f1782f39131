package board

import "github.com/jonathan/crackats/internal/db"

// Board is the display projection of the record set: the eight fixed columns
// plus any records whose status is not recognized. Unrecognized records are
// excluded from columns but surfaced here so they are never silently lost.
type Board struct {
	Columns    map[Status][]db.Application `json:"columns"`
	Unassigned []db.Application            `json:"unassigned,omitempty"`
}

// Project partitions records into the fixed columns, preserving input order
// within each column. Every column key is present even when empty.
func Project(records []db.Application) *Board {
	b := &Board{Columns: make(map[Status][]db.Application, len(columnOrder))}
	for _, col := range columnOrder {
		b.Columns[col] = []db.Application{}
	}

	for _, rec := range records {
		status := Status(rec.Status)
		if !status.Valid() {
			b.Unassigned = append(b.Unassigned, rec)
			continue
		}
		b.Columns[status] = append(b.Columns[status], rec)
	}
	return b
}

// Counts returns the number of cards per column.
func (b *Board) Counts() map[Status]int {
	counts := make(map[Status]int, len(columnOrder))
	for _, col := range columnOrder {
		counts[col] = len(b.Columns[col])
	}
	return counts
}

// Count returns the number of cards in one column.
func (b *Board) Count(col Status) int {
	return len(b.Columns[col])
}
