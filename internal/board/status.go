// Package board implements the application status board: the fixed status
// columns, the projection of application records into them, the aggregate
// statistics, and the optimistic drag-and-drop transition state machine.
package board

// Status is one of the fixed pipeline stages an application moves through.
type Status string

// The eight pipeline statuses, in column display order.
const (
	StatusSaved       Status = "saved"
	StatusApplied     Status = "applied"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusTechnical   Status = "technical"
	StatusOffer       Status = "offer"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

var columnOrder = []Status{
	StatusSaved,
	StatusApplied,
	StatusShortlisted,
	StatusInterview,
	StatusTechnical,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

// Columns returns the fixed column order of the board.
// Callers must not mutate the returned slice.
func Columns() []Status {
	return columnOrder
}

// Valid reports whether s is one of the eight recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSaved, StatusApplied, StatusShortlisted, StatusInterview,
		StatusTechnical, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
