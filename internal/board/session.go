package board

import (
	"context"
	"fmt"

	"github.com/jonathan/crackats/internal/db"
)

// GestureState is the client-observed state of the current drag gesture.
type GestureState string

// Gesture states for a drag-and-drop status transition.
const (
	// StateIdle means no gesture is in progress.
	StateIdle GestureState = "idle"
	// StateDragging means a card is being dragged; its id is the payload.
	StateDragging GestureState = "dragging"
	// StatePendingConfirm means the card was moved optimistically and the
	// confirming request has not settled yet.
	StatePendingConfirm GestureState = "pending_confirm"
	// StateReconciled means the server acknowledged the transition; a
	// transient confirmation is visible until acknowledged.
	StateReconciled GestureState = "reconciled"
)

// DropRegion distinguishes the two drop-target granularities. Both resolve
// to the same column, so a drop anywhere within a column's bounds behaves
// identically to a drop on its inner card list.
type DropRegion string

// Drop target granularities.
const (
	RegionColumn   DropRegion = "column"
	RegionCardList DropRegion = "card-list"
)

// DropTarget identifies where a card was released.
type DropTarget struct {
	Column Status
	Region DropRegion
}

// Resolve returns the status a drop on this target transitions to.
// The region never changes the outcome.
func (t DropTarget) Resolve() Status {
	return t.Column
}

// StatusUpdater confirms a status transition against the authoritative
// record store. The server's transition endpoint is the usual implementation.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// Transition is one in-flight optimistic status change. It carries the exact
// prior status so a rollback restores the pre-drag state, not merely "a
// previous state".
type Transition struct {
	RecordID int64
	From     Status
	To       Status
}

// Session is the client-side view of the board: the fetched records plus the
// state of the current drag gesture. The record store remains the single
// source of truth; the session's optimistic view is always reconciled with
// it and never treated as authoritative.
//
// A session models one interactive client and is not safe for concurrent
// use. At most one transition is in flight at a time.
type Session struct {
	records []db.Application
	index   map[int64]int

	state   GestureState
	dragID  int64
	pending *Transition
	alert   string
}

// NewSession creates a session over a fetched record set.
func NewSession(records []db.Application) *Session {
	s := &Session{state: StateIdle}
	s.Refresh(records)
	return s
}

// Refresh replaces the session's view with a fresh fetch from the store.
// Any gesture in progress is abandoned.
func (s *Session) Refresh(records []db.Application) {
	s.records = make([]db.Application, len(records))
	copy(s.records, records)
	s.index = make(map[int64]int, len(records))
	for i := range s.records {
		s.index[s.records[i].ID] = i
	}
	s.state = StateIdle
	s.dragID = 0
	s.pending = nil
}

// State returns the current gesture state.
func (s *Session) State() GestureState {
	return s.state
}

// Records returns the session's current view of the record set.
func (s *Session) Records() []db.Application {
	return s.records
}

// Record returns the session's view of one record, or nil if unknown.
func (s *Session) Record(id int64) *db.Application {
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	return &s.records[i]
}

// Board projects the session's current view into columns.
func (s *Session) Board() *Board {
	return Project(s.records)
}

// Stats recomputes the aggregates over the session's current view.
func (s *Session) Stats() Stats {
	return ComputeStats(s.records)
}

// Alert returns the user-visible error from the last failed transition,
// or "" when there is none.
func (s *Session) Alert() string {
	return s.alert
}

// DismissAlert clears the user-visible error.
func (s *Session) DismissAlert() {
	s.alert = ""
}

// BeginDrag starts a drag gesture, capturing the record id as the payload.
func (s *Session) BeginDrag(id int64) error {
	if s.state != StateIdle {
		return fmt.Errorf("cannot begin drag in state %s", s.state)
	}
	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("unknown record id %d", id)
	}
	s.state = StateDragging
	s.dragID = id
	return nil
}

// CancelDrag ends a drag that was released outside any valid target.
// No state changes and no request are made.
func (s *Session) CancelDrag() {
	if s.state != StateDragging {
		return
	}
	s.state = StateIdle
	s.dragID = 0
}

// Drop releases the dragged card on a target. Dropping on the card's current
// column is a no-op: no transition is returned and no request should be sent.
// Dropping on a different column applies the move optimistically and returns
// the transition to be confirmed via Resolve (or Commit/Rollback directly).
func (s *Session) Drop(target DropTarget) (*Transition, error) {
	if s.state != StateDragging {
		return nil, fmt.Errorf("cannot drop in state %s", s.state)
	}

	id := s.dragID
	s.state = StateIdle
	s.dragID = 0

	to := target.Resolve()
	if !to.Valid() {
		// Equivalent to releasing outside any valid target.
		return nil, nil
	}

	rec := s.Record(id)
	if rec == nil {
		return nil, fmt.Errorf("unknown record id %d", id)
	}

	from := Status(rec.Status)
	if from == to {
		return nil, nil
	}

	// Optimistic move: the card changes column before the server confirms.
	rec.Status = string(to)
	t := &Transition{RecordID: id, From: from, To: to}
	s.pending = t
	s.state = StatePendingConfirm
	return t, nil
}

// Commit marks a pending transition as acknowledged by the server. The
// optimistic move is already applied, so this only advances the gesture to
// the transient confirmation state.
func (s *Session) Commit(t *Transition) error {
	if err := s.checkPending(t); err != nil {
		return err
	}
	s.pending = nil
	s.state = StateReconciled
	return nil
}

// AcknowledgeConfirm clears the transient visual confirmation after the
// fixed display delay, returning the session to idle.
func (s *Session) AcknowledgeConfirm() {
	if s.state == StateReconciled {
		s.state = StateIdle
	}
}

// Rollback reverts a pending transition after the server rejected it or the
// request errored. The card returns to its exact pre-drag status and the
// cause is surfaced as a user-visible alert.
func (s *Session) Rollback(t *Transition, cause error) error {
	if err := s.checkPending(t); err != nil {
		return err
	}

	rec := s.Record(t.RecordID)
	if rec != nil {
		rec.Status = string(t.From)
	}
	s.pending = nil
	s.state = StateIdle
	if cause != nil {
		s.alert = cause.Error()
	}
	return nil
}

// Resolve drives the two-phase commit for a transition: it issues the
// confirming request and applies either the commit or the rollback. The
// session stays in PendingConfirm until the request settles; no client-side
// timeout is imposed here. No retry is attempted on failure.
func (s *Session) Resolve(ctx context.Context, t *Transition, updater StatusUpdater) error {
	if err := s.checkPending(t); err != nil {
		return err
	}

	if err := updater.UpdateStatus(ctx, t.RecordID, t.To); err != nil {
		if rbErr := s.Rollback(t, err); rbErr != nil {
			return rbErr
		}
		return err
	}
	return s.Commit(t)
}

func (s *Session) checkPending(t *Transition) error {
	if s.state != StatePendingConfirm {
		return fmt.Errorf("no transition pending (state %s)", s.state)
	}
	if t == nil || s.pending == nil || *t != *s.pending {
		return fmt.Errorf("transition does not match the pending one")
	}
	return nil
}
