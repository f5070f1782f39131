package board

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/crackats/internal/db"
)

// recordingUpdater counts confirmation requests and can be told to fail.
type recordingUpdater struct {
	calls int
	err   error
}

func (u *recordingUpdater) UpdateStatus(_ context.Context, _ int64, _ Status) error {
	u.calls++
	return u.err
}

func newSessionWithOne(status string) *Session {
	return NewSession([]db.Application{app(7, status)})
}

// TestSession_BeginDrag verifies the Idle -> Dragging transition
func TestSession_BeginDrag(t *testing.T) {
	s := newSessionWithOne("saved")

	require.NoError(t, s.BeginDrag(7))
	assert.Equal(t, StateDragging, s.State())

	// A second drag cannot start mid-gesture.
	assert.Error(t, s.BeginDrag(7))
}

// TestSession_BeginDrag_UnknownRecord verifies unknown ids are refused
func TestSession_BeginDrag_UnknownRecord(t *testing.T) {
	s := newSessionWithOne("saved")

	assert.Error(t, s.BeginDrag(99))
	assert.Equal(t, StateIdle, s.State())
}

// TestSession_CancelDrag verifies a cancelled drag changes nothing
func TestSession_CancelDrag(t *testing.T) {
	s := newSessionWithOne("saved")
	require.NoError(t, s.BeginDrag(7))

	s.CancelDrag()

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "saved", s.Record(7).Status)
}

// TestSession_Drop_SameColumnIsNoOp verifies dropping on the current column
// issues no request and changes no counts
func TestSession_Drop_SameColumnIsNoOp(t *testing.T) {
	s := newSessionWithOne("saved")
	before := s.Board().Counts()

	require.NoError(t, s.BeginDrag(7))
	tr, err := s.Drop(DropTarget{Column: StatusSaved, Region: RegionCardList})

	require.NoError(t, err)
	assert.Nil(t, tr)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, before, s.Board().Counts())
}

// TestSession_Drop_OptimisticMove verifies the card moves before confirmation
func TestSession_Drop_OptimisticMove(t *testing.T) {
	s := newSessionWithOne("saved")

	require.NoError(t, s.BeginDrag(7))
	tr, err := s.Drop(DropTarget{Column: StatusInterview, Region: RegionColumn})

	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, StatePendingConfirm, s.State())
	assert.Equal(t, Transition{RecordID: 7, From: StatusSaved, To: StatusInterview}, *tr)

	// Optimistically applied: status and counts already reflect the target.
	assert.Equal(t, "interview", s.Record(7).Status)
	counts := s.Board().Counts()
	assert.Equal(t, 0, counts[StatusSaved])
	assert.Equal(t, 1, counts[StatusInterview])
}

// TestSession_DropRegions_ResolveIdentically verifies both drop-target
// granularities produce the same outcome
func TestSession_DropRegions_ResolveIdentically(t *testing.T) {
	for _, region := range []DropRegion{RegionColumn, RegionCardList} {
		s := newSessionWithOne("saved")
		require.NoError(t, s.BeginDrag(7))

		tr, err := s.Drop(DropTarget{Column: StatusApplied, Region: region})

		require.NoError(t, err)
		require.NotNil(t, tr, "region %s", region)
		assert.Equal(t, StatusApplied, tr.To)
		assert.Equal(t, "applied", s.Record(7).Status)
	}
}

// TestSession_Resolve_ServerAccepts covers the success scenario: saved ->
// interview, server acknowledges, counts shift by exactly one
func TestSession_Resolve_ServerAccepts(t *testing.T) {
	s := newSessionWithOne("saved")
	updater := &recordingUpdater{}

	require.NoError(t, s.BeginDrag(7))
	tr, err := s.Drop(DropTarget{Column: StatusInterview, Region: RegionCardList})
	require.NoError(t, err)
	require.NotNil(t, tr)

	require.NoError(t, s.Resolve(context.Background(), tr, updater))

	assert.Equal(t, 1, updater.calls)
	assert.Equal(t, StateReconciled, s.State())
	assert.Equal(t, "interview", s.Record(7).Status)

	counts := s.Board().Counts()
	assert.Equal(t, 0, counts[StatusSaved])
	assert.Equal(t, 1, counts[StatusInterview])

	stats := s.Stats()
	assert.Equal(t, 1, stats.ByStatus[StatusInterview])
	assert.InDelta(t, 100.0, stats.ResponseRate, 0.001)

	// Transient confirmation clears back to idle.
	s.AcknowledgeConfirm()
	assert.Equal(t, StateIdle, s.State())
}

// TestSession_Resolve_ServerRejects covers the failure scenario: the card
// returns to its exact pre-drag column and an alert is surfaced
func TestSession_Resolve_ServerRejects(t *testing.T) {
	s := newSessionWithOne("saved")
	updater := &recordingUpdater{err: &TransitionRejectedError{RecordID: 7, Detail: "status locked"}}

	require.NoError(t, s.BeginDrag(7))
	tr, err := s.Drop(DropTarget{Column: StatusInterview, Region: RegionColumn})
	require.NoError(t, err)

	err = s.Resolve(context.Background(), tr, updater)
	require.Error(t, err)

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "saved", s.Record(7).Status)

	counts := s.Board().Counts()
	assert.Equal(t, 1, counts[StatusSaved])
	assert.Equal(t, 0, counts[StatusInterview])

	assert.Contains(t, s.Alert(), "status locked")
	s.DismissAlert()
	assert.Empty(t, s.Alert())
}

// TestSession_Resolve_NetworkError verifies a transport failure also rolls
// back to the exact prior status
func TestSession_Resolve_NetworkError(t *testing.T) {
	s := newSessionWithOne("applied")
	updater := &recordingUpdater{err: errors.New("connection refused")}

	require.NoError(t, s.BeginDrag(7))
	tr, err := s.Drop(DropTarget{Column: StatusOffer, Region: RegionCardList})
	require.NoError(t, err)

	require.Error(t, s.Resolve(context.Background(), tr, updater))

	assert.Equal(t, "applied", s.Record(7).Status)
	assert.Contains(t, s.Alert(), "connection refused")
}

// TestSession_NoRetryAfterFailure verifies a failed transition is not
// retried automatically; the user must re-drag
func TestSession_NoRetryAfterFailure(t *testing.T) {
	s := newSessionWithOne("saved")
	updater := &recordingUpdater{err: errors.New("boom")}

	require.NoError(t, s.BeginDrag(7))
	tr, _ := s.Drop(DropTarget{Column: StatusApplied, Region: RegionColumn})
	require.Error(t, s.Resolve(context.Background(), tr, updater))
	assert.Equal(t, 1, updater.calls)

	// Resolving the settled transition again is refused.
	assert.Error(t, s.Resolve(context.Background(), tr, updater))
	assert.Equal(t, 1, updater.calls)

	// Re-dragging starts a fresh gesture.
	updater.err = nil
	require.NoError(t, s.BeginDrag(7))
	tr, err := s.Drop(DropTarget{Column: StatusApplied, Region: RegionColumn})
	require.NoError(t, err)
	require.NoError(t, s.Resolve(context.Background(), tr, updater))
	assert.Equal(t, "applied", s.Record(7).Status)
}

// TestSession_Refresh_AbandonsGesture verifies reconciliation with a fresh
// fetch resets gesture state
func TestSession_Refresh_AbandonsGesture(t *testing.T) {
	s := newSessionWithOne("saved")
	require.NoError(t, s.BeginDrag(7))

	s.Refresh([]db.Application{app(7, "offer"), app(8, "saved")})

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "offer", s.Record(7).Status)
	assert.Equal(t, 2, s.Stats().Total)
}

// TestSession_StatusAlwaysRecognizedAfterOperations verifies that no session
// operation can introduce an out-of-enum status
func TestSession_StatusAlwaysRecognizedAfterOperations(t *testing.T) {
	s := newSessionWithOne("saved")

	require.NoError(t, s.BeginDrag(7))
	tr, err := s.Drop(DropTarget{Column: Status("bogus"), Region: RegionColumn})
	require.NoError(t, err)
	assert.Nil(t, tr)
	assert.Equal(t, StateIdle, s.State())
	assert.True(t, Status(s.Record(7).Status).Valid())
}
