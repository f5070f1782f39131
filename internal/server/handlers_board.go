package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/crackats/internal/board"
	"github.com/jonathan/crackats/internal/db"
)

// ResetConfirmation is the exact phrase required to wipe all applications.
const ResetConfirmation = "DELETE ALL APPLICATIONS"

// UpdateStatusRequest represents a column move on the board.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BoardResponse groups applications into ordered status columns. Records
// whose stored status is not a known column are surfaced separately instead
// of being dropped.
type BoardResponse struct {
	Columns    []BoardColumn    `json:"columns"`
	Unassigned []db.Application `json:"unassigned"`
}

// BoardColumn is one status lane of the board.
type BoardColumn struct {
	Status string           `json:"status"`
	Count  int              `json:"count"`
	Cards  []db.Application `json:"cards"`
}

// handleBoard returns the kanban projection of all applications
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	apps, err := s.store.ListApplications(r.Context(), db.ListOptions{})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	b := board.Project(apps)
	resp := BoardResponse{Unassigned: b.Unassigned}
	for _, col := range board.Columns() {
		cards := b.Columns[col]
		resp.Columns = append(resp.Columns, BoardColumn{
			Status: col.String(),
			Count:  len(cards),
			Cards:  cards,
		})
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleStats returns aggregate pipeline statistics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.StatusCounts(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, board.StatsFromCounts(counts))
}

// handleUpdateStatus moves an application to another board column
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := board.Status(req.Status)
	if !status.Valid() {
		// Rejected transitions carry the reason so clients can roll back
		// their optimistic move and show it.
		s.errorResponse(w, http.StatusUnprocessableEntity, "Invalid status: "+req.Status)
		return
	}

	if err := s.store.UpdateApplicationStatus(r.Context(), id, status.String()); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"id":     r.PathValue("id"),
		"status": status.String(),
	})
}

// ResetRequest carries the confirmation phrase for wiping all data.
type ResetRequest struct {
	Confirm string `json:"confirm"`
}

// handleReset deletes every application after an exact-phrase confirmation
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Confirm != ResetConfirmation {
		s.errorResponse(w, http.StatusBadRequest, "Confirmation phrase does not match")
		return
	}

	deleted, err := s.store.ResetApplications(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
