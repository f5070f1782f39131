package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/crackats/internal/board"
	"github.com/jonathan/crackats/internal/db"
)

var validate = validator.New()

// CreateApplicationRequest represents the request to track a new application.
type CreateApplicationRequest struct {
	Company     string   `json:"company" validate:"required,min=1"`
	Title       string   `json:"title" validate:"required,min=1"`
	URL         string   `json:"url" validate:"omitempty,url"`
	Status      string   `json:"status,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	DateApplied string   `json:"date_applied,omitempty"`
	Location    string   `json:"location,omitempty"`
	Salary      string   `json:"salary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateApplicationRequest represents a partial update. Absent fields keep
// their stored values.
type UpdateApplicationRequest struct {
	Company     *string   `json:"company,omitempty"`
	Title       *string   `json:"title,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	DateApplied *string   `json:"date_applied,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Salary      *string   `json:"salary,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// ListApplicationsResponse represents the response for listing applications
type ListApplicationsResponse struct {
	Applications []db.Application `json:"applications"`
	Count        int              `json:"count"`
}

// handleListApplications lists applications with an optional status filter
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	opts := db.ListOptions{Limit: parseQueryInt(r, "limit", 0, 500)}

	if status := r.URL.Query().Get("status"); status != "" {
		if !board.Status(status).Valid() {
			s.errorResponse(w, http.StatusBadRequest, "Invalid status filter: "+status)
			return
		}
		opts.Status = status
	}

	apps, err := s.store.ListApplications(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListApplicationsResponse{
		Applications: apps,
		Count:        len(apps),
	})
}

// handleCreateApplication tracks a new application
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.Status != "" && !board.Status(req.Status).Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status: "+req.Status)
		return
	}

	app, err := s.store.CreateApplication(r.Context(), db.NewApplication{
		Company:     req.Company,
		Title:       req.Title,
		URL:         req.URL,
		Status:      req.Status,
		Notes:       req.Notes,
		DateApplied: req.DateApplied,
		Location:    req.Location,
		Salary:      req.Salary,
		Tags:        req.Tags,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

// handleGetApplication retrieves an application by ID
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// handleUpdateApplication applies a partial update to an application
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != nil && !board.Status(*req.Status).Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status: "+*req.Status)
		return
	}
	if req.Company != nil && *req.Company == "" {
		s.errorResponse(w, http.StatusBadRequest, "Company cannot be empty")
		return
	}
	if req.Title != nil && *req.Title == "" {
		s.errorResponse(w, http.StatusBadRequest, "Title cannot be empty")
		return
	}

	app, err := s.store.UpdateApplication(r.Context(), id, db.ApplicationUpdate{
		Company:     req.Company,
		Title:       req.Title,
		URL:         req.URL,
		Status:      req.Status,
		Notes:       req.Notes,
		DateApplied: req.DateApplied,
		Location:    req.Location,
		Salary:      req.Salary,
		Tags:        req.Tags,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// handleDeleteApplication removes an application
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	if err := s.store.DeleteApplication(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

// parseQueryInt parses an integer query parameter with a default and cap.
func parseQueryInt(r *http.Request, key string, def, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// extractValidationErrors formats the first validation error for responses.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
