package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/crackats/internal/scrape"
)

// ScrapeRequest asks the server to extract a posting from a URL.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// GenerateRequest runs the document pipeline for a URL or an inline payload
// captured by the bookmarklet.
type GenerateRequest struct {
	URL string           `json:"url,omitempty" validate:"omitempty,url"`
	Job *json.RawMessage `json:"job,omitempty"`
}

// handleScrape extracts a job posting without generating documents
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if s.scraper == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Scraping is not configured")
		return
	}

	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleGenerate runs the full pipeline synchronously and returns the
// artifact paths and the recorded application
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Document generation is not configured")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var req GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	switch {
	case req.Job != nil:
		job, err := scrape.ParsePayload(*req.Job)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		result, err := s.generator.RunWithJob(r.Context(), job, req.URL)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		s.jsonResponse(w, http.StatusCreated, result)
	case req.URL != "":
		result, err := s.generator.Run(r.Context(), req.URL)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		s.jsonResponse(w, http.StatusCreated, result)
	default:
		s.errorResponse(w, http.StatusBadRequest, "Either url or job is required")
	}
}
