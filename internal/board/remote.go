package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// TransitionRejectedError is returned when the server refuses a status
// transition. Detail carries the server's human-readable message.
type TransitionRejectedError struct {
	RecordID int64
	Detail   string
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("transition rejected for record %d: %s", e.RecordID, e.Detail)
}

// HTTPUpdater confirms transitions against the REST API's status-transition
// endpoint. It implements StatusUpdater.
type HTTPUpdater struct {
	BaseURL string
	Client  *http.Client
	Token   string
}

// UpdateStatus issues PATCH /applications/{id}/status and interprets the
// response. Any non-success response becomes a TransitionRejectedError so
// the session rolls back to the exact pre-drag state.
func (u *HTTPUpdater) UpdateStatus(ctx context.Context, id int64, status Status) error {
	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("failed to encode status update: %w", err)
	}

	url := fmt.Sprintf("%s/applications/%d/status", strings.TrimRight(u.BaseURL, "/"), id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create status update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if u.Token != "" {
		req.Header.Set("Authorization", "Bearer "+u.Token)
	}

	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("status update request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var payload struct {
		Error string `json:"error"`
	}
	detail := fmt.Sprintf("HTTP %d", resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		detail = payload.Error
	}
	return &TransitionRejectedError{RecordID: id, Detail: detail}
}
