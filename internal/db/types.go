package db

import "time"

// Application represents one tracked job application.
type Application struct {
	ID              int64     `json:"id"`
	Company         string    `json:"company"`
	Title           string    `json:"title"`
	URL             string    `json:"url,omitempty"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	DateApplied     string    `json:"date_applied,omitempty"`
	Location        string    `json:"location,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	ResumePath      string    `json:"resume_path,omitempty"`
	CoverLetterPath string    `json:"cover_letter_path,omitempty"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
}

// HasTag reports whether the application carries the given tag.
func (a *Application) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NewApplication holds the fields accepted when creating an application.
type NewApplication struct {
	Company         string
	Title           string
	URL             string
	Status          string
	Notes           string
	DateApplied     string
	Location        string
	Salary          string
	ResumePath      string
	CoverLetterPath string
	Tags            []string
}

// ApplicationUpdate holds optional field updates. Nil pointers leave the
// corresponding column untouched, mirroring a partial PUT.
type ApplicationUpdate struct {
	Company         *string
	Title           *string
	URL             *string
	Status          *string
	Notes           *string
	DateApplied     *string
	Location        *string
	Salary          *string
	ResumePath      *string
	CoverLetterPath *string
	Tags            *[]string
}

// ListOptions holds optional filters for listing applications.
type ListOptions struct {
	Status string
	Limit  int
}
