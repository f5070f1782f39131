// Package scrape extracts job postings (title, company, description) from
// job board URLs. It tries structured JSON-LD data first, then falls back to
// platform-specific HTML extraction, and finally to a headless browser for
// JavaScript-rendered pages.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CrackATS/1.0)"

// Job holds the extracted fields of a job posting.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Complete reports whether the extraction produced enough data to act on.
// Postings without a title or description are treated as failed scrapes.
func (j *Job) Complete() bool {
	return j != nil && j.Title != "" && j.Description != ""
}

// AuthWallError indicates the page is hidden behind a sign-in wall.
type AuthWallError struct {
	URL string
}

func (e *AuthWallError) Error() string {
	return fmt.Sprintf("authentication wall at %s: export cookies or save the page as HTML", e.URL)
}

// CaptchaError indicates the page is protected by a CAPTCHA challenge.
type CaptchaError struct {
	URL string
}

func (e *CaptchaError) Error() string {
	return fmt.Sprintf("blocked by CAPTCHA at %s: save the page as HTML and retry", e.URL)
}

// NoDataError indicates the page was fetched but no job data was found.
type NoDataError struct {
	URL string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no job data found at %s: the posting may be blocked or no longer available", e.URL)
}

// FetchError indicates the page could not be retrieved at all.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Options configures scraping behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool
	Verbose    bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Scraper extracts job postings from URLs. Concurrent scrapes of the same
// URL are coalesced into a single fetch.
type Scraper struct {
	opts   *Options
	client *http.Client
	group  singleflight.Group
}

// New creates a scraper.
func New(opts *Options) *Scraper {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Scraper{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// Scrape fetches and extracts the job posting at the URL.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Job, error) {
	v, err, _ := s.group.Do(rawURL, func() (any, error) {
		return s.scrape(ctx, rawURL)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Job), nil
}

func (s *Scraper) scrape(ctx context.Context, rawURL string) (*Job, error) {
	html, err := s.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(rawURL)
	job, err := ParseHTML(html, platform)
	if err != nil {
		return nil, err
	}

	// JavaScript-heavy pages often serve an empty shell on the first fetch.
	if s.opts.UseBrowser && ShouldUseBrowser(job) {
		if s.opts.Verbose {
			log.Printf("[scrape] thin extraction for %s, rendering with browser", rawURL)
		}
		rendered, berr := RenderWithBrowser(ctx, rawURL, s.opts.Timeout, s.opts.Verbose)
		if berr == nil {
			if rendered2, perr := ParseHTML(rendered, platform); perr == nil && rendered2.Complete() {
				job = rendered2
			}
		} else if s.opts.Verbose {
			log.Printf("[scrape] browser fallback failed: %v", berr)
		}
	}

	if !job.Complete() {
		if isCaptcha(html) {
			return nil, &CaptchaError{URL: rawURL}
		}
		if isAuthWall(html) {
			return nil, &AuthWallError{URL: rawURL}
		}
		return nil, &NoDataError{URL: rawURL}
	}
	return job, nil
}

// ParseHTML extracts a job posting from raw HTML. It never returns an error
// for missing data; callers check Complete. Platform hints only affect which
// fallback extractors run.
func ParseHTML(html string, platform Platform) (*Job, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	job := parseJSONLD(doc)
	if job.Complete() {
		return job, nil
	}

	var fallback *Job
	switch platform {
	case PlatformLinkedIn:
		fallback = parseLinkedIn(doc)
	case PlatformIndeed:
		fallback = parseIndeed(doc)
	default:
		fallback = parseGeneric(doc, platform)
	}

	if fallback.Complete() || job == nil {
		return merge(fallback, job), nil
	}
	return merge(job, fallback), nil
}

// merge fills empty fields of primary from secondary.
func merge(primary, secondary *Job) *Job {
	if primary == nil {
		if secondary == nil {
			return &Job{}
		}
		return secondary
	}
	if secondary == nil {
		return primary
	}
	if primary.Title == "" {
		primary.Title = secondary.Title
	}
	if primary.Company == "" {
		primary.Company = secondary.Company
	}
	if primary.Description == "" {
		primary.Description = secondary.Description
	}
	return primary
}

func (s *Scraper) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	// LinkedIn signals blocks with 999; treat any non-OK body as parseable
	// anyway, since block pages still carry auth-wall/CAPTCHA markers.
	if resp.StatusCode != http.StatusOK && len(body) == 0 {
		return "", &FetchError{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}

var authWallMarkers = []string{
	"sign in to view",
	"join now to see",
	"authwall",
	`"isloggedin":false`,
	"login to view",
	"sign in to see",
	"join to view",
	"sign in or register",
	"log in to view",
}

func isAuthWall(html string) bool {
	lower := strings.ToLower(html)
	for _, marker := range authWallMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func isCaptcha(html string) bool {
	lower := strings.ToLower(html)
	return strings.Contains(lower, "captcha") ||
		strings.Contains(lower, "verify you are a human")
}
