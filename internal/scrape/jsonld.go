package scrape

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseJSONLD extracts a JobPosting from embedded JSON-LD script blocks.
// Returns nil when no posting is present.
func parseJSONLD(doc *goquery.Document) *Job {
	var job *Job
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true
		}
		if posting := findJobPosting(payload); posting != nil {
			job = normalizeJobPosting(posting)
			return false
		}
		return true
	})
	return job
}

// findJobPosting walks arbitrarily nested JSON-LD for a node whose @type is
// (or includes) JobPosting.
func findJobPosting(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		switch jt := v["@type"].(type) {
		case string:
			if jt == "JobPosting" {
				return v
			}
		case []any:
			for _, item := range jt {
				if s, ok := item.(string); ok && s == "JobPosting" {
					return v
				}
			}
		}
		for _, child := range v {
			if found := findJobPosting(child); found != nil {
				return found
			}
		}
	case []any:
		for _, item := range v {
			if found := findJobPosting(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func normalizeJobPosting(posting map[string]any) *Job {
	title, _ := posting["title"].(string)
	if title == "" {
		title, _ = posting["name"].(string)
	}

	company := ""
	switch org := posting["hiringOrganization"].(type) {
	case map[string]any:
		company, _ = org["name"].(string)
	case []any:
		for _, item := range org {
			if m, ok := item.(map[string]any); ok {
				if name, _ := m["name"].(string); name != "" {
					company = name
					break
				}
			}
		}
	}

	desc, _ := posting["description"].(string)

	return &Job{
		Title:       strings.TrimSpace(title),
		Company:     strings.TrimSpace(company),
		Description: stripHTML(desc),
	}
}

var blockTagPattern = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>|</ul>|</ol>|</div>`)

// stripHTML converts an HTML fragment to plain text, preserving line breaks
// at block boundaries.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}
	withBreaks := blockTagPattern.ReplaceAllString(html, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withBreaks))
	if err != nil {
		return cleanText(html)
	}
	return cleanText(doc.Text())
}

// cleanText trims each line and drops empty ones.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// collapseSpaces normalizes inner whitespace of a single-line value.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
