package scrape

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// LinkedIn rewrites its markup frequently; the og:title meta tag is the most
// stable source, with several known description containers as fallbacks.
var (
	hiringPattern    = regexp.MustCompile(`^(.+?)\s+hiring\s+(.+?)\s+in\s+`)
	atCompanyPattern = regexp.MustCompile(`(?i)^(.+?)\s+at\s+(.+?)\s*\|?\s*LinkedIn`)
	linkedinSuffix   = regexp.MustCompile(`(?i)\s*\|\s*LinkedIn\s*$`)
)

var linkedinDescriptionSelectors = []string{
	".show-more-less-html__markup",
	".description__text",
	".job-details-jobs-unified-description__text",
	"[data-testid='job-description']",
	".job-description",
}

var linkedinCompanySelectors = []string{
	".topcard__org-name-link",
	".top-card-layout__entity-info a",
	".topcard__flavor a",
}

// parseLinkedIn extracts a posting from LinkedIn HTML.
func parseLinkedIn(doc *goquery.Document) *Job {
	og := metaContent(doc, "og:title")

	var title, company string
	if m := hiringPattern.FindStringSubmatch(og); m != nil {
		// "Company hiring Title in Location"
		company, title = collapseSpaces(m[1]), collapseSpaces(m[2])
	} else if m := atCompanyPattern.FindStringSubmatch(og); m != nil {
		// "Title at Company | LinkedIn"
		title, company = collapseSpaces(m[1]), collapseSpaces(m[2])
	} else {
		title = collapseSpaces(linkedinSuffix.ReplaceAllString(og, ""))
	}

	desc := firstBlockText(doc, linkedinDescriptionSelectors)
	if desc == "" {
		desc = cleanText(metaContent(doc, "og:description"))
	}
	if desc == "" {
		desc = cleanText(metaContent(doc, "description"))
	}

	if company == "" {
		company = firstText(doc, linkedinCompanySelectors)
	}

	if title == "" && company == "" && desc == "" {
		return nil
	}
	return &Job{Title: title, Company: company, Description: desc}
}

// metaContent returns the content of a meta tag matched by property or name.
func metaContent(doc *goquery.Document, key string) string {
	if content, ok := doc.Find(`meta[property="` + key + `"]`).First().Attr("content"); ok {
		return content
	}
	content, _ := doc.Find(`meta[name="` + key + `"]`).First().Attr("content")
	return content
}

// firstText returns the trimmed text of the first selector that matches.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			if text := collapseSpaces(sel.First().Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// firstBlockText returns block-preserving text of the first matching selector.
func firstBlockText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			if html, err := sel.First().Html(); err == nil {
				if text := stripHTML(html); text != "" {
					return text
				}
			}
		}
	}
	return ""
}
