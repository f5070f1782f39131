package scrape

import "github.com/PuerkitoBio/goquery"

var indeedDescriptionSelectors = []string{
	"#jobDescriptionText",
	"[data-testid='jobDescriptionText']",
	"[data-testid='job-description']",
	".jobDescriptionText",
}

var indeedCompanySelectors = []string{
	"[data-testid='inlineHeader-companyName']",
	"[data-testid='company-name']",
	".companyName",
	".company-name",
}

// parseIndeed extracts a posting from Indeed HTML.
func parseIndeed(doc *goquery.Document) *Job {
	title := collapseSpaces(doc.Find("h1").First().Text())
	if title == "" {
		title = collapseSpaces(metaContent(doc, "og:title"))
	}

	company := ""
	if attr, ok := doc.Find("[data-company-name]").First().Attr("data-company-name"); ok && hasLetter(attr) {
		company = collapseSpaces(attr)
	}
	if company == "" {
		company = firstText(doc, indeedCompanySelectors)
	}

	desc := firstBlockText(doc, indeedDescriptionSelectors)
	if desc == "" {
		desc = cleanText(metaContent(doc, "og:description"))
	}

	if title == "" && company == "" && desc == "" {
		return nil
	}
	return &Job{Title: title, Company: company, Description: desc}
}

// parseGeneric extracts a posting from an unrecognized (or ATS) platform
// using og metadata for title/company and content selectors for the body.
func parseGeneric(doc *goquery.Document, platform Platform) *Job {
	title := collapseSpaces(metaContent(doc, "og:title"))
	if title == "" {
		title = collapseSpaces(doc.Find("h1").First().Text())
	}

	company := collapseSpaces(metaContent(doc, "og:site_name"))

	desc := firstBlockText(doc, platformContentSelectors(platform))
	if desc == "" {
		desc = cleanText(metaContent(doc, "og:description"))
	}

	if title == "" && company == "" && desc == "" {
		return nil
	}
	return &Job{Title: title, Company: company, Description: desc}
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
