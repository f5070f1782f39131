// Package docs manages per-job artifact folders: naming, the saved job
// description, and the generated resume and cover letter files.
package docs

import (
	"regexp"
	"runtime"
	"strings"
	"unicode"
)

const (
	maxSlugLen    = 80
	abbrevLen     = 4
	maxSlugWords  = 6
	defaultFolder = "Job-Posting"
)

var nonAlnumPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)
var dashRunPattern = regexp.MustCompile(`-+`)

// Scraped company strings sometimes carry CSS fragments; these words are
// dropped when building the slug.
var noiseWords = map[string]bool{
	"webkit": true, "inline": true, "block": true, "flex": true,
	"display": true, "margin": true, "padding": true, "color": true,
	"inherit": true, "auto": true, "rem": true, "em": true, "px": true,
	"true": true, "false": true,
}

var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// MakeFolderName builds a filesystem-safe folder name from a job title and
// company, e.g. "Seni-Plat-Engi-Acme-Corp".
func MakeFolderName(title, company string) string {
	t := abbrev(title)
	c := companySlug(company)

	var slug string
	switch {
	case t != "" && c != "":
		slug = t + "-" + c
	case t != "":
		slug = t
	case c != "":
		slug = c
	default:
		slug = defaultFolder
	}
	return safeSlug(trimSlug(slug))
}

// words splits text into alphanumeric words.
func words(text string) []string {
	return strings.Fields(nonAlnumPattern.ReplaceAllString(text, " "))
}

// isNoise reports whether a word looks like scraping debris rather than part
// of a company name.
func isNoise(w string) bool {
	lo := strings.ToLower(w)
	if noiseWords[lo] || strings.HasPrefix(lo, "css") {
		return true
	}
	if len(w) > 24 {
		return true
	}
	if len(w) > 4 && hasDigit(w) && hasAlpha(w) {
		return true
	}
	return false
}

// abbrev shortens each title word to at most abbrevLen characters.
func abbrev(title string) string {
	parts := words(title)
	for i, w := range parts {
		if len(w) > abbrevLen {
			parts[i] = w[:abbrevLen]
		}
	}
	return strings.Join(parts, "-")
}

// companySlug keeps up to maxSlugWords clean words from the company name.
// Noise before the first clean word is skipped; noise after it ends the slug.
func companySlug(company string) string {
	all := words(company)
	var result []string
	for _, w := range all {
		if isNoise(w) {
			if len(result) > 0 {
				break
			}
			continue
		}
		result = append(result, w)
		if len(result) >= maxSlugWords {
			break
		}
	}
	if len(result) == 0 {
		if len(all) > 4 {
			all = all[:4]
		}
		result = all
	}
	return strings.Join(result, "-")
}

// trimSlug collapses dash runs and cuts the slug at a word boundary.
func trimSlug(slug string) string {
	slug = strings.Trim(dashRunPattern.ReplaceAllString(slug, "-"), "-")
	if len(slug) <= maxSlugLen {
		return slug
	}
	acc := ""
	for _, p := range strings.Split(slug, "-") {
		test := p
		if acc != "" {
			test = acc + "-" + p
		}
		if len(test) > maxSlugLen {
			break
		}
		acc = test
	}
	if acc = strings.Trim(acc, "-"); acc != "" {
		return acc
	}
	return strings.TrimRight(slug[:maxSlugLen], "-")
}

// safeSlug guards against empty and Windows-reserved names.
func safeSlug(slug string) string {
	slug = strings.Trim(slug, " .")
	if slug == "" {
		return defaultFolder
	}
	if runtime.GOOS == "windows" {
		base := strings.ToUpper(strings.SplitN(slug, ".", 2)[0])
		if windowsReserved[base] {
			slug += "-job"
		}
	}
	return slug
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
