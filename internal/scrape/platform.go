package scrape

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformLinkedIn is linkedin.com
	PlatformLinkedIn Platform = "linkedin"
	// PlatformIndeed is indeed.com and country variants
	PlatformIndeed Platform = "indeed"
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "linkedin.com") {
		return PlatformLinkedIn
	}
	if strings.Contains(host, "indeed.com") || strings.Contains(host, "indeed.ca") {
		return PlatformIndeed
	}
	if strings.Contains(host, "greenhouse.io") {
		return PlatformGreenhouse
	}
	if strings.Contains(host, "lever.co") {
		return PlatformLever
	}

	return PlatformUnknown
}

// platformContentSelectors returns description selectors for a platform,
// tried in order.
func platformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-description",
			".posting-page",
			".section-wrapper.page-full-width",
			".content",
		}
	default:
		return []string{
			".job-description",
			".job-content",
			"#job-description",
			"[data-testid='job-description']",
			"main",
			"article",
			".content",
			"#content",
		}
	}
}
