package scrape

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted description length to consider a
// plain HTTP fetch sufficient. Shorter content suggests a JavaScript shell.
const MinContentLength = 200

// ShouldUseBrowser reports whether the extraction is thin enough to warrant
// a headless-browser re-render.
func ShouldUseBrowser(job *Job) bool {
	return job == nil || !job.Complete() || len(job.Description) < MinContentLength
}

// RenderWithBrowser loads the page in headless Chrome and returns the
// rendered HTML. Requires Chrome/Chromium on the system.
func RenderWithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[browser] rendering %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill in the posting.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[browser] rendered %d bytes", len(html))
	}
	return html, nil
}
