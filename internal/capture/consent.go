package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// consentAttemptTimeout bounds each individual dismissal attempt.
// Most selectors simply won't match; waiting long for each would dominate
// capture time.
const consentAttemptTimeout = 1500 * time.Millisecond

// consentSelector is one heuristic for finding a consent banner's
// accept/dismiss control.
type consentSelector struct {
	// query is the CSS selector or XPath expression to try.
	query string

	// byXPath selects XPath matching instead of CSS.
	byXPath bool
}

// consentSelectors is the ordered list of dismissal heuristics.
// Attribute-based selectors for the common consent-management platforms
// come first because they are precise; text-based XPath heuristics follow
// as a catch-all for bespoke banners.
var consentSelectors = []consentSelector{
	// Consent-management platforms
	{query: "#onetrust-accept-btn-handler"},
	{query: "#CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll"},
	{query: ".cc-btn.cc-allow"},
	{query: "#didomi-notice-agree-button"},
	{query: "button[data-testid='uc-accept-all-button']"},
	{query: "#sp-cc-accept"},

	// Generic attribute heuristics
	{query: "button[id*='accept-cookie' i]"},
	{query: "button[id*='cookie-accept' i]"},
	{query: "button[aria-label*='accept cookies' i]"},
	{query: "button[title*='accept all' i]"},

	// Text heuristics (case-folded via translate)
	{query: `//button[contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'accept all')]`, byXPath: true},
	{query: `//button[contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'accept cookies')]`, byXPath: true},
	{query: `//button[contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'i agree')]`, byXPath: true},
	{query: `//a[contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'got it')]`, byXPath: true},
}

// dismissConsentBanner tries the selector heuristics in order and clicks the
// first visible match. All failures are swallowed: consent dismissal is
// best-effort and must never fail a capture. Returns true when a banner
// control was clicked, for logging only.
func dismissConsentBanner(ctx context.Context, logger *slog.Logger) bool {
	for _, sel := range consentSelectors {
		attemptCtx, cancel := context.WithTimeout(ctx, consentAttemptTimeout)

		opts := []chromedp.QueryOption{chromedp.NodeVisible}
		if sel.byXPath {
			opts = append(opts, chromedp.BySearch)
		} else {
			opts = append(opts, chromedp.ByQuery)
		}

		err := chromedp.Run(attemptCtx, chromedp.Click(sel.query, opts...))
		cancel()

		if err == nil {
			logger.Debug("consent banner dismissed", "selector", sel.query)
			return true
		}

		// A cancelled parent context means the capture itself is done for;
		// stop trying selectors instead of burning the remaining attempts.
		if ctx.Err() != nil {
			return false
		}
	}
	return false
}
