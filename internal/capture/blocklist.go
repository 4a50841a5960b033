package capture

import "strings"

// trackerPatterns is the static deny-list of tracker and analytics domains.
// Requests whose URL contains any of these substrings are aborted before
// they reach the network. Blocking them reduces capture noise (consent
// pings, beacons) and shortens the wait for network quiescence.
//
// The list is deliberately static: it targets the handful of ubiquitous
// trackers, not completeness. A missed tracker costs a little capture time,
// nothing more.
var trackerPatterns = []string{
	"google-analytics.com",
	"googletagmanager.com",
	"doubleclick.net",
	"googlesyndication.com",
	"connect.facebook.net",
	"facebook.com/tr",
	"hotjar.com",
	"mixpanel.com",
	"segment.com",
	"segment.io",
	"amplitude.com",
	"fullstory.com",
	"clarity.ms",
	"mouseflow.com",
	"crazyegg.com",
	"quantserve.com",
	"scorecardresearch.com",
	"adservice.google.",
	"analytics.tiktok.com",
	"snap.licdn.com",
}

// isBlockedURL reports whether a request URL matches the tracker deny-list.
func isBlockedURL(url string) bool {
	lower := strings.ToLower(url)
	for _, pattern := range trackerPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
