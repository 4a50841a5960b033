package capture

import (
	"context"
	"strings"
	"testing"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A context fresh from NewContext carries no target handler until the first
// Run attaches one. The request interceptor relies on this: it must resolve
// its executor per event, after the prep actions have run, or every paused
// request would be resumed through a nil target.
func TestFreshTabHasNoTargetBeforeFirstRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	if c := chromedp.FromContext(ctx); c.Target != nil {
		t.Fatal("fresh context already has a target; lazy executor resolution is unnecessary")
	}
}

func TestIsFrameIdleEvent(t *testing.T) {
	t.Parallel()

	const navigated = cdp.FrameID("F1")

	tests := []struct {
		name      string
		ev        *page.EventLifecycleEvent
		mainFrame cdp.FrameID
		want      bool
	}{
		{
			name:      "idle event for the navigated frame",
			ev:        &page.EventLifecycleEvent{Name: "networkIdle", FrameID: navigated},
			mainFrame: navigated,
			want:      true,
		},
		{
			name:      "idle event before navigation commits",
			ev:        &page.EventLifecycleEvent{Name: "networkIdle", FrameID: "about-blank-frame"},
			mainFrame: "",
			want:      false,
		},
		{
			name:      "idle event for another document",
			ev:        &page.EventLifecycleEvent{Name: "networkIdle", FrameID: "iframe-7"},
			mainFrame: navigated,
			want:      false,
		},
		{
			name:      "non-idle lifecycle event",
			ev:        &page.EventLifecycleEvent{Name: "DOMContentLoaded", FrameID: navigated},
			mainFrame: navigated,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isFrameIdleEvent(tt.ev, tt.mainFrame); got != tt.want {
				t.Errorf("isFrameIdleEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBlockedURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		blocked bool
	}{
		{name: "google analytics", url: "https://www.google-analytics.com/collect?v=1", blocked: true},
		{name: "tag manager", url: "https://www.googletagmanager.com/gtm.js?id=GTM-XXXX", blocked: true},
		{name: "facebook pixel", url: "https://www.facebook.com/tr?id=123", blocked: true},
		{name: "hotjar uppercase host", url: "https://static.HOTJAR.com/c/hotjar.js", blocked: true},
		{name: "target page itself", url: "https://example.com/", blocked: false},
		{name: "first-party script", url: "https://example.com/assets/app.js", blocked: false},
		{name: "cdn imagery", url: "https://cdn.example.com/hero.webp", blocked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isBlockedURL(tt.url); got != tt.blocked {
				t.Errorf("isBlockedURL(%q) = %v, want %v", tt.url, got, tt.blocked)
			}
		})
	}
}

func TestExtractMetaDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "standard description",
			html: `<html><head><meta name="description" content="A fine page."></head><body></body></html>`,
			want: "A fine page.",
		},
		{
			name: "og description",
			html: `<html><head><meta property="og:description" content="Social description"></head><body></body></html>`,
			want: "Social description",
		},
		{
			name: "case-insensitive name attribute",
			html: `<html><head><meta Name="Description" content="Cased"></head><body></body></html>`,
			want: "Cased",
		},
		{
			name: "whitespace trimmed",
			html: `<html><head><meta name="description" content="  padded  "></head><body></body></html>`,
			want: "padded",
		},
		{
			name: "no description",
			html: `<html><head><title>t</title></head><body></body></html>`,
			want: "",
		},
		{
			name: "other meta tags ignored",
			html: `<html><head><meta name="viewport" content="width=device-width"><meta name="description" content="Found"></head><body></body></html>`,
			want: "Found",
		},
		{
			name: "meta in body not considered",
			html: `<html><head></head><body><meta name="description" content="too late"></body></html>`,
			want: "",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := extractMetaDescription(strings.NewReader(tt.html))
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFilenameStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		viewport string
		want     string
	}{
		{name: "bare host", url: "https://example.com", viewport: "desktop", want: "example-com-desktop"},
		{name: "host with path", url: "https://example.com/pricing/teams", viewport: "mobile", want: "example-com-pricing-teams-mobile"},
		{name: "trailing slash dropped", url: "https://example.com/", viewport: "desktop", want: "example-com-desktop"},
		{name: "subdomain kept", url: "https://app.example.co.uk", viewport: "tablet", want: "app-example-co-uk-tablet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := filenameStem(tt.url, tt.viewport); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewEngineDefaults(t *testing.T) {
	t.Parallel()

	e := NewEngine(t.TempDir())

	if e.navigationTimeout <= 0 {
		t.Error("expected positive default navigation timeout")
	}
	if e.settleDelay <= 0 {
		t.Error("expected positive default settle delay")
	}
	if e.gate == nil {
		t.Error("expected default pacer")
	}
}
