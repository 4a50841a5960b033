package capture

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/uibench/uibench/internal/config"
	"github.com/uibench/uibench/internal/model"
	"github.com/uibench/uibench/internal/pacer"
)

// Engine captures screenshot pairs for (URL, viewport) combinations.
//
// The engine owns one browser process for its lifetime. Each capture runs
// in a fresh tab with cookies cleared and cache disabled, so consecutive
// targets cannot contaminate each other. Captures are strictly sequential;
// the engine's pacer enforces the fixed inter-request delay.
type Engine struct {
	// outputDir is where screenshot files are written.
	outputDir string

	// navigationTimeout bounds the network-idle wait per navigation.
	navigationTimeout time.Duration

	// settleDelay is the fixed wait before screenshots, allowing
	// late-loading dynamic content to render.
	settleDelay time.Duration

	// gate enforces the fixed delay between consecutive captures.
	gate *pacer.Pacer

	// siteConfigs holds per-host capture overrides (cookie, headers).
	siteConfigs *config.File

	// logger for structured logging.
	logger *slog.Logger

	// allocCtx / browserCtx manage the browser process lifetime.
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithNavigationTimeout sets the bound on each navigation's network-idle wait.
func WithNavigationTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.navigationTimeout = d
	}
}

// WithSettleDelay sets the fixed wait before screenshots are taken.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.settleDelay = d
	}
}

// WithCaptureDelay sets the unconditional delay between consecutive captures.
func WithCaptureDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.gate = pacer.New(d)
	}
}

// WithSiteConfigs supplies per-host capture overrides from the config file.
func WithSiteConfigs(cf *config.File) Option {
	return func(e *Engine) {
		e.siteConfigs = cf
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a capture engine writing screenshots into outputDir.
// Call Start before capturing and Close when the run is finished.
func NewEngine(outputDir string, opts ...Option) *Engine {
	e := &Engine{
		outputDir:         outputDir,
		navigationTimeout: config.DefaultNavigationTimeout,
		settleDelay:       config.DefaultSettleDelay,
		gate:              pacer.New(config.DefaultCaptureDelay),
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start launches the browser process for the batch.
// The process is shared by every capture of the run and released by Close.
func (e *Engine) Start(ctx context.Context) error {
	if err := os.MkdirAll(e.outputDir, 0o750); err != nil {
		return fmt.Errorf("creating screenshot directory: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-background-networking", true),
	)

	e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(ctx, allocOpts...)

	// The first context created from the allocator starts the browser.
	// We keep it alive for the batch so per-capture tabs are cheap.
	e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
	if err := chromedp.Run(e.browserCtx); err != nil {
		e.Close()
		return fmt.Errorf("launching browser: %w", err)
	}

	return nil
}

// Close releases the browser process. Safe to call when Start failed.
func (e *Engine) Close() {
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
}

// CaptureAll produces one CaptureResult per (URL, viewport) pair, in input
// order: all viewports of the first URL, then the second, and so on.
// Individual failures become failure-variant results; the batch never
// aborts early. Only a cancelled context stops the loop.
func (e *Engine) CaptureAll(ctx context.Context, urls, viewports []string) ([]*model.CaptureResult, error) {
	results := make([]*model.CaptureResult, 0, len(urls)*len(viewports))

	for _, target := range urls {
		for _, viewport := range viewports {
			if err := e.gate.Wait(ctx); err != nil {
				return results, err
			}

			result := e.capturePair(ctx, target, viewport)
			results = append(results, result)

			if result.Succeeded() {
				e.logger.Info("captured",
					"url", target,
					"viewport", viewport,
					"fold", result.Artifacts.FoldPath,
				)
			} else {
				e.logger.Warn("capture failed",
					"url", target,
					"viewport", viewport,
					"error", result.Failure.Message,
				)
			}
		}
	}

	return results, nil
}

// capturePair captures one (URL, viewport) pair in an isolated tab.
// Every error path collapses into a failure-variant result.
func (e *Engine) capturePair(ctx context.Context, target, viewportName string) *model.CaptureResult {
	vp, known := config.LookupViewport(viewportName)
	if !known {
		e.logger.Warn("unknown viewport, using desktop dimensions", "viewport", viewportName)
	}

	// Fresh tab per pair. Deriving from the browser context reuses the
	// process; cookie clearing plus disabled cache below gives each target
	// an uncontaminated session.
	tabCtx, tabCancel := chromedp.NewContext(e.browserCtx)
	defer tabCancel()

	e.interceptRequests(tabCtx)

	prep := []chromedp.Action{
		network.Enable(),
		fetch.Enable(),
		network.ClearBrowserCookies(),
		network.SetCacheDisabled(true),
		emulation.SetDeviceMetricsOverride(int64(vp.Width), int64(vp.Height), 1.0, vp.Mobile),
	}

	if site := e.siteConfig(target); site.Cookie != "" || len(site.Headers) > 0 {
		headers := network.Headers{}
		for k, v := range site.Headers {
			headers[k] = v
		}
		if site.Cookie != "" {
			headers["Cookie"] = site.Cookie
		}
		prep = append(prep, network.SetExtraHTTPHeaders(headers))
	}

	if err := chromedp.Run(tabCtx, prep...); err != nil {
		return model.NewCaptureFailure(target, viewportName, fmt.Sprintf("preparing context: %v", err))
	}

	if err := e.navigate(tabCtx, target); err != nil {
		return model.NewCaptureFailure(target, viewportName, fmt.Sprintf("navigation: %v", err))
	}

	dismissConsentBanner(tabCtx, e.logger)

	// Let late-loading dynamic content (hero images, web fonts, deferred
	// scripts) render before the screenshots.
	settle := e.settleDelayFor(target)
	select {
	case <-time.After(settle):
	case <-tabCtx.Done():
		return model.NewCaptureFailure(target, viewportName, tabCtx.Err().Error())
	}

	var title, outerHTML string
	var foldShot, fullShot []byte

	// Both screenshots are required; if either throws the pair is a failure.
	err := chromedp.Run(tabCtx,
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &outerHTML, chromedp.ByQuery),
		chromedp.CaptureScreenshot(&foldShot),
		chromedp.FullScreenshot(&fullShot, 100),
	)
	if err != nil {
		return model.NewCaptureFailure(target, viewportName, fmt.Sprintf("screenshot: %v", err))
	}

	stem := filenameStem(target, viewportName)
	foldPath := filepath.Join(e.outputDir, stem+"-fold.png")
	fullPath := filepath.Join(e.outputDir, stem+"-full.png")

	if err := os.WriteFile(foldPath, foldShot, 0o640); err != nil {
		return model.NewCaptureFailure(target, viewportName, fmt.Sprintf("writing fold screenshot: %v", err))
	}
	if err := os.WriteFile(fullPath, fullShot, 0o640); err != nil {
		return model.NewCaptureFailure(target, viewportName, fmt.Sprintf("writing full screenshot: %v", err))
	}

	return model.NewCaptureSuccess(target, viewportName, &model.CaptureArtifacts{
		FullPagePath: fullPath,
		FoldPath:     foldPath,
		Meta: model.PageMeta{
			Title:          strings.TrimSpace(title),
			Description:    extractMetaDescription(strings.NewReader(outerHTML)),
			CapturedAt:     time.Now().UTC(),
			ViewportWidth:  vp.Width,
			ViewportHeight: vp.Height,
		},
	})
}

// navigate loads the target and waits for network quiescence up to the
// engine's bound. Pages with long-polling or streaming connections never go
// idle; on timeout we fall back to waiting only for initial DOM
// construction, which the caller's settle delay then pads.
func (e *Engine) navigate(ctx context.Context, target string) error {
	idle := make(chan struct{})
	var once sync.Once

	// Chrome also emits lifecycle events for the tab's initial about:blank
	// document; only events for the frame the navigation commits to count,
	// so the frame ID gate stays closed until Navigate reports it.
	var mu sync.Mutex
	var mainFrame cdp.FrameID

	listenCtx, cancelListen := context.WithCancel(ctx)
	defer cancelListen()

	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		lifecycle, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}
		mu.Lock()
		match := isFrameIdleEvent(lifecycle, mainFrame)
		mu.Unlock()
		if match {
			once.Do(func() { close(idle) })
		}
	})

	if err := chromedp.Run(ctx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameID, _, errorText, _, err := page.Navigate(target).Do(ctx)
			if err != nil {
				return err
			}
			if errorText != "" {
				return fmt.Errorf("navigation failed: %s", errorText)
			}
			mu.Lock()
			mainFrame = frameID
			mu.Unlock()
			return nil
		}),
	); err != nil {
		return err
	}

	select {
	case <-idle:
		return nil
	case <-time.After(e.navigationTimeout):
		e.logger.Debug("network idle timeout, falling back to DOM-ready wait", "url", target)
		return chromedp.Run(ctx, chromedp.WaitReady("body", chromedp.ByQuery))
	case <-ctx.Done():
		return ctx.Err()
	}
}

// isFrameIdleEvent reports whether a lifecycle event marks network
// quiescence of the navigated frame. Events for other documents, including
// the tab's initial about:blank one, never count, and nothing counts before
// the navigation has committed and reported its frame.
func isFrameIdleEvent(ev *page.EventLifecycleEvent, mainFrame cdp.FrameID) bool {
	return ev.Name == "networkIdle" && mainFrame != "" && ev.FrameID == mainFrame
}

// interceptRequests wires the fetch-domain listener that aborts deny-listed
// tracker requests before they reach the network.
func (e *Engine) interceptRequests(tabCtx context.Context) {
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}

		// The fetch domain pauses every request; resume decisions must not
		// block the event loop, hence the goroutine per event. The executor
		// is resolved here rather than at wiring time: a context fresh from
		// NewContext carries no target handler until the first Run on it
		// attaches one.
		go func() {
			execCtx := cdp.WithExecutor(tabCtx, chromedp.FromContext(tabCtx).Target)
			if isBlockedURL(paused.Request.URL) {
				e.logger.Debug("blocked tracker request", "url", paused.Request.URL)
				_ = fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx)
				return
			}
			_ = fetch.ContinueRequest(paused.RequestID).Do(execCtx)
		}()
	})
}

// settleDelayFor returns the settle delay for a target, honoring per-site
// overrides from the config file.
func (e *Engine) settleDelayFor(target string) time.Duration {
	site := e.siteConfig(target)
	if site.SettleDelaySeconds > 0 {
		return time.Duration(site.SettleDelaySeconds) * time.Second
	}
	return e.settleDelay
}

// siteConfig returns per-host overrides for a target URL.
func (e *Engine) siteConfig(target string) config.SiteConfig {
	if e.siteConfigs == nil {
		return config.SiteConfig{}
	}
	u, err := url.Parse(target)
	if err != nil {
		return config.SiteConfig{}
	}
	return e.siteConfigs.GetSiteConfig(u.Hostname())
}

// filenameStem derives a filesystem-safe stem from a URL and viewport,
// e.g. "example-com-pricing-desktop". Screenshot filenames must be stable
// across runs so metadata references stay meaningful.
func filenameStem(target, viewport string) string {
	u, err := url.Parse(target)
	if err != nil {
		return sanitizeFilename(target) + "-" + viewport
	}

	stem := u.Hostname()
	if p := strings.Trim(u.Path, "/"); p != "" {
		stem += "-" + p
	}
	return sanitizeFilename(stem) + "-" + viewport
}

// sanitizeFilename replaces every character outside [a-z0-9-] with a dash
// and collapses runs of dashes.
func sanitizeFilename(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
