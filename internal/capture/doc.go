// Package capture drives a headless browser to produce per-URL,
// per-viewport screenshot pairs and page metadata.
//
// One browser process serves the whole batch; every (URL, viewport) pair
// runs in its own tab with cookies and cache cleared so that one target's
// session state cannot leak into another's. Pairs are captured strictly in
// input order with a fixed inter-request delay, and an individual failure
// is recorded in the result rather than raised: the batch never aborts
// early because one page misbehaved.
package capture
