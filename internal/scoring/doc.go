// Package scoring sends captured screenshots to a vision-capable model and
// parses structured rubric scores from its replies.
//
// Each analysis uses the fold screenshot as the sole visual input (the
// full-page image is never sent, to bound request cost) together with a
// prompt built from the resolved preset. Model calls are strictly
// sequential with a fixed delay between them and are never retried: a
// failed call is a recorded failure for that item only, and the run
// continues.
package scoring
