// Package report renders run results and maintains the rolling run index.
//
// This package contains three output concerns:
//   - HTML document: self-contained visual report with inlined screenshots
//   - MetadataRecord: durable JSON summary consumed by the dashboard
//   - Markdown summary: terminal-friendly run digest
//
// Design decision: We separate report rendering from report data structures
// (which are in the model package) to follow the single responsibility
// principle. Rendering is a pure function over the run state; only the
// Writer and Index types touch the filesystem.
//
// The HTML document embeds every fold screenshot as a base64 data URI so
// the file stays viewable after the screenshot directory is deleted.
package report
