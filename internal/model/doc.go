// Package model defines the core data structures used throughout UIBench.
//
// This package contains the following main types:
//   - CaptureResult: Screenshots and page metadata for one (URL, viewport) pair
//   - Analysis: Vision-model scoring output for one captured page
//   - ComparisonResult: Cross-URL ranking produced in comparison mode
//   - RunReport: The accumulated state of one pipeline run
//   - MetadataRecord: The durable JSON summary consumed by the dashboard
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (capture, scoring, report, pipeline) need to
// use these types, so centralizing them prevents import cycles.
//
// CaptureResult and Analysis are tagged variants: exactly one of the success
// payload or the failure marker is set. Consumers discriminate through the
// Succeeded/Scored methods rather than probing optional fields.
package model
