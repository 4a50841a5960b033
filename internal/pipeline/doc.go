// Package pipeline provides a framework for executing run stages in sequence.
//
// The pipeline pattern is used to process a benchmark run through its
// stages: preset resolution, capture, scoring, report emission, and
// indexing. Each stage is implemented as a Step that receives the
// accumulated run state and can extend it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between stages
//
// Stages run strictly in sequence. Per-item failures inside a stage are
// recorded on the run state and never abort the pipeline; only preset
// resolution and a batch where every capture failed are fatal.
package pipeline
