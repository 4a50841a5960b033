// Package main provides the entry point for the UIBench CLI.
//
// UIBench is a competitive UI benchmarking tool: it captures screenshots
// of web pages at named viewports, scores each page against a weighted
// design rubric using a vision model, and emits a self-contained HTML
// report plus a durable metadata record.
//
// Usage:
//
//	uibench analyze <url>...
//	uibench analyze --compare <url> <url>
//
// See --help for all available options.
package main

// main is the entry point for UIBench.
func main() {
	Execute()
}
