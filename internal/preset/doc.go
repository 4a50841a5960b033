// Package preset loads and resolves scoring rubric presets.
//
// A preset is a named, inheritable rubric of weighted evaluation dimensions.
// Presets are JSON files that may extend another preset; resolution merges
// the inheritance chain into a flat dimension list. A built-in default
// preset is compiled in so that resolution can always fall back to a
// working rubric when a requested preset is missing.
package preset
