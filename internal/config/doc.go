// Package config provides configuration structures and utilities for UIBench.
// It defines the main options for capture behavior, scoring, report output,
// and the named viewport profiles applied before each capture.
package config
