package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// ErrPresetNotFound is returned by load when no file exists for a preset
// name. The resolver turns this into a fallback to the default preset;
// only the default preset itself failing to load escapes to the caller.
var ErrPresetNotFound = errors.New("preset not found")

// Resolver loads preset files and resolves inheritance chains.
//
// Search order for a preset named "corporate": an explicitly configured
// preset directory, then ./presets, then the XDG config directory. The
// built-in default preset needs no file; a file named default.json in any
// search directory overrides it.
type Resolver struct {
	// searchDirs are the directories searched for preset files, in order.
	searchDirs []string

	// logger for structured logging.
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPresetDir prepends a directory to the preset search path.
func WithPresetDir(dir string) ResolverOption {
	return func(r *Resolver) {
		if dir != "" {
			r.searchDirs = append([]string{dir}, r.searchDirs...)
		}
	}
}

// WithResolverLogger sets a custom logger for the resolver.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver with the default search path.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		searchDirs: []string{
			"presets",
			filepath.Join(xdg.ConfigHome, "uibench", "presets"),
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the fully resolved preset for the given name.
//
// An unknown name degrades to the default preset without error; this is
// deliberate so that a typo in --preset still produces a run. The only
// failure mode is the default preset itself being unloadable, which can
// happen when a corrupt default.json shadows the built-in rubric.
func (r *Resolver) Resolve(name string) (*Preset, error) {
	if name == "" {
		name = DefaultName
	}

	resolved, err := r.resolve(name, nil)
	if err == nil {
		return resolved, nil
	}

	if name == DefaultName {
		return nil, fmt.Errorf("default preset unavailable: %w", err)
	}

	r.logger.Warn("preset unavailable, falling back to default",
		"preset", name,
		"error", err,
	)

	resolved, err = r.resolve(DefaultName, nil)
	if err != nil {
		return nil, fmt.Errorf("default preset unavailable: %w", err)
	}
	return resolved, nil
}

// resolve loads a preset and flattens its inheritance chain.
// The chain slice tracks names already being resolved to detect cycles.
//
// Design decision: the original behavior did not guard against circular
// extends chains; we detect them and fail fast with an error naming the
// cycle, because silent infinite recursion is strictly worse than a
// resolution error that the default-fallback path can absorb.
func (r *Resolver) resolve(name string, chain []string) (*Preset, error) {
	for _, seen := range chain {
		if seen == name {
			return nil, fmt.Errorf("circular extends chain: %s -> %s",
				strings.Join(chain, " -> "), name)
		}
	}

	p, err := r.load(name)
	if err != nil {
		return nil, err
	}

	own := p.ownDimensions()

	if p.Extends == "" {
		p.Dimensions = mergeDimensions(nil, own)
		p.ExtraDimensions = nil
		return p, nil
	}

	parent, err := r.resolve(p.Extends, append(chain, name))
	if err != nil {
		return nil, fmt.Errorf("resolving parent %q of %q: %w", p.Extends, name, err)
	}

	// Scalar fields: the child's value wins when present, otherwise the parent's.
	if p.Name == "" {
		p.Name = parent.Name
	}
	if p.Version == "" {
		p.Version = parent.Version
	}

	p.Dimensions = mergeDimensions(parent.Dimensions, own)
	p.ExtraDimensions = nil
	p.Extends = ""
	return p, nil
}

// mergeDimensions appends the child's own dimensions to the parent's
// resolved list while keeping dimension ids unique: a child dimension whose
// id matches an ancestor's replaces the ancestor entry in place, preserving
// the ancestor's position in the order.
func mergeDimensions(parent, own []Dimension) []Dimension {
	merged := make([]Dimension, len(parent))
	copy(merged, parent)

	index := make(map[string]int, len(merged))
	for i, d := range merged {
		index[d.ID] = i
	}

	for _, d := range own {
		if i, ok := index[d.ID]; ok {
			merged[i] = d
			continue
		}
		index[d.ID] = len(merged)
		merged = append(merged, d)
	}

	return merged
}

// load reads a preset file from the search path, or returns the built-in
// default when no default.json overrides it.
func (r *Resolver) load(name string) (*Preset, error) {
	for _, dir := range r.searchDirs {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path) //nolint:gosec // Preset paths come from local search dirs
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading preset %s: %w", path, err)
		}

		var p Preset
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing preset %s: %w", path, err)
		}
		if p.ID == "" {
			p.ID = name
		}
		return &p, nil
	}

	if name == DefaultName {
		return defaultPreset(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}

// Available lists the preset names reachable from the search path,
// including the built-in default. Names are unique; the first directory
// that provides a name wins, mirroring load's behavior.
func (r *Resolver) Available() []string {
	seen := map[string]bool{DefaultName: true}
	names := []string{DefaultName}

	for _, dir := range r.searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".json")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names
}
