package preset

// Dimension is one weighted evaluation axis of a rubric.
type Dimension struct {
	// ID uniquely identifies the dimension within a resolved preset.
	ID string `json:"id"`

	// Name is the human-readable dimension name shown in reports.
	Name string `json:"name"`

	// Weight is the dimension's relative weight in the rubric.
	// Weights are relative, not required to sum to any particular value.
	Weight float64 `json:"weight"`

	// Description explains what this dimension evaluates.
	Description string `json:"description"`

	// Criteria lists the textual evaluation criteria fed to the model.
	Criteria []string `json:"criteria,omitempty"`
}

// Preset is a named rubric of weighted evaluation dimensions.
//
// A preset file may declare Extends to inherit another preset's dimensions;
// Resolve flattens the chain. After resolution, Extends is empty and
// Dimensions holds the full merged list with unique ids.
type Preset struct {
	// ID is the preset identifier, matching the file's basename.
	ID string `json:"id"`

	// Name is the display name shown in reports.
	Name string `json:"name"`

	// Version is the preset's version string.
	Version string `json:"version,omitempty"`

	// Dimensions is the preset's own ordered dimension list.
	Dimensions []Dimension `json:"dimensions"`

	// ExtraDimensions holds additional dimensions appended after Dimensions.
	// Child presets that extend a base typically declare only these.
	ExtraDimensions []Dimension `json:"extra_dimensions,omitempty"`

	// Extends names the parent preset to inherit dimensions from.
	Extends string `json:"extends,omitempty"`
}

// ownDimensions returns the preset's own dimensions in declaration order:
// Dimensions followed by ExtraDimensions.
func (p *Preset) ownDimensions() []Dimension {
	own := make([]Dimension, 0, len(p.Dimensions)+len(p.ExtraDimensions))
	own = append(own, p.Dimensions...)
	own = append(own, p.ExtraDimensions...)
	return own
}

// DimensionByID returns the dimension with the given id, if present.
func (p *Preset) DimensionByID(id string) (Dimension, bool) {
	for _, d := range p.Dimensions {
		if d.ID == id {
			return d, true
		}
	}
	return Dimension{}, false
}
