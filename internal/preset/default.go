package preset

// DefaultName is the preset used when no preset is requested or when the
// requested preset cannot be found.
const DefaultName = "default"

// defaultPreset returns the built-in default rubric.
// It is compiled in rather than shipped as a file so that resolution can
// always fall back to it; a fresh copy is returned on each call because
// resolution mutates the dimension list.
func defaultPreset() *Preset {
	return &Preset{
		ID:      DefaultName,
		Name:    "General UI Quality",
		Version: "1.0",
		Dimensions: []Dimension{
			{
				ID:          "visual-hierarchy",
				Name:        "Visual Hierarchy",
				Weight:      0.2,
				Description: "How clearly the layout guides the eye to what matters most",
				Criteria: []string{
					"Primary action or message is identifiable within seconds",
					"Size, contrast, and position reflect content importance",
					"Secondary content does not compete with primary content",
				},
			},
			{
				ID:          "typography",
				Name:        "Typography",
				Weight:      0.15,
				Description: "Readability and consistency of the type system",
				Criteria: []string{
					"Body text is comfortably readable at the rendered size",
					"Heading scale is consistent across sections",
					"Line length and spacing support sustained reading",
				},
			},
			{
				ID:          "color-contrast",
				Name:        "Color & Contrast",
				Weight:      0.15,
				Description: "Effectiveness and accessibility of the color palette",
				Criteria: []string{
					"Text meets reasonable contrast against its background",
					"Color is used purposefully, not decoratively at random",
					"Interactive elements are visually distinct",
				},
			},
			{
				ID:          "layout-composition",
				Name:        "Layout & Composition",
				Weight:      0.2,
				Description: "Balance, alignment, and use of space across the page",
				Criteria: []string{
					"Content aligns to a discernible grid",
					"Whitespace separates unrelated content groups",
					"The fold area feels neither empty nor overcrowded",
				},
			},
			{
				ID:          "brand-polish",
				Name:        "Brand & Polish",
				Weight:      0.15,
				Description: "Cohesion and craft of the overall visual identity",
				Criteria: []string{
					"Imagery, iconography, and illustration share one style",
					"Details (borders, shadows, radii) are applied consistently",
					"Nothing looks unfinished or placeholder-grade",
				},
			},
			{
				ID:          "clarity-of-purpose",
				Name:        "Clarity of Purpose",
				Weight:      0.15,
				Description: "How quickly a first-time visitor understands what the page offers",
				Criteria: []string{
					"The value proposition is stated, not implied",
					"Navigation labels describe destinations plainly",
					"Calls to action say what happens next",
				},
			},
		},
	}
}
