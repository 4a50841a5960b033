package config

// Viewport is a named screen-size profile applied to a browsing context
// before capture.
type Viewport struct {
	// Name is the profile name used on the CLI and in reports.
	Name string

	// Width is the viewport width in pixels.
	Width int

	// Height is the viewport height in pixels.
	Height int

	// Mobile enables mobile emulation (touch events, mobile UA metrics).
	Mobile bool
}

// viewports maps viewport names to fixed pixel dimensions.
// The set is static: consistent dimensions across runs are what make
// screenshots comparable between competitors and over time.
var viewports = map[string]Viewport{
	"desktop": {Name: "desktop", Width: 1920, Height: 1080},
	"tablet":  {Name: "tablet", Width: 768, Height: 1024, Mobile: true},
	"mobile":  {Name: "mobile", Width: 390, Height: 844, Mobile: true},
}

// LookupViewport returns the dimensions for a named viewport.
// Unknown names fall back to the desktop profile; the boolean reports
// whether the name was known so callers can log the fallback.
func LookupViewport(name string) (Viewport, bool) {
	if v, ok := viewports[name]; ok {
		return v, true
	}
	fallback := viewports[DefaultViewport]
	fallback.Name = name
	return fallback, false
}

// ViewportNames returns the known viewport names.
func ViewportNames() []string {
	return []string{"desktop", "tablet", "mobile"}
}
