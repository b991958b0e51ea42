package theme

// Theme names one of the built-in color palettes.
type Theme string

const (
	Ember    Theme = "ember"
	Glacier  Theme = "glacier"
	Midnight Theme = "midnight"
	Forest   Theme = "forest"

	// Default is applied on first run and whenever a saved value is not
	// recognized.
	Default = Ember
)

// All lists the selectable themes in display order.
var All = []Theme{Ember, Glacier, Midnight, Forest}

// Valid reports whether name is a known theme.
func Valid(name Theme) bool {
	for _, t := range All {
		if t == name {
			return true
		}
	}
	return false
}

// Normalize maps unknown or empty names to the default theme. Stale or
// hand-edited saved values degrade silently instead of failing.
func Normalize(name Theme) Theme {
	if Valid(name) {
		return name
	}
	return Default
}
