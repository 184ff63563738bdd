package card

// Theme selects one of the two card palettes.
type Theme int

const (
	Light Theme = iota
	Dark
)

// ThemeFromDark maps a dark flag to a Theme.
func ThemeFromDark(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark palette.
func (t Theme) IsDark() bool { return t == Dark }

// String returns "dark" or "light".
func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Icon is the toggle glyph: a sun offers the way back to light, a moon the way to dark.
func (t Theme) Icon() string {
	if t == Dark {
		return "☀"
	}
	return "☾"
}
