package genome

// Symbol is a single genome position.
type Symbol byte

const (
	// Empty marks a position outside any TE.
	Empty Symbol = '-'

	// Active marks a position inside an active TE.
	Active Symbol = 'A'

	// Disabled marks a position inside a disabled TE. Disabled positions are
	// never reclaimed as Empty.
	Disabled Symbol = 'x'
)

// Valid reports whether s is one of the three genome symbols.
func (s Symbol) Valid() bool {
	return s == Empty || s == Active || s == Disabled
}

func (s Symbol) String() string {
	return string(rune(s))
}
