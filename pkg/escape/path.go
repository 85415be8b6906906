package escape

// Path is a filesystem path together with its escaped form for use inside
// a double-quoted word. Both fields are set once by NewPath and travel
// together so a path is escaped exactly once.
type Path struct {
	// Original is the path exactly as given.
	Original string
	// Escaped is Original with bash double-quote specials backslash-escaped.
	Escaped string
}

// NewPath escapes path for use between double quotes.
func NewPath(path string) Path {
	return Path{
		Original: path,
		Escaped:  QuoteChars(path, DoubleQuoteSpecials),
	}
}

// Quoted returns the escaped path surrounded by double quotes.
func (p Path) Quoted() string {
	return `"` + p.Escaped + `"`
}

// String returns the original path.
func (p Path) String() string {
	return p.Original
}
