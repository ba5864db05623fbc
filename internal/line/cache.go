package line

// CacheKind discriminates the render-cache tag's active variant.
type CacheKind uint8

const (
	// CacheNone means the line must be fully rebuilt on next draw.
	CacheNone CacheKind = iota
	// CacheLine means the line was last painted at Row without a cursor.
	CacheLine
	// CacheCursor means the line was last painted at Row with the cursor
	// at CursorChar, scrolled by Skip columns.
	CacheCursor
)

// SelectSpan is a char-indexed selection span within one line, or nil on
// the RenderCache fields below when no selection touches the line.
type SelectSpan struct {
	FromChar int
	ToChar   int
}

// RenderCache is the tagged union described in spec.md §3: the last
// painted state of a line, used to decide whether a redraw can be skipped.
// The zero value is CacheNone.
type RenderCache struct {
	Kind   CacheKind
	Row    int
	Select *SelectSpan

	// Fields only meaningful when Kind == CacheCursor.
	CursorChar int
	SkipChars  int
}

// Equal reports whether two RenderCache values represent the same painted
// state, the comparison the spec's fast-render skip decision is built on.
func (c RenderCache) Equal(other RenderCache) bool {
	if c.Kind != other.Kind {
		return false
	}
	if c.Row != other.Row {
		return false
	}
	if !selectEqual(c.Select, other.Select) {
		return false
	}
	if c.Kind == CacheCursor {
		return c.CursorChar == other.CursorChar && c.SkipChars == other.SkipChars
	}
	return true
}

func selectEqual(a, b *SelectSpan) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
