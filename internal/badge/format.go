package badge

import (
	"fmt"
	"math"
)

// Label renders the display text for a badge. SALE shows the discount
// percentage rounded half-up to an integer, TOP_RATED the rating to one
// decimal place behind a star glyph.
func Label(b Badge) string {
	switch b.Kind {
	case Sale:
		return fmt.Sprintf("-%d%%", int(math.Floor(b.Detail+0.5)))
	case TopRated:
		return fmt.Sprintf("★%.1f", b.Detail)
	default:
		return string(b.Kind)
	}
}
