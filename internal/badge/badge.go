// Package badge classifies a vehicle by a single merchandising signal.
// Scoring is pure and stateless; badges are recomputed at render time and
// never persisted. A rendered badge can still lag the metrics while the
// response sits in the vehicle cache.
package badge

import (
	"sort"
	"time"
)

type Kind string

const (
	Hot        Kind = "HOT"
	BestSeller Kind = "BESTSELLER"
	New        Kind = "NEW"
	Sale       Kind = "SALE"
	TopRated   Kind = "TOP_RATED"
)

// Priority weights. Distinct by construction; the highest matching one wins.
const (
	PriorityHot        = 100
	PriorityBestSeller = 90
	PriorityNew        = 80
	PrioritySale       = 70
	PriorityTopRated   = 60
)

const (
	bestSellerMinSales = 50
	newWindow          = 30 * 24 * time.Hour
	saleMinPercent     = 10.0
	topRatedMinRating  = 4.5
	topRatedMinReviews = 10
)

// Metrics is the read-only merchandising projection of a vehicle.
// DiscountPercent takes precedence when positive; otherwise the effective
// discount is derived from the OriginalPrice/CurrentPrice pair.
type Metrics struct {
	IsFeatured      bool
	ForceBestSeller bool
	ForceNew        bool
	SalesCount      int
	CreatedAt       time.Time
	DiscountPercent float64
	OriginalPrice   float64
	CurrentPrice    float64
	Rating          float64
	ReviewCount     int
}

// Badge is a scoring result. Detail carries the numeric context of the win:
// the effective discount percentage for SALE, the rating for TOP_RATED,
// zero otherwise. Presentation lives in Label, not here.
type Badge struct {
	Kind     Kind    `json:"kind"`
	Priority int     `json:"priority"`
	Detail   float64 `json:"detail,omitempty"`
}

// Compute returns the highest-priority badge matching the metrics, or
// ok=false when nothing matches. Total function: five fixed checks, no error.
func Compute(m Metrics, now time.Time) (Badge, bool) {
	all := ComputeAll(m, now)
	if len(all) == 0 {
		return Badge{}, false
	}
	return all[0], true
}

// ComputeAll evaluates every candidate independently and returns the matches
// sorted by descending priority. Detail pages use the full list.
func ComputeAll(m Metrics, now time.Time) []Badge {
	var out []Badge

	if m.IsFeatured {
		out = append(out, Badge{Kind: Hot, Priority: PriorityHot})
	}
	if m.ForceBestSeller || m.SalesCount >= bestSellerMinSales {
		out = append(out, Badge{Kind: BestSeller, Priority: PriorityBestSeller})
	}
	if m.ForceNew || (!m.CreatedAt.IsZero() && now.Sub(m.CreatedAt) <= newWindow) {
		out = append(out, Badge{Kind: New, Priority: PriorityNew})
	}
	if pct := m.effectiveDiscountPercent(); pct >= saleMinPercent {
		out = append(out, Badge{Kind: Sale, Priority: PrioritySale, Detail: pct})
	}
	if m.Rating >= topRatedMinRating && m.ReviewCount >= topRatedMinReviews {
		out = append(out, Badge{Kind: TopRated, Priority: PriorityTopRated, Detail: m.Rating})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

func (m Metrics) effectiveDiscountPercent() float64 {
	if m.DiscountPercent > 0 {
		return m.DiscountPercent
	}
	if m.OriginalPrice > 0 && m.CurrentPrice < m.OriginalPrice {
		return (m.OriginalPrice - m.CurrentPrice) / m.OriginalPrice * 100
	}
	return 0
}
