package services

import (
	"math"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/order"
)

const (
	// RatingMax is the rating of a courier whose average delivery gap is zero.
	RatingMax = 5.0
	// ratingWindow caps the average delivery gap; gaps of an hour or more give a zero rating.
	ratingWindow = time.Hour
)

// RatingCalculator derives a courier rating from the timing of its completed orders.
//
// For each region the courier serves, completed orders are sorted by completion time and the
// sequence [first assign time, complete times...] is turned into gaps. The smallest of the
// regional average gaps t gives rating = (3600 - min(t, 3600)) / 3600 * 5, rounded to two decimals.
type RatingCalculator struct{}

func NewRatingCalculator() RatingCalculator {
	return RatingCalculator{}
}

// Calculate returns the rating and true, or false when no served region has a completed order.
// Orders that are not completed or belong to regions outside regions are ignored.
func (r RatingCalculator) Calculate(regions []int64, orders []*order.Order) (float64, bool) {
	byRegion := make(map[int64][]*order.Order)
	for _, o := range orders {
		if o == nil || !o.IsCompleted() || o.CompleteTime() == nil || o.AssignTime() == nil {
			continue
		}
		if !slices.Contains(regions, o.Region()) {
			continue
		}
		byRegion[o.Region()] = append(byRegion[o.Region()], o)
	}
	if len(byRegion) == 0 {
		return 0, false
	}

	best := math.Inf(1)
	for _, completed := range byRegion {
		if avg := averageGap(completed); avg < best {
			best = avg
		}
	}

	return Rating(best), true
}

// Rating converts an average delivery gap in seconds into a score within [0, RatingMax].
func Rating(averageGapSeconds float64) float64 {
	window := ratingWindow.Seconds()
	t := math.Max(0, math.Min(averageGapSeconds, window))
	return math.Round((window-t)/window*RatingMax*100) / 100
}

func averageGap(completed []*order.Order) float64 {
	slices.SortStableFunc(completed, func(a, b *order.Order) int {
		return a.CompleteTime().Compare(*b.CompleteTime())
	})

	prev := *completed[0].AssignTime()
	var total float64
	for _, o := range completed {
		gap := o.CompleteTime().Sub(prev).Seconds()
		total += math.Max(0, gap)
		prev = *o.CompleteTime()
	}

	return total / float64(len(completed))
}
