package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedOrder(t *testing.T, id, region int64, assignedAt, completedAt time.Time) *order.Order {
	t.Helper()
	courierID := int64(1)
	cost := int64(1000)
	o, err := order.RestoreOrder(id, 1, region, nil, order.Completed, &courierID, &assignedAt, &completedAt, &cost)
	require.NoError(t, err)
	return o
}

func TestRating(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want float64
	}{
		{name: "instant", gap: 0, want: 5},
		{name: "half an hour", gap: 1800, want: 2.5},
		{name: "an hour", gap: 3600, want: 0},
		{name: "more than an hour", gap: 7200, want: 0},
		{name: "negative clamps to instant", gap: -10, want: 5},
		{name: "rounded to two decimals", gap: 1000, want: 3.61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.Rating(tt.gap)

			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, services.RatingMax)
		})
	}
}

func TestRatingCalculator_Calculate(t *testing.T) {
	calc := services.NewRatingCalculator()
	start := time.Date(2021, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("undefined without completed orders", func(t *testing.T) {
		_, ok := calc.Calculate([]int64{1}, nil)

		assert.False(t, ok)
	})

	t.Run("undefined when no served region has completions", func(t *testing.T) {
		orders := []*order.Order{completedOrder(t, 1, 2, start, start.Add(time.Minute))}

		_, ok := calc.Calculate([]int64{1}, orders)

		assert.False(t, ok)
	})

	t.Run("single region average of gaps", func(t *testing.T) {
		// gaps 600s and 1200s, average 900s
		orders := []*order.Order{
			completedOrder(t, 2, 1, start, start.Add(30*time.Minute)),
			completedOrder(t, 1, 1, start, start.Add(10*time.Minute)),
		}

		rating, ok := calc.Calculate([]int64{1}, orders)

		require.True(t, ok)
		assert.InDelta(t, 3.75, rating, 1e-9)
	})

	t.Run("minimum of regional averages", func(t *testing.T) {
		orders := []*order.Order{
			completedOrder(t, 1, 1, start, start.Add(40*time.Minute)), // 2400s
			completedOrder(t, 2, 2, start, start.Add(6*time.Minute)),  // 360s
		}

		rating, ok := calc.Calculate([]int64{1, 2}, orders)

		require.True(t, ok)
		assert.InDelta(t, 4.5, rating, 1e-9)
	})

	t.Run("ignores orders that are not completed", func(t *testing.T) {
		pending, err := order.NewOrder(3, 1, 1, nil)
		require.NoError(t, err)
		orders := []*order.Order{completedOrder(t, 1, 1, start, start.Add(time.Hour)), pending}

		rating, ok := calc.Calculate([]int64{1}, orders)

		require.True(t, ok)
		assert.InDelta(t, 0.0, rating, 1e-9)
	})

	t.Run("completion before assign time counts as zero gap", func(t *testing.T) {
		orders := []*order.Order{completedOrder(t, 1, 1, start, start.Add(-time.Minute))}

		rating, ok := calc.Calculate([]int64{1}, orders)

		require.True(t, ok)
		assert.InDelta(t, services.RatingMax, rating, 1e-9)
	})
}
