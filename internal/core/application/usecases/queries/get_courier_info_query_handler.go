package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetCourierInfoQueryHandler reads a courier, its completed orders and computes the rating.
// All reads run in one read-only repeatable-read transaction so the profile, the counters and
// the completion history come from the same snapshot.
type GetCourierInfoQueryHandler struct {
	db     *gorm.DB
	rating services.RatingCalculator
}

func NewGetCourierInfoQueryHandler(db *gorm.DB, rating services.RatingCalculator) GetCourierInfoQueryHandler {
	return GetCourierInfoQueryHandler{db: db, rating: rating}
}

// Handle returns ErrCourierNotFound for an unknown id.
func (h GetCourierInfoQueryHandler) Handle(ctx context.Context, query GetCourierInfoQuery) (CourierInfoResponse, error) {
	if err := query.Validate(); err != nil {
		return CourierInfoResponse{}, err
	}

	var info CourierInfoResponse
	err := snapshot(ctx, h.db, func(tx *gorm.DB) error {
		var regions pq.Int64Array
		row := tx.Raw(`
			SELECT
				id,
				type,
				regions,
				earnings,
				completed_orders
			FROM couriers
			WHERE id = ?
		`, query.CourierID()).Row()
		if err := row.Scan(&info.ID, &info.Type, &regions, &info.Earnings, &info.CompletedOrders); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCourierNotFound
			}
			return err
		}
		info.Regions = []int64(regions)
		if info.Regions == nil {
			info.Regions = []int64{}
		}

		hours, err := loadHours(ctx, tx, "courier_working_hours", "courier_id", []int64{info.ID})
		if err != nil {
			return err
		}
		info.WorkingHours = orEmpty(hours[info.ID])

		if info.CompletedOrders == 0 {
			return nil
		}

		completed, err := h.loadCompleted(ctx, tx, info.ID)
		if err != nil {
			return err
		}
		if rating, ok := h.rating.Calculate(info.Regions, completed); ok {
			info.Rating = &rating
		}
		return nil
	})
	if err != nil {
		return CourierInfoResponse{}, err
	}

	return info, nil
}

func (h GetCourierInfoQueryHandler) loadCompleted(ctx context.Context, tx *gorm.DB, courierID int64) ([]*order.Order, error) {
	rows, err := tx.WithContext(ctx).Raw(`
		SELECT
			id,
			weight,
			region,
			assign_time,
			complete_time,
			cost
		FROM orders
		WHERE courier_id = ? AND status = ?
		ORDER BY complete_time, id
	`, courierID, int(order.Completed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make([]*order.Order, 0)
	for rows.Next() {
		var (
			id, region   int64
			weight       float64
			assignTime   time.Time
			completeTime time.Time
			cost         int64
		)
		if err = rows.Scan(&id, &weight, &region, &assignTime, &completeTime, &cost); err != nil {
			return nil, err
		}

		o, restoreErr := order.RestoreOrder(id, weight, region, nil, order.Completed,
			&courierID, &assignTime, &completeTime, &cost)
		if restoreErr != nil {
			return nil, restoreErr
		}
		completed = append(completed, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return completed, nil
}
