package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler retrieves every courier profile with its working hours.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates a handler for courier list queries.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle returns the couriers sorted by id.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]CourierResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var couriers []CourierResponse
	err := snapshot(ctx, h.db, func(tx *gorm.DB) error {
		var err error
		couriers, err = readCouriers(tx)
		if err != nil {
			return err
		}

		hours, err := loadHours(ctx, tx, "courier_working_hours", "courier_id", nil)
		if err != nil {
			return err
		}
		for i := range couriers {
			couriers[i].WorkingHours = orEmpty(hours[couriers[i].ID])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return couriers, nil
}

func readCouriers(tx *gorm.DB) ([]CourierResponse, error) {
	rows, err := tx.Raw(`
		SELECT
			id,
			type,
			regions,
			earnings,
			completed_orders
		FROM couriers
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]CourierResponse, 0)
	for rows.Next() {
		var courier CourierResponse
		var regions pq.Int64Array

		err = rows.Scan(
			&courier.ID,
			&courier.Type,
			&regions,
			&courier.Earnings,
			&courier.CompletedOrders,
		)
		if err != nil {
			return nil, err
		}

		courier.Regions = []int64(regions)
		if courier.Regions == nil {
			courier.Regions = []int64{}
		}
		couriers = append(couriers, courier)
	}

	return couriers, rows.Err()
}
