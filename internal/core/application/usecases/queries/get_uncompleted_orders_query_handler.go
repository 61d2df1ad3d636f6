package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves orders pending delivery with their assignment state.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for pending order queries.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle returns orders in Created or Assigned status sorted by id.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var orders []OrderResponse
	err := snapshot(ctx, h.db, func(tx *gorm.DB) error {
		var err error
		orders, err = readUncompletedOrders(tx)
		if err != nil || len(orders) == 0 {
			return err
		}

		ids := make([]int64, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		hours, err := loadHours(ctx, tx, "order_delivery_hours", "order_id", ids)
		if err != nil {
			return err
		}
		for i := range orders {
			orders[i].DeliveryHours = orEmpty(hours[orders[i].ID])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func readUncompletedOrders(tx *gorm.DB) ([]OrderResponse, error) {
	rows, err := tx.Raw(`
		SELECT
			id,
			weight,
			region,
			courier_id,
			assign_time
		FROM orders
		WHERE status != ?
		ORDER BY id
	`, int(order.Completed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		var orderResp OrderResponse

		err = rows.Scan(
			&orderResp.ID,
			&orderResp.Weight,
			&orderResp.Region,
			&orderResp.CourierID,
			&orderResp.AssignTime,
		)
		if err != nil {
			return nil, err
		}

		if orderResp.AssignTime != nil {
			at := orderResp.AssignTime.UTC()
			orderResp.AssignTime = &at
		}
		orders = append(orders, orderResp)
	}

	return orders, rows.Err()
}
