// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Region, courier and status are indexed for the assignment and listing queries.
type OrderDTO struct {
	ID            int64                   `gorm:"primaryKey;autoIncrement:false"`
	Weight        float64                 `gorm:"type:double precision;not null"`
	Region        int64                   `gorm:"type:bigint;not null;index"`
	CourierID     *int64                  `gorm:"type:bigint;index"`
	AssignTime    *time.Time              `gorm:"type:timestamptz"`
	CompleteTime  *time.Time              `gorm:"type:timestamptz"`
	Cost          *int64                  `gorm:"type:bigint"`
	Status        int                     `gorm:"type:smallint;not null;index"`
	DeliveryHours []OrderDeliveryHoursDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderDeliveryHoursDTO stores one acceptable delivery interval of an order.
type OrderDeliveryHoursDTO struct {
	ID          uint          `gorm:"primaryKey"`
	OrderID     int64         `gorm:"not null;index"`
	Position    int           `gorm:"type:int;not null"`
	StartMinute kernel.Minute `gorm:"type:smallint;not null"`
	EndMinute   kernel.Minute `gorm:"type:smallint;not null"`
}

// TableName specifies the database table name for delivery hours.
func (OrderDeliveryHoursDTO) TableName() string {
	return "order_delivery_hours"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	hours := make([]OrderDeliveryHoursDTO, 0, len(o.DeliveryHours()))
	for i, h := range o.DeliveryHours() {
		hours = append(hours, OrderDeliveryHoursDTO{
			OrderID:     o.ID(),
			Position:    i,
			StartMinute: h.Start(),
			EndMinute:   h.End(),
		})
	}

	return OrderDTO{
		ID:            o.ID(),
		Weight:        o.Weight(),
		Region:        o.Region(),
		CourierID:     o.CourierID(),
		AssignTime:    o.AssignTime(),
		CompleteTime:  o.CompleteTime(),
		Cost:          o.Cost(),
		Status:        int(o.Status()),
		DeliveryHours: hours,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	hours := make([]kernel.TimeInterval, 0, len(dto.DeliveryHours))
	for _, h := range dto.DeliveryHours {
		ti, err := kernel.NewTimeInterval(h.StartMinute, h.EndMinute)
		if err != nil {
			return nil, err
		}
		hours = append(hours, ti)
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Weight,
		dto.Region,
		hours,
		order.Status(dto.Status),
		dto.CourierID,
		utc(dto.AssignTime),
		utc(dto.CompleteTime),
		dto.Cost,
	)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
