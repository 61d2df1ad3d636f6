// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/lib/pq"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Identifiers are supplied by clients, so the primary key is not generated.
type CourierDTO struct {
	ID              int64                    `gorm:"primaryKey;autoIncrement:false"`
	Type            string                   `gorm:"type:varchar(16);not null"`
	Regions         pq.Int64Array            `gorm:"type:bigint[];not null"`
	Earnings        int64                    `gorm:"type:bigint;not null;default:0"`
	CompletedOrders int64                    `gorm:"type:bigint;not null;default:0"`
	WorkingHours    []CourierWorkingHoursDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// CourierWorkingHoursDTO stores one working interval of a courier. Position keeps the
// order in which the client listed the intervals.
type CourierWorkingHoursDTO struct {
	ID          uint          `gorm:"primaryKey"`
	CourierID   int64         `gorm:"not null;index"`
	Position    int           `gorm:"type:int;not null"`
	StartMinute kernel.Minute `gorm:"type:smallint;not null"`
	EndMinute   kernel.Minute `gorm:"type:smallint;not null"`
}

// TableName specifies the database table name for working hours.
func (CourierWorkingHoursDTO) TableName() string {
	return "courier_working_hours"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:              c.ID(),
		Type:            c.Type().String(),
		Regions:         pq.Int64Array(append([]int64{}, c.Regions()...)),
		Earnings:        c.Earnings(),
		CompletedOrders: c.CompletedOrders(),
		WorkingHours:    hoursFromDomain(c.ID(), c.WorkingHours()),
	}
}

func hoursFromDomain(courierID int64, hours []kernel.TimeInterval) []CourierWorkingHoursDTO {
	dtos := make([]CourierWorkingHoursDTO, 0, len(hours))
	for i, h := range hours {
		dtos = append(dtos, CourierWorkingHoursDTO{
			CourierID:   courierID,
			Position:    i,
			StartMinute: h.Start(),
			EndMinute:   h.End(),
		})
	}
	return dtos
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	courierType, err := courier.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	hours := make([]kernel.TimeInterval, 0, len(dto.WorkingHours))
	for _, h := range dto.WorkingHours {
		ti, tiErr := kernel.NewTimeInterval(h.StartMinute, h.EndMinute)
		if tiErr != nil {
			return nil, tiErr
		}
		hours = append(hours, ti)
	}

	return courier.RestoreCourier(
		dto.ID,
		courierType,
		[]int64(dto.Regions),
		hours,
		dto.Earnings,
		dto.CompletedOrders,
	)
}
