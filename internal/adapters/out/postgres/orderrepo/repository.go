package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its delivery hours.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order", aggregate.ID(), err)
		}
		return err
	}

	return nil
}

// Update saves the assignment and completion state of an existing order.
// Delivery hours are replaced since completion clears them.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("courier_id", "assign_time", "complete_time", "cost", "status").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderDeliveryHoursDTO{}).Error; err != nil {
		return err
	}
	if len(dto.DeliveryHours) == 0 {
		return nil
	}

	return db.Create(&dto.DeliveryHours).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := preloadHours(r.db.WithContext(ctx)).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether an order row with the id is stored.
func (r *GormOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Find retrieves the orders matching the filter sorted by id.
//
// Example:
//
//	held, err := repo.Find(ctx, order.Filter{CourierID: &courierID, Incomplete: true})
//	if err != nil {
//		return fmt.Errorf("failed to load held orders: %w", err)
//	}
func (r *GormOrderRepository) Find(ctx context.Context, filter order.Filter) ([]*order.Order, error) {
	if filter.Regions != nil && len(filter.Regions) == 0 {
		return []*order.Order{}, nil
	}

	query := r.db.WithContext(ctx).Model(&OrderDTO{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.CourierID != nil {
		query = query.Where("courier_id = ?", *filter.CourierID)
	}
	if filter.Unassigned {
		query = query.Where("courier_id IS NULL")
	}
	if filter.Incomplete {
		query = query.Where("status <> ?", int(order.Completed))
	}
	if filter.Completed {
		query = query.Where("status = ?", int(order.Completed))
	}
	if filter.Regions != nil {
		query = query.Where("region IN ?", filter.Regions)
	}
	if filter.ForUpdate {
		locking := clause.Locking{Strength: "UPDATE"}
		if filter.SkipLocked {
			locking.Options = "SKIP LOCKED"
		}
		query = query.Clauses(locking)
	}

	var dtos []OrderDTO
	if err := preloadHours(query).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func preloadHours(db *gorm.DB) *gorm.DB {
	return db.Preload("DeliveryHours", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
