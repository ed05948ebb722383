package orderrepo

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its history to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, historyDTOs := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if len(historyDTOs) > 0 {
		if err := r.db.WithContext(ctx).Create(&historyDTOs).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The parent row is written
// whole, so a details field cleared on the aggregate clears its column too;
// history rows already present are left untouched and only the new tail of
// the history is inserted, keeping the persisted timeline append-only.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, historyDTOs := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(historyDTOs) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&historyDTOs).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByCode retrieves an order by its human-facing tracking code.
func (r *GormOrderRepository) GetByCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("code", code.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// load fetches the status history for the given parent row and restores the
// aggregate.
func (r *GormOrderRepository) load(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var historyDTOs []StatusUpdateDTO
	err := r.db.WithContext(ctx).
		Order("seq").
		Find(&historyDTOs, "order_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}
