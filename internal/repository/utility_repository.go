package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"propertyhub/internal/model"
	"propertyhub/internal/pagination"
)

// utilitySortFields whitelists the columns a utility listing may sort by.
var utilitySortFields = pagination.NewSortFields("date", map[string]string{
	"type":   "type",
	"amount": "amount",
	"date":   "date",
})

// UtilityQuery describes one page of a property's utility bills.
type UtilityQuery struct {
	PropertyID uint
	SortBy     string
	SortOrder  string
	Page       pagination.Request
}

// UtilityRepository defines utility bill persistence operations.
type UtilityRepository interface {
	Create(ctx context.Context, utility *model.Utility) error
	Update(ctx context.Context, utility *model.Utility) error
	FindByID(ctx context.Context, id uint) (*model.Utility, error)
	FindByProperty(ctx context.Context, query UtilityQuery) ([]model.Utility, int64, error)
	Delete(ctx context.Context, id uint) error
}

type utilityRepository struct {
	db *gorm.DB
}

// NewUtilityRepository creates a new utility repository.
func NewUtilityRepository(db *gorm.DB) UtilityRepository {
	return &utilityRepository{db: db}
}

// Create creates a new utility bill.
func (r *utilityRepository) Create(ctx context.Context, utility *model.Utility) error {
	return r.db.WithContext(ctx).Omit("Property").Create(utility).Error
}

// Update updates an existing utility bill.
func (r *utilityRepository) Update(ctx context.Context, utility *model.Utility) error {
	return r.db.WithContext(ctx).Omit("Property").Save(utility).Error
}

// FindByID finds a utility bill by ID.
func (r *utilityRepository) FindByID(ctx context.Context, id uint) (*model.Utility, error) {
	var utility model.Utility
	if err := r.db.WithContext(ctx).First(&utility, id).Error; err != nil {
		return nil, err
	}
	return &utility, nil
}

// FindByProperty returns one page of a property's bills and their total count.
func (r *utilityRepository) FindByProperty(ctx context.Context, query UtilityQuery) ([]model.Utility, int64, error) {
	scope := r.db.WithContext(ctx).
		Model(&model.Utility{}).
		Where("property_id = ?", query.PropertyID).
		Session(&gorm.Session{})

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count utilities: %w", err)
	}

	sort := utilitySortFields.Resolve(query.SortBy, query.SortOrder)
	var utilities []model.Utility
	if err := scope.
		Order(sort.Clause()).
		Order("id ASC").
		Limit(query.Page.Limit).
		Offset(query.Page.Offset()).
		Find(&utilities).Error; err != nil {
		return nil, 0, fmt.Errorf("list utilities: %w", err)
	}
	return utilities, total, nil
}

// Delete removes a utility bill.
func (r *utilityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Utility{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
