package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"propertyhub/internal/model"
	"propertyhub/internal/pagination"
)

// propertySortFields whitelists the columns a property search may sort by.
var propertySortFields = pagination.NewSortFields("name", map[string]string{
	"name":    "name",
	"type":    "type",
	"address": "address",
})

// PropertyQuery describes a property search. SortBy and SortOrder are raw
// client values; they are whitelisted before reaching SQL.
type PropertyQuery struct {
	Term      string
	Type      string
	SortBy    string
	SortOrder string
	Page      pagination.Request
}

// PropertyRepository defines property persistence operations.
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, property *model.Property) error
	FindByID(ctx context.Context, id uint) (*model.Property, error)
	FindAll(ctx context.Context) ([]model.Property, error)
	Search(ctx context.Context, query PropertyQuery) ([]model.Property, int64, error)
	// Delete removes the property and all of its utility bills in one transaction.
	Delete(ctx context.Context, id uint) error
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property.
func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// Update updates an existing property.
func (r *propertyRepository) Update(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// FindByID finds a property by ID.
func (r *propertyRepository) FindByID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	if err := r.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// FindAll lists every property ordered by name.
func (r *propertyRepository) FindAll(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Search returns one page of matching properties and the total match count.
func (r *propertyRepository) Search(ctx context.Context, query PropertyQuery) ([]model.Property, int64, error) {
	scope := r.db.WithContext(ctx).Model(&model.Property{})

	if term := strings.TrimSpace(query.Term); term != "" {
		pattern := containsPattern(term)
		scope = scope.Where("(LOWER(name) LIKE LOWER(?) ESCAPE '!' OR LOWER(address) LIKE LOWER(?) ESCAPE '!')", pattern, pattern)
	}
	if propertyType := strings.TrimSpace(query.Type); propertyType != "" && propertyType != "all" {
		scope = scope.Where("type = ?", propertyType)
	}
	scope = scope.Session(&gorm.Session{})

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	sort := propertySortFields.Resolve(query.SortBy, query.SortOrder)
	var properties []model.Property
	if err := scope.
		Order(sort.Clause()).
		Order("id ASC").
		Limit(query.Page.Limit).
		Offset(query.Page.Offset()).
		Find(&properties).Error; err != nil {
		return nil, 0, fmt.Errorf("search properties: %w", err)
	}
	return properties, total, nil
}

// Delete removes the property's utilities first, then the property.
func (r *propertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&model.Utility{}).Error; err != nil {
			return fmt.Errorf("delete utilities of property %d: %w", id, err)
		}
		result := tx.Delete(&model.Property{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete property %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// containsPattern builds a LIKE pattern that matches term as a literal
// substring, using '!' as the escape character. Case folding happens in SQL
// so both sides go through the same LOWER.
func containsPattern(term string) string {
	escaped := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(term)
	return "%" + escaped + "%"
}
