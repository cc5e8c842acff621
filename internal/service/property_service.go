package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"propertyhub/internal/errors"
	"propertyhub/internal/model"
	"propertyhub/internal/pagination"
	"propertyhub/internal/repository"
)

var propertyMessages = messages{
	"Name.notblank":    "Property name is required",
	"Address.notblank": "Property address is required",
	"Type.oneof":       "Property type must be either residential or commercial",
}

// PropertyInput is the writable part of a property.
type PropertyInput struct {
	Name    string `validate:"notblank"`
	Address string `validate:"notblank"`
	Type    string `validate:"oneof=residential commercial"`
}

// PropertyDetail is a property with the first page of its utility bills.
type PropertyDetail struct {
	model.Property
	Utilities         []model.Utility  `json:"utilities"`
	UtilityPagination pagination.Block `json:"utilityPagination"`
}

// PropertyService handles property operations.
type PropertyService interface {
	List(ctx context.Context) ([]model.Property, error)
	Search(ctx context.Context, query repository.PropertyQuery) (pagination.Page[model.Property], error)
	Get(ctx context.Context, id uint) (*model.Property, error)
	GetWithUtilities(ctx context.Context, id uint) (*PropertyDetail, error)
	Create(ctx context.Context, input PropertyInput) (*model.Property, error)
	Update(ctx context.Context, id uint, input PropertyInput) (*model.Property, error)
	Delete(ctx context.Context, id uint) error
}

type propertyService struct {
	repo        repository.PropertyRepository
	utilityRepo repository.UtilityRepository
}

// NewPropertyService creates a new property service.
func NewPropertyService(repo repository.PropertyRepository, utilityRepo repository.UtilityRepository) PropertyService {
	return &propertyService{
		repo:        repo,
		utilityRepo: utilityRepo,
	}
}

func (s *propertyService) List(ctx context.Context) ([]model.Property, error) {
	properties, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	if properties == nil {
		properties = []model.Property{}
	}
	return properties, nil
}

func (s *propertyService) Search(ctx context.Context, query repository.PropertyQuery) (pagination.Page[model.Property], error) {
	query.Page = pagination.NewRequest(query.Page.Page, query.Page.Limit)
	properties, total, err := s.repo.Search(ctx, query)
	if err != nil {
		return pagination.Page[model.Property]{}, err
	}
	return pagination.NewPage(properties, total, query.Page), nil
}

func (s *propertyService) Get(ctx context.Context, id uint) (*model.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("get property %d: %w", id, err)
	}
	return property, nil
}

// GetWithUtilities returns the property and its bills ordered by date, first page only.
func (s *propertyService) GetWithUtilities(ctx context.Context, id uint) (*PropertyDetail, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req := pagination.NewRequest(pagination.DefaultPage, pagination.DefaultLimit)
	utilities, total, err := s.utilityRepo.FindByProperty(ctx, repository.UtilityQuery{
		PropertyID: id,
		SortBy:     "date",
		SortOrder:  string(pagination.Asc),
		Page:       req,
	})
	if err != nil {
		return nil, fmt.Errorf("list utilities of property %d: %w", id, err)
	}

	page := pagination.NewPage(utilities, total, req)
	return &PropertyDetail{
		Property:          *property,
		Utilities:         page.Items,
		UtilityPagination: page.Block(),
	}, nil
}

func (s *propertyService) Create(ctx context.Context, input PropertyInput) (*model.Property, error) {
	if err := validateStruct(input, propertyMessages); err != nil {
		return nil, err
	}

	property := &model.Property{}
	input.apply(property)
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

func (s *propertyService) Update(ctx context.Context, id uint, input PropertyInput) (*model.Property, error) {
	if err := validateStruct(input, propertyMessages); err != nil {
		return nil, err
	}

	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(property)
	if err := s.repo.Update(ctx, property); err != nil {
		return nil, fmt.Errorf("update property %d: %w", id, err)
	}
	return property, nil
}

// Delete removes the property together with its utility bills.
func (s *propertyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrPropertyNotFound
		}
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	return nil
}

func (in PropertyInput) apply(p *model.Property) {
	p.Name = strings.TrimSpace(in.Name)
	p.Address = strings.TrimSpace(in.Address)
	p.Type = model.PropertyType(in.Type)
}
