package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propertyhub/internal/errors"
	"propertyhub/internal/model"
	"propertyhub/internal/pagination"
	"propertyhub/internal/repository"
)

var utilityMessages = messages{
	"PropertyID.required":         "Property ID is required",
	"PropertyID.positive_integer": "Property ID must be a positive integer",
	"Type.oneof":                  "Utility type must be one of: electricity, water, gas",
	"Amount.required":             "Utility amount must be a positive number",
	"Amount.positive_amount":      "Utility amount must be a positive number",
	"Amount.max_amount":           "Utility amount must not exceed 9999999999.99",
	"Date.required":               "Date is required",
	"Date.calendar_date":          "Invalid date format",
}

// UtilityInput is a utility bill as submitted by a client. Numeric fields
// keep their raw text so malformed values surface as validation messages.
type UtilityInput struct {
	PropertyID string `validate:"required,positive_integer"`
	Type       string `validate:"oneof=electricity water gas"`
	Amount     string `validate:"required,positive_amount,max_amount"`
	Date       string `validate:"required,calendar_date"`
}

// UtilityService handles utility bill operations.
type UtilityService interface {
	ListByProperty(ctx context.Context, query repository.UtilityQuery) (pagination.Page[model.Utility], error)
	Get(ctx context.Context, id uint) (*model.Utility, error)
	Create(ctx context.Context, input UtilityInput) (*model.Utility, error)
	Update(ctx context.Context, id uint, input UtilityInput) (*model.Utility, error)
	Delete(ctx context.Context, id uint) error
}

type utilityService struct {
	repo         repository.UtilityRepository
	propertyRepo repository.PropertyRepository
}

// NewUtilityService creates a new utility service.
func NewUtilityService(repo repository.UtilityRepository, propertyRepo repository.PropertyRepository) UtilityService {
	return &utilityService{
		repo:         repo,
		propertyRepo: propertyRepo,
	}
}

// ListByProperty returns one page of the property's bills. The property must exist.
func (s *utilityService) ListByProperty(ctx context.Context, query repository.UtilityQuery) (pagination.Page[model.Utility], error) {
	if err := s.requireProperty(ctx, query.PropertyID); err != nil {
		return pagination.Page[model.Utility]{}, err
	}

	query.Page = pagination.NewRequest(query.Page.Page, query.Page.Limit)
	utilities, total, err := s.repo.FindByProperty(ctx, query)
	if err != nil {
		return pagination.Page[model.Utility]{}, err
	}
	return pagination.NewPage(utilities, total, query.Page), nil
}

func (s *utilityService) Get(ctx context.Context, id uint) (*model.Utility, error) {
	utility, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUtilityNotFound
		}
		return nil, fmt.Errorf("get utility %d: %w", id, err)
	}
	return utility, nil
}

func (s *utilityService) Create(ctx context.Context, input UtilityInput) (*model.Utility, error) {
	if err := validateStruct(input, utilityMessages); err != nil {
		return nil, err
	}

	utility := &model.Utility{}
	if err := input.apply(utility); err != nil {
		return nil, err
	}
	if err := s.requireProperty(ctx, utility.PropertyID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, utility); err != nil {
		return nil, translateUtilityWrite(err, "create utility")
	}
	return utility, nil
}

// Update checks the bill exists before checking the property it points to.
func (s *utilityService) Update(ctx context.Context, id uint, input UtilityInput) (*model.Utility, error) {
	if err := validateStruct(input, utilityMessages); err != nil {
		return nil, err
	}

	utility, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.apply(utility); err != nil {
		return nil, err
	}
	if err := s.requireProperty(ctx, utility.PropertyID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, utility); err != nil {
		return nil, translateUtilityWrite(err, fmt.Sprintf("update utility %d", id))
	}
	return utility, nil
}

func (s *utilityService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUtilityNotFound
		}
		return fmt.Errorf("delete utility %d: %w", id, err)
	}
	return nil
}

func (s *utilityService) requireProperty(ctx context.Context, propertyID uint) error {
	if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrPropertyNotFound
		}
		return fmt.Errorf("get property %d: %w", propertyID, err)
	}
	return nil
}

// translateUtilityWrite maps a foreign key violation, left by a property
// deleted between the check and the write, to a not-found property.
func translateUtilityWrite(err error, op string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.ErrPropertyNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// apply copies validated input onto u.
func (in UtilityInput) apply(u *model.Utility) error {
	propertyID, err := strconv.ParseUint(strings.TrimSpace(in.PropertyID), 10, 64)
	if err != nil {
		return errors.NewValidationError(utilityMessages["PropertyID.positive_integer"])
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return errors.NewValidationError(utilityMessages["Amount.positive_amount"])
	}
	date, err := model.ParseDate(in.Date)
	if err != nil {
		return errors.NewValidationError(utilityMessages["Date.calendar_date"])
	}

	u.PropertyID = uint(propertyID)
	u.Type = model.UtilityType(in.Type)
	u.Amount = amount.Round(2)
	u.Date = date
	return nil
}
