package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"propertyhub/internal/repository"
	"propertyhub/internal/service"
)

type demoBill struct {
	Type   string
	Amount string
	Date   string
}

type demoProperty struct {
	Property service.PropertyInput
	Bills    []demoBill
}

var demoData = []demoProperty{
	{
		Property: service.PropertyInput{Name: "Sunset Apartments", Address: "123 Main St", Type: "residential"},
		Bills: []demoBill{
			{Type: "electricity", Amount: "142.30", Date: "2024-01-31"},
			{Type: "water", Amount: "48.75", Date: "2024-01-31"},
			{Type: "gas", Amount: "95.10", Date: "2024-02-29"},
		},
	},
	{
		Property: service.PropertyInput{Name: "Downtown Plaza", Address: "456 Oak Ave", Type: "commercial"},
		Bills: []demoBill{
			{Type: "electricity", Amount: "1210.00", Date: "2024-01-31"},
			{Type: "water", Amount: "310.40", Date: "2024-02-29"},
		},
	},
	{
		Property: service.PropertyInput{Name: "Maple House", Address: "9 Elm Street", Type: "residential"},
		Bills: []demoBill{
			{Type: "gas", Amount: "60.00", Date: "2024-03-31"},
		},
	},
	{
		Property: service.PropertyInput{Name: "Harbor Warehouse", Address: "77 Dock Rd", Type: "commercial"},
	},
}

// seedDemo inserts demoData through the services, so every row passes the
// same validation as API input. It does nothing when properties exist
// unless force is set.
func seedDemo(ctx context.Context, gormDB *gorm.DB, force bool) (properties, bills int, err error) {
	propertyRepo := repository.NewPropertyRepository(gormDB)
	utilityRepo := repository.NewUtilityRepository(gormDB)
	propertyService := service.NewPropertyService(propertyRepo, utilityRepo)
	utilityService := service.NewUtilityService(utilityRepo, propertyRepo)

	if !force {
		existing, err := propertyService.List(ctx)
		if err != nil {
			return 0, 0, err
		}
		if len(existing) > 0 {
			slog.Info("properties already present, skipping demo data", "count", len(existing))
			return 0, 0, nil
		}
	}

	for _, item := range demoData {
		property, err := propertyService.Create(ctx, item.Property)
		if err != nil {
			return properties, bills, fmt.Errorf("create property %q: %w", item.Property.Name, err)
		}
		properties++

		for _, bill := range item.Bills {
			if _, err := utilityService.Create(ctx, service.UtilityInput{
				PropertyID: fmt.Sprint(property.ID),
				Type:       bill.Type,
				Amount:     bill.Amount,
				Date:       bill.Date,
			}); err != nil {
				return properties, bills, fmt.Errorf("create %s bill for %q: %w", bill.Type, property.Name, err)
			}
			bills++
		}
	}
	return properties, bills, nil
}
