package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/constants"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// SeedTestAccounts inserts a demo landlord with one property, one unit
// and one tenant so local environments and preview deployments have
// something to click through. Idempotent: keyed on the demo subdomain.
func SeedTestAccounts(
	landlordRepo repositories.LandlordRepository,
	propRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	tenantRepo repositories.TenantRepository,
) error {
	ctx := context.Background()

	existing, err := landlordRepo.GetBySubdomain(ctx, "demo")
	if err != nil {
		return err
	}
	if existing != nil {
		utils.Logger.Debug("Demo landlord already seeded")
		return nil
	}

	landlord := &models.Landlord{
		ID:               uuid.New(),
		Name:             "Dana Whitfield",
		Email:            "demo-landlord@example.com",
		Subdomain:        "demo",
		DisplayName:      "Whitfield Properties",
		AccentColor:      "#1f6feb",
		SubscriptionTier: constants.TierStarter,
	}
	if err := landlordRepo.Create(ctx, landlord); err != nil {
		return err
	}

	prop := &models.Property{
		ID:           uuid.New(),
		LandlordID:   landlord.ID,
		PropertyName: "Maple Court",
		Address:      "412 Maple Ct",
		City:         "Huntsville",
		State:        "AL",
		ZipCode:      "35801",
	}
	if err := propRepo.Create(ctx, prop); err != nil {
		return err
	}

	unit := &models.Unit{
		ID:               uuid.New(),
		PropertyID:       prop.ID,
		UnitNumber:       "1A",
		Bedrooms:         2,
		Bathrooms:        1,
		MonthlyRentCents: 135000,
		Vacant:           false,
	}
	if err := unitRepo.Create(ctx, unit); err != nil {
		return err
	}

	tenant := &models.Tenant{
		ID:         uuid.New(),
		LandlordID: landlord.ID,
		UnitID:     &unit.ID,
		FullName:   "Jordan Reyes",
		Email:      "demo-tenant@example.com",
		Phone:      "+12565550123",
	}
	if err := tenantRepo.Create(ctx, tenant); err != nil {
		return err
	}

	utils.Logger.Info("Seeded demo landlord, property, unit and tenant")
	return nil
}
