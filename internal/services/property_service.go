package services

import (
	"context"

	"github.com/google/uuid"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// PropertyService covers dashboard property and unit management.
type PropertyService struct {
	propRepo repositories.PropertyRepository
	unitRepo repositories.UnitRepository
}

func NewPropertyService(propRepo repositories.PropertyRepository, unitRepo repositories.UnitRepository) *PropertyService {
	return &PropertyService{propRepo: propRepo, unitRepo: unitRepo}
}

func (s *PropertyService) Create(ctx context.Context, landlordID uuid.UUID, req internal_dtos.CreatePropertyRequest) (*models.Property, error) {
	p := &models.Property{
		ID:           uuid.New(),
		LandlordID:   landlordID,
		PropertyName: req.PropertyName,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
	}
	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, landlordID uuid.UUID, req internal_dtos.UpdatePropertyRequest) (*models.Property, error) {
	var final *models.Property
	err := s.propRepo.UpdateWithRetry(ctx, req.PropertyID, func(stored *models.Property) error {
		if stored.LandlordID != landlordID {
			return utils.ErrNotFound
		}
		stored.PropertyName = req.PropertyName
		stored.Address = req.Address
		stored.City = req.City
		stored.State = req.State
		stored.ZipCode = req.ZipCode
		final = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return final, nil
}

// List returns the landlord's properties with their units nested.
func (s *PropertyService) List(ctx context.Context, landlordID uuid.UUID) ([]internal_dtos.Property, error) {
	props, err := s.propRepo.ListByLandlordID(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	out := make([]internal_dtos.Property, 0, len(props))
	for _, p := range props {
		units, err := s.unitRepo.ListByPropertyID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, internal_dtos.NewPropertyFromModel(p, units))
	}
	return out, nil
}

func (s *PropertyService) Delete(ctx context.Context, landlordID, propertyID uuid.UUID) error {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p == nil || p.LandlordID != landlordID {
		return utils.ErrNotFound
	}
	return s.propRepo.Delete(ctx, propertyID)
}

func (s *PropertyService) AddUnit(ctx context.Context, landlordID uuid.UUID, req internal_dtos.CreateUnitRequest) (*models.Unit, error) {
	p, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}

	u := &models.Unit{
		ID:               uuid.New(),
		PropertyID:       req.PropertyID,
		UnitNumber:       req.UnitNumber,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		MonthlyRentCents: req.MonthlyRentCents,
		Vacant:           true,
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetUnitVacancy flips a unit's vacancy after checking ownership through
// its property.
func (s *PropertyService) SetUnitVacancy(ctx context.Context, landlordID, unitID uuid.UUID, vacant bool) (*models.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.ErrNotFound
	}
	p, err := s.propRepo.GetByID(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.LandlordID != landlordID {
		return nil, utils.ErrNotFound
	}

	var final *models.Unit
	err = s.unitRepo.UpdateWithRetry(ctx, unitID, func(stored *models.Unit) error {
		stored.Vacant = vacant
		final = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return final, nil
}
