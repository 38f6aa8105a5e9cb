package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type CreatePropertyRequest struct {
	PropertyName string `json:"property_name" validate:"required"`
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required,len=2"`
	ZipCode      string `json:"zip_code" validate:"required"`
}

type UpdatePropertyRequest struct {
	PropertyID   uuid.UUID `json:"property_id" validate:"required"`
	PropertyName string    `json:"property_name" validate:"required"`
	Address      string    `json:"address" validate:"required"`
	City         string    `json:"city" validate:"required"`
	State        string    `json:"state" validate:"required,len=2"`
	ZipCode      string    `json:"zip_code" validate:"required"`
}

type CreateUnitRequest struct {
	PropertyID       uuid.UUID `json:"property_id" validate:"required"`
	UnitNumber       string    `json:"unit_number" validate:"required"`
	Bedrooms         int       `json:"bedrooms" validate:"gte=0"`
	Bathrooms        float64   `json:"bathrooms" validate:"gte=0"`
	MonthlyRentCents int64     `json:"monthly_rent_cents" validate:"required,gt=0"`
}

/*──────────────────────────────────────────────────────────
  Property DTO – units nested per property
──────────────────────────────────────────────────────────*/
type Property struct {
	ID           uuid.UUID      `json:"id"`
	PropertyName string         `json:"property_name"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	ZipCode      string         `json:"zip_code"`
	Units        []*models.Unit `json:"units,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func NewPropertyFromModel(p *models.Property, units []*models.Unit) Property {
	return Property{
		ID:           p.ID,
		PropertyName: p.PropertyName,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		Units:        units,
		CreatedAt:    p.CreatedAt,
	}
}
