package entity

import (
	"github.com/shopspring/decimal"
)

// Service is an offering definition from the catalog. A nil per-room price
// means the service is not priced per room.
type Service struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug,omitempty"`
	Description      *string          `json:"description,omitempty"`
	CategoryID       *string          `json:"category_id,omitempty"`
	BasePrice        decimal.Decimal  `json:"base_price"`
	PerBedroomPrice  *decimal.Decimal `json:"per_bedroom_price,omitempty"`
	PerBathroomPrice *decimal.Decimal `json:"per_bathroom_price,omitempty"`
	DurationMinutes  int              `json:"duration_minutes"`
	IsActive         bool             `json:"is_active"`
}

type Extra struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
}

type Region struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type Suburb struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	RegionID string    `json:"region_id"`
	IsActive bool      `json:"is_active"`
	Region   RegionRef `json:"region"`
}

// Ref returns the read-only location reference kept on a booking.
func (s Suburb) Ref() SuburbRef {
	return SuburbRef{ID: s.ID, Name: s.Name, Region: s.Region}
}

type Cleaner struct {
	ID          string          `json:"id"`
	FirstName   *string         `json:"first_name,omitempty"`
	LastName    *string         `json:"last_name,omitempty"`
	Bio         *string         `json:"bio,omitempty"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Rating      *float64        `json:"rating,omitempty"`
	TotalJobs   *int            `json:"total_jobs,omitempty"`
	IsAvailable bool            `json:"is_available"`
	RegionIDs   []string        `json:"region_ids,omitempty"`
}

// ServesRegion reports whether the cleaner works in regionID. Cleaners
// without explicit regions serve every region.
func (c Cleaner) ServesRegion(regionID string) bool {
	if regionID == "" || len(c.RegionIDs) == 0 {
		return true
	}
	for _, id := range c.RegionIDs {
		if id == regionID {
			return true
		}
	}
	return false
}

func (c Cleaner) Ref() CleanerRef {
	return CleanerRef{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
}
