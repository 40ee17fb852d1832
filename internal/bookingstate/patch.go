package bookingstate

import (
	"time"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

// Patch is a partial update. Nil fields are left as they are; the Clear*
// flags drop an optional field.
type Patch struct {
	Service       *entity.Service
	Bedrooms      *int
	Bathrooms     *int
	Address       *string
	Suburb        *entity.SuburbRef
	ScheduledDate *time.Time
	ScheduledTime *string
	Extras        *[]entity.ExtraSelection
	Cleaner       *entity.CleanerRef

	ClearService bool
	ClearSuburb  bool
	ClearCleaner bool
}

func (p Patch) validate() error {
	if (p.Bedrooms != nil && *p.Bedrooms < 0) || (p.Bathrooms != nil && *p.Bathrooms < 0) {
		return entity.ErrInvalidRoomCount
	}
	if p.ScheduledTime != nil {
		if err := entity.ValidateScheduledTime(*p.ScheduledTime); err != nil {
			return err
		}
	}
	return nil
}

// apply merges p into state. The caller has validated p.
func (p Patch) apply(state *entity.BookingState) error {
	if p.Extras != nil {
		if err := state.ReplaceExtras(*p.Extras); err != nil {
			return err
		}
	}
	if p.ClearService {
		state.Service = nil
	}
	if p.Service != nil {
		svc := *p.Service
		state.Service = &svc
	}
	if p.Bedrooms != nil {
		state.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		state.Bathrooms = *p.Bathrooms
	}
	if p.Address != nil {
		addr := *p.Address
		state.Address = &addr
	}
	if p.ClearSuburb {
		state.Suburb = nil
	}
	if p.Suburb != nil {
		suburb := *p.Suburb
		state.Suburb = &suburb
	}
	if p.ScheduledDate != nil {
		date := entity.CalendarDate(*p.ScheduledDate)
		state.ScheduledDate = &date
	}
	if p.ScheduledTime != nil {
		tm := *p.ScheduledTime
		state.ScheduledTime = &tm
	}
	if p.ClearCleaner {
		state.Cleaner = nil
	}
	if p.Cleaner != nil {
		cleaner := *p.Cleaner
		state.Cleaner = &cleaner
	}
	return nil
}
