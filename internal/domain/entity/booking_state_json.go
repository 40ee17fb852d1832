package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const BookingStateSchemaVersion = 1

var ErrMalformedBookingState = errors.New("malformed booking state")

// bookingStateRecord is the persisted shape of a BookingState. Dates travel as
// ISO-8601 strings.
type bookingStateRecord struct {
	SchemaVersion int              `json:"schema_version"`
	Service       *Service         `json:"service,omitempty"`
	Bedrooms      int              `json:"bedrooms"`
	Bathrooms     int              `json:"bathrooms"`
	Address       *string          `json:"address,omitempty"`
	Suburb        *SuburbRef       `json:"suburb,omitempty"`
	ScheduledDate *string          `json:"scheduled_date,omitempty"`
	ScheduledTime *string          `json:"scheduled_time,omitempty"`
	Extras        []ExtraSelection `json:"selected_extras"`
	Cleaner       *CleanerRef      `json:"cleaner,omitempty"`
	Pricing       PricingBreakdown `json:"pricing"`
}

func (b BookingState) MarshalJSON() ([]byte, error) {
	rec := bookingStateRecord{
		SchemaVersion: BookingStateSchemaVersion,
		Service:       b.Service,
		Bedrooms:      b.Bedrooms,
		Bathrooms:     b.Bathrooms,
		Address:       b.Address,
		Suburb:        b.Suburb,
		ScheduledTime: b.ScheduledTime,
		Extras:        b.Extras,
		Cleaner:       b.Cleaner,
		Pricing:       b.Pricing,
	}
	if rec.Extras == nil {
		rec.Extras = []ExtraSelection{}
	}
	if b.ScheduledDate != nil {
		s := b.ScheduledDate.Format(DateLayout)
		rec.ScheduledDate = &s
	}
	return json.Marshal(rec)
}

func (b *BookingState) UnmarshalJSON(data []byte) error {
	var rec bookingStateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBookingState, err)
	}
	if rec.SchemaVersion > BookingStateSchemaVersion {
		return fmt.Errorf("%w: unsupported schema version %d", ErrMalformedBookingState, rec.SchemaVersion)
	}
	if rec.Bedrooms < 0 || rec.Bathrooms < 0 {
		return fmt.Errorf("%w: %v", ErrMalformedBookingState, ErrInvalidRoomCount)
	}

	state := BookingState{
		Service:       rec.Service,
		Bedrooms:      rec.Bedrooms,
		Bathrooms:     rec.Bathrooms,
		Address:       rec.Address,
		Suburb:        rec.Suburb,
		ScheduledTime: rec.ScheduledTime,
		Cleaner:       rec.Cleaner,
		Pricing:       rec.Pricing,
		Extras:        make([]ExtraSelection, 0, len(rec.Extras)),
	}
	if err := state.ReplaceExtras(rec.Extras); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBookingState, err)
	}
	if rec.ScheduledDate != nil {
		date, err := parseStoredDate(*rec.ScheduledDate)
		if err != nil {
			return fmt.Errorf("%w: scheduled_date %q", ErrMalformedBookingState, *rec.ScheduledDate)
		}
		state.ScheduledDate = &date
	}

	*b = state
	return nil
}

// parseStoredDate accepts a plain date or a full RFC 3339 timestamp, which is
// what older clients wrote.
func parseStoredDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDate(t), nil
}
