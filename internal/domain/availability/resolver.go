package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"
)

// clockLayout matches the server's 12-hour time labels, e.g. "1:00 PM".
const clockLayout = "3:04 PM"

// API is the slice of the API client the resolver depends on.
type API interface {
	Availability(ctx context.Context, facilityID int, date string) ([]hoaapi.SlotRecord, error)
}

// Resolver fetches bookable time blocks for a facility and date and derives
// absolute start/end times and the fee the requesting user would pay.
type Resolver struct {
	api API
}

// NewResolver creates a new availability resolver.
func NewResolver(api API) *Resolver {
	return &Resolver{api: api}
}

// Resolve fetches the slots for facilityID on date. verified selects the
// discounted fee where the server offers one; the discount flag is only set
// when the discounted fee actually undercuts the base fee.
func (r *Resolver) Resolve(ctx context.Context, facilityID int, date time.Time, verified bool) ([]Slot, error) {
	records, err := r.api.Availability(ctx, facilityID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, len(records))
	for _, rec := range records {
		start, err := combine(date, rec.StartTime)
		if err != nil {
			return nil, fmt.Errorf("availability: slot %q: %w", rec.StartTime, err)
		}
		end, err := combine(date, rec.EndTime)
		if err != nil {
			return nil, fmt.Errorf("availability: slot %q: %w", rec.EndTime, err)
		}

		baseFee := float64(rec.Fee)
		discountedFee := float64(rec.DiscountedFee)

		displayFee := baseFee
		if verified {
			displayFee = discountedFee
		}

		slots = append(slots, Slot{
			StartLabel:    rec.StartTime,
			EndLabel:      rec.EndTime,
			Available:     rec.Available,
			BaseFee:       baseFee,
			DiscountedFee: discountedFee,
			Start:         start,
			End:           end,
			DisplayFee:    displayFee,
			Discounted:    verified && discountedFee < baseFee,
		})
	}
	return slots, nil
}

// combine anchors a 12-hour clock label on the booking date.
func combine(date time.Time, label string) (time.Time, error) {
	clock, err := time.Parse(clockLayout, strings.TrimSpace(label))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time label: %w", err)
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		date.Location(),
	), nil
}
