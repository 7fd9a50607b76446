package reservation

import (
	"time"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/amenity"
)

// Selection is one chosen amenity line: the quantity and the unit price
// snapshot captured at selection time.
type Selection struct {
	Quantity  int
	UnitPrice float64
}

// Draft is the single mutable aggregate accumulating every choice across the
// wizard. One live instance at a time, owned by the wizard; all fields are
// zero until the corresponding step sets them.
//
// Fees collapse to one value: ChargedFee is the amount actually charged and
// WasDiscounted records whether it came from the slot's discounted fee.
type Draft struct {
	Facility Facility  // zero until chosen
	Date     time.Time // calendar date, zero until chosen
	Start    time.Time // derived together with End from one slot
	End      time.Time

	ChargedFee    float64
	WasDiscounted bool

	// Event-only fields, meaningful only when Facility is the event venue.
	EventType  string
	GuestCount int
	Amenities  map[int]Selection // keyed by catalog id
}

// NewDraft creates an empty draft.
func NewDraft() *Draft {
	return &Draft{Amenities: make(map[int]Selection)}
}

// Reset returns the draft to its initial all-zero state.
func (d *Draft) Reset() {
	*d = Draft{Amenities: make(map[int]Selection)}
}

// HasFacility reports whether the facility step is complete.
func (d *Draft) HasFacility() bool { return d.Facility.Valid() }

// HasDate reports whether the date step is complete.
func (d *Draft) HasDate() bool { return !d.Date.IsZero() }

// HasSlot reports whether the time step is complete.
func (d *Draft) HasSlot() bool { return !d.Start.IsZero() && !d.End.IsZero() }

// SetQuantity records an amenity quantity with its unit price snapshot.
// Out-of-range input is clamped to [0, max], never rejected.
func (d *Draft) SetQuantity(opt amenity.Option, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	if quantity > opt.MaxQuantity {
		quantity = opt.MaxQuantity
	}
	d.Amenities[opt.ID] = Selection{Quantity: quantity, UnitPrice: opt.Price}
}

// ToggleAmenity flips a single-quantity amenity on or off. Options with a
// higher maximum are left to SetQuantity.
func (d *Draft) ToggleAmenity(opt amenity.Option) {
	if !opt.Toggle() {
		return
	}
	if d.Amenities[opt.ID].Quantity == 1 {
		d.Amenities[opt.ID] = Selection{Quantity: 0, UnitPrice: opt.Price}
	} else {
		d.Amenities[opt.ID] = Selection{Quantity: 1, UnitPrice: opt.Price}
	}
}

// clearEventFields drops event metadata and amenity selections. Called when
// the facility moves off the event venue so stale selections cannot be
// carried into a court booking.
func (d *Draft) clearEventFields() {
	d.EventType = ""
	d.GuestCount = 0
	d.Amenities = make(map[int]Selection)
}

// clearSlot drops the chosen window and its fee; they belong to a specific
// facility and date.
func (d *Draft) clearSlot() {
	d.Start = time.Time{}
	d.End = time.Time{}
	d.ChargedFee = 0
	d.WasDiscounted = false
}
