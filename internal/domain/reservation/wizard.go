package reservation

import (
	"strings"
	"time"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/amenity"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/availability"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/validator"
)

// Step names the wizard states in their strict forward order.
type Step int

const (
	StepEmpty Step = iota
	StepFacilityChosen
	StepDateChosen
	StepTimeChosen
	StepAmenitiesConfigured
	StepSummaryReady
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepEmpty:
		return "empty"
	case StepFacilityChosen:
		return "facility_chosen"
	case StepDateChosen:
		return "date_chosen"
	case StepTimeChosen:
		return "time_chosen"
	case StepAmenitiesConfigured:
		return "amenities_configured"
	case StepSummaryReady:
		return "summary_ready"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// EventTypeOthers is the sentinel selection requiring a custom label.
const EventTypeOthers = "Others"

// AmenitiesForm is the event-configuration input for the amenities step.
type AmenitiesForm struct {
	EventType       string      `json:"event_type" validate:"required,event_type"`
	CustomEventType string      `json:"custom_event_type"`
	GuestCount      int         `json:"guest_count" validate:"required,gt=0"`
	Quantities      map[int]int `json:"quantities"`
}

// FinalEventType resolves the sentinel "Others" to the custom label.
func (f AmenitiesForm) FinalEventType() string {
	if f.EventType == EventTypeOthers {
		return strings.TrimSpace(f.CustomEventType)
	}
	return f.EventType
}

// Wizard is the explicit reservation flow state machine. It owns the one
// live Draft and guards every transition on the previous step's fields.
type Wizard struct {
	draft *Draft
	step  Step

	// now is replaceable in tests.
	now func() time.Time
}

// NewWizard creates a wizard with an empty draft.
func NewWizard() *Wizard {
	return &Wizard{draft: NewDraft(), now: time.Now}
}

// Draft exposes the wizard's aggregate for display and estimation. Steps
// mutate it only through the transition methods.
func (w *Wizard) Draft() *Draft { return w.draft }

// Step returns the current state.
func (w *Wizard) Step() Step { return w.step }

// ChooseFacility sets the facility. Choosing can happen from any state, which
// covers both first entry and backtracking; a stale draft from an abandoned
// run is simply overwritten. Moving off the event venue clears event and
// amenity fields, and the previously chosen slot is dropped because its fee
// belongs to the old facility.
func (w *Wizard) ChooseFacility(f Facility) error {
	if !f.Valid() {
		return ErrInvalidFacility
	}

	changed := w.draft.Facility != f
	w.draft.Facility = f
	if changed {
		w.draft.clearSlot()
		if !f.EventVenue() {
			w.draft.clearEventFields()
		}
	}

	if w.draft.HasDate() {
		w.step = StepDateChosen
	} else {
		w.step = StepFacilityChosen
	}
	return nil
}

// ChooseDate sets the booking date. Requires a facility; rejects dates
// before today. Changing the date drops any previously chosen slot.
func (w *Wizard) ChooseDate(date time.Time) error {
	if !w.draft.HasFacility() {
		return ErrFacilityRequired
	}

	day := truncateToDay(date)
	if day.Before(truncateToDay(w.now())) {
		return ErrPastDate
	}

	w.draft.Date = day
	w.draft.clearSlot()
	w.step = StepDateChosen
	return nil
}

// ChooseSlot records the selected availability window. Requires facility and
// date; only available slots are selectable. Start/End come from the slot's
// derived absolute times and the charged fee from its display fee.
func (w *Wizard) ChooseSlot(slot availability.Slot) error {
	if !w.draft.HasFacility() {
		return ErrFacilityRequired
	}
	if !w.draft.HasDate() {
		return ErrDateRequired
	}
	if !slot.Available {
		return ErrSlotUnavailable
	}
	if !sameDay(slot.Start, w.draft.Date) || !sameDay(slot.End, w.draft.Date) || !slot.Start.Before(slot.End) {
		return ErrSlotInvalid
	}

	w.draft.Start = slot.Start
	w.draft.End = slot.End
	w.draft.ChargedFee = slot.DisplayFee
	w.draft.WasDiscounted = slot.Discounted

	if w.draft.Facility.EventVenue() {
		w.step = StepTimeChosen
	} else {
		// Non-event facilities skip the amenities step entirely.
		w.step = StepSummaryReady
	}
	return nil
}

// ConfigureAmenities validates and applies event metadata and amenity
// quantities. Event venue only. Quantities are clamped to each option's
// maximum; validation failures block advancement and are returned as
// field-level errors.
func (w *Wizard) ConfigureAmenities(form AmenitiesForm, options []amenity.Option) error {
	if !w.draft.Facility.EventVenue() {
		return ErrNotEventVenue
	}
	if w.step < StepTimeChosen {
		return ErrDateRequired
	}

	if err := validator.Check(form); err != nil {
		return err
	}
	if form.EventType == EventTypeOthers && form.FinalEventType() == "" {
		return validator.FieldErrors{"event_type": "Please enter your event type"}
	}

	w.draft.EventType = form.FinalEventType()
	w.draft.GuestCount = form.GuestCount
	for _, opt := range options {
		w.draft.SetQuantity(opt, form.Quantities[opt.ID])
	}

	w.step = StepAmenitiesConfigured
	return nil
}

// Ready reports whether the draft can be reviewed and submitted. For the
// event venue that means amenities were configured; other facilities reach
// summary straight from the time step.
func (w *Wizard) Ready() bool {
	if w.step != StepSummaryReady && w.step != StepAmenitiesConfigured {
		return false
	}
	return w.draft.HasFacility() && w.draft.HasDate() && w.draft.HasSlot()
}

// finishSubmission marks the flow terminal and resets the draft. Called
// exactly once per confirmed success.
func (w *Wizard) finishSubmission() {
	w.step = StepSubmitted
	w.draft.Reset()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
