package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/amenity"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/availability"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/validator"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)

func newTestWizard() *Wizard {
	w := NewWizard()
	w.now = func() time.Time { return testNow }
	return w
}

func slotOn(date time.Time, startHour, endHour int, fee float64) availability.Slot {
	return availability.Slot{
		Available:  true,
		Start:      time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, date.Location()),
		End:        time.Date(date.Year(), date.Month(), date.Day(), endHour, 0, 0, 0, date.Location()),
		DisplayFee: fee,
	}
}

func TestStrictForwardGating(t *testing.T) {
	w := newTestWizard()

	if err := w.ChooseDate(testNow.AddDate(0, 0, 1)); !errors.Is(err, ErrFacilityRequired) {
		t.Fatalf("expected ErrFacilityRequired, got %v", err)
	}
	if err := w.ChooseSlot(slotOn(testNow, 13, 14, 200)); !errors.Is(err, ErrFacilityRequired) {
		t.Fatalf("expected ErrFacilityRequired, got %v", err)
	}

	if err := w.ChooseFacility(FacilityTennisCourt); err != nil {
		t.Fatalf("ChooseFacility: %v", err)
	}
	if w.Step() != StepFacilityChosen {
		t.Fatalf("expected StepFacilityChosen, got %v", w.Step())
	}

	if err := w.ChooseSlot(slotOn(testNow, 13, 14, 200)); !errors.Is(err, ErrDateRequired) {
		t.Fatalf("expected ErrDateRequired, got %v", err)
	}
}

func TestChooseDateRejectsPast(t *testing.T) {
	w := newTestWizard()
	_ = w.ChooseFacility(FacilityTennisCourt)

	if err := w.ChooseDate(testNow.AddDate(0, 0, -1)); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
	// Today is fine even later in the day.
	if err := w.ChooseDate(testNow); err != nil {
		t.Fatalf("expected today accepted, got %v", err)
	}
}

func TestChooseSlotSetsTimesAndFee(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 1)
	_ = w.ChooseFacility(FacilityTennisCourt)
	_ = w.ChooseDate(date)

	slot := slotOn(date, 13, 14, 200)
	slot.Discounted = false
	if err := w.ChooseSlot(slot); err != nil {
		t.Fatalf("ChooseSlot: %v", err)
	}

	d := w.Draft()
	if !sameDay(d.Start, d.Date) || !sameDay(d.End, d.Date) {
		t.Fatal("expected slot times on the booking date")
	}
	if !d.Start.Before(d.End) {
		t.Fatal("expected start before end")
	}
	if d.ChargedFee != 200 || d.WasDiscounted {
		t.Fatalf("unexpected fee state: %v %v", d.ChargedFee, d.WasDiscounted)
	}
	// Non-event facility skips amenities entirely.
	if w.Step() != StepSummaryReady {
		t.Fatalf("expected StepSummaryReady, got %v", w.Step())
	}
	if !w.Ready() {
		t.Fatal("expected wizard ready")
	}
}

func TestChooseSlotRejectsUnavailable(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 1)
	_ = w.ChooseFacility(FacilityTennisCourt)
	_ = w.ChooseDate(date)

	slot := slotOn(date, 13, 14, 200)
	slot.Available = false
	if err := w.ChooseSlot(slot); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestEventVenueRequiresAmenitiesStep(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 2)
	_ = w.ChooseFacility(FacilityEventPlace)
	_ = w.ChooseDate(date)
	_ = w.ChooseSlot(slotOn(date, 8, 13, 5000))

	if w.Step() != StepTimeChosen {
		t.Fatalf("expected StepTimeChosen, got %v", w.Step())
	}
	if w.Ready() {
		t.Fatal("event venue must configure amenities before summary")
	}

	options := []amenity.Option{
		{ID: 1, Name: "Chair", Price: 20, MaxQuantity: 200},
		{ID: 4, Name: "Brides Room", Price: 1500, MaxQuantity: 1},
	}
	err := w.ConfigureAmenities(AmenitiesForm{
		EventType:  "Wedding",
		GuestCount: 50,
		Quantities: map[int]int{1: 100, 4: 1},
	}, options)
	if err != nil {
		t.Fatalf("ConfigureAmenities: %v", err)
	}

	if w.Step() != StepAmenitiesConfigured || !w.Ready() {
		t.Fatalf("expected ready after amenities, step=%v", w.Step())
	}
	d := w.Draft()
	if d.EventType != "Wedding" || d.GuestCount != 50 {
		t.Fatalf("unexpected event fields: %q %d", d.EventType, d.GuestCount)
	}
	if d.Amenities[1].Quantity != 100 || d.Amenities[1].UnitPrice != 20 {
		t.Fatalf("unexpected chair selection: %+v", d.Amenities[1])
	}
}

func TestConfigureAmenitiesValidation(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 2)
	_ = w.ChooseFacility(FacilityEventPlace)
	_ = w.ChooseDate(date)
	_ = w.ChooseSlot(slotOn(date, 8, 13, 5000))

	tests := []struct {
		name string
		form AmenitiesForm
	}{
		{"missing event type", AmenitiesForm{GuestCount: 10}},
		{"zero guest count", AmenitiesForm{EventType: "Wedding"}},
		{"negative guest count", AmenitiesForm{EventType: "Wedding", GuestCount: -3}},
		{"others without label", AmenitiesForm{EventType: "Others", GuestCount: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := w.ConfigureAmenities(tc.form, nil)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var fields validator.FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected FieldErrors, got %T", err)
			}
			if w.Step() != StepTimeChosen {
				t.Fatalf("expected advancement blocked, step=%v", w.Step())
			}
		})
	}
}

func TestConfigureAmenitiesClampsQuantities(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 2)
	_ = w.ChooseFacility(FacilityEventPlace)
	_ = w.ChooseDate(date)
	_ = w.ChooseSlot(slotOn(date, 8, 13, 5000))

	options := []amenity.Option{{ID: 1, Name: "Chair", Price: 20, MaxQuantity: 200}}
	err := w.ConfigureAmenities(AmenitiesForm{
		EventType:  "Birthday",
		GuestCount: 30,
		Quantities: map[int]int{1: 9999},
	}, options)
	if err != nil {
		t.Fatalf("ConfigureAmenities: %v", err)
	}
	if got := w.Draft().Amenities[1].Quantity; got != 200 {
		t.Fatalf("expected clamp to 200, got %d", got)
	}
}

func TestOthersEventTypeUsesCustomLabel(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 2)
	_ = w.ChooseFacility(FacilityEventPlace)
	_ = w.ChooseDate(date)
	_ = w.ChooseSlot(slotOn(date, 8, 13, 5000))

	err := w.ConfigureAmenities(AmenitiesForm{
		EventType:       "Others",
		CustomEventType: "Quarterly HOA Assembly",
		GuestCount:      80,
	}, nil)
	if err != nil {
		t.Fatalf("ConfigureAmenities: %v", err)
	}
	if got := w.Draft().EventType; got != "Quarterly HOA Assembly" {
		t.Fatalf("expected custom label, got %q", got)
	}
}

func TestAmenitiesRejectedForNonEventFacility(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 1)
	_ = w.ChooseFacility(FacilityBasketballCourt)
	_ = w.ChooseDate(date)
	_ = w.ChooseSlot(slotOn(date, 9, 10, 150))

	err := w.ConfigureAmenities(AmenitiesForm{EventType: "Birthday", GuestCount: 10}, nil)
	if !errors.Is(err, ErrNotEventVenue) {
		t.Fatalf("expected ErrNotEventVenue, got %v", err)
	}
}

func TestSwitchingOffEventVenueClearsEventFields(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 2)
	_ = w.ChooseFacility(FacilityEventPlace)
	_ = w.ChooseDate(date)
	_ = w.ChooseSlot(slotOn(date, 8, 13, 5000))
	_ = w.ConfigureAmenities(AmenitiesForm{
		EventType:  "Wedding",
		GuestCount: 50,
		Quantities: map[int]int{1: 100},
	}, []amenity.Option{{ID: 1, Price: 20, MaxQuantity: 200}})

	// Backtrack to a court: stale event state must not survive.
	if err := w.ChooseFacility(FacilityTennisCourt); err != nil {
		t.Fatalf("ChooseFacility: %v", err)
	}

	d := w.Draft()
	if d.EventType != "" || d.GuestCount != 0 || len(d.Amenities) != 0 {
		t.Fatalf("expected event fields cleared, got %q %d %v", d.EventType, d.GuestCount, d.Amenities)
	}
	if d.HasSlot() || d.ChargedFee != 0 {
		t.Fatal("expected old facility's slot and fee dropped")
	}
	// The date is facility-independent and survives the backtrack.
	if !d.HasDate() {
		t.Fatal("expected date kept")
	}
	if w.Step() != StepDateChosen {
		t.Fatalf("expected StepDateChosen, got %v", w.Step())
	}
}

func TestReChoosingSameFacilityKeepsDraft(t *testing.T) {
	w := newTestWizard()
	date := testNow.AddDate(0, 0, 1)
	_ = w.ChooseFacility(FacilityTennisCourt)
	_ = w.ChooseDate(date)
	_ = w.ChooseSlot(slotOn(date, 13, 14, 200))

	if err := w.ChooseFacility(FacilityTennisCourt); err != nil {
		t.Fatalf("ChooseFacility: %v", err)
	}
	if !w.Draft().HasSlot() {
		t.Fatal("expected slot kept when facility unchanged")
	}
}
