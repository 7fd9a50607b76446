package reservation

import (
	"testing"
	"time"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/amenity"
)

func TestSetQuantityClampsToRange(t *testing.T) {
	chair := amenity.Option{ID: 1, Name: "Chair", Price: 20, MaxQuantity: 200}
	d := NewDraft()

	d.SetQuantity(chair, 250)
	if got := d.Amenities[1].Quantity; got != 200 {
		t.Fatalf("expected clamp to 200, got %d", got)
	}

	d.SetQuantity(chair, -5)
	if got := d.Amenities[1].Quantity; got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}

	d.SetQuantity(chair, 100)
	if got := d.Amenities[1]; got.Quantity != 100 || got.UnitPrice != 20 {
		t.Fatalf("expected quantity 100 at price 20, got %+v", got)
	}
}

func TestToggleAmenityIsIdempotentPair(t *testing.T) {
	bridesRoom := amenity.Option{ID: 4, Name: "Brides Room", Price: 1500, MaxQuantity: 1}
	d := NewDraft()

	d.ToggleAmenity(bridesRoom)
	if d.Amenities[4].Quantity != 1 {
		t.Fatalf("expected quantity 1 after first toggle, got %d", d.Amenities[4].Quantity)
	}
	d.ToggleAmenity(bridesRoom)
	if d.Amenities[4].Quantity != 0 {
		t.Fatalf("expected quantity 0 after second toggle, got %d", d.Amenities[4].Quantity)
	}
	d.ToggleAmenity(bridesRoom)
	if d.Amenities[4].Quantity != 1 {
		t.Fatalf("expected quantity 1 after third toggle, got %d", d.Amenities[4].Quantity)
	}
}

func TestToggleIgnoresMultiQuantityOptions(t *testing.T) {
	chair := amenity.Option{ID: 1, Name: "Chair", Price: 20, MaxQuantity: 200}
	d := NewDraft()
	d.SetQuantity(chair, 50)

	d.ToggleAmenity(chair)
	if d.Amenities[1].Quantity != 50 {
		t.Fatalf("expected toggle to be a no-op, got %d", d.Amenities[1].Quantity)
	}
}

func TestResetReturnsToInitialState(t *testing.T) {
	d := NewDraft()
	d.Facility = FacilityEventPlace
	d.Date = time.Now()
	d.Start = time.Now()
	d.End = time.Now().Add(time.Hour)
	d.ChargedFee = 4000
	d.WasDiscounted = true
	d.EventType = "Wedding"
	d.GuestCount = 50
	d.SetQuantity(amenity.Option{ID: 1, Price: 20, MaxQuantity: 200}, 100)

	d.Reset()

	if d.HasFacility() || d.HasDate() || d.HasSlot() {
		t.Fatal("expected all step fields cleared")
	}
	if d.ChargedFee != 0 || d.WasDiscounted {
		t.Fatal("expected fee state cleared")
	}
	if d.EventType != "" || d.GuestCount != 0 || len(d.Amenities) != 0 {
		t.Fatal("expected event fields cleared")
	}
}
