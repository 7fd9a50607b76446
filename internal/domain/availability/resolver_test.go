package availability

import (
	"context"
	"testing"
	"time"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"
)

type fakeAPI struct {
	records []hoaapi.SlotRecord
	err     error

	gotFacility int
	gotDate     string
}

func (f *fakeAPI) Availability(ctx context.Context, facilityID int, date string) ([]hoaapi.SlotRecord, error) {
	f.gotFacility = facilityID
	f.gotDate = date
	return f.records, f.err
}

func TestResolveDerivesAbsoluteTimes(t *testing.T) {
	api := &fakeAPI{records: []hoaapi.SlotRecord{
		{StartTime: "1:00 PM", EndTime: "2:00 PM", Available: true, Fee: 200, DiscountedFee: 150},
		{StartTime: "12:00 AM", EndTime: "12:00 PM", Available: true, Fee: 100, DiscountedFee: 100},
	}}
	resolver := NewResolver(api)

	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
	slots, err := resolver.Resolve(context.Background(), 1, date, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if api.gotFacility != 1 || api.gotDate != "2026-09-02" {
		t.Fatalf("unexpected query: facility=%d date=%s", api.gotFacility, api.gotDate)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}

	first := slots[0]
	if first.Start.Hour() != 13 || first.End.Hour() != 14 {
		t.Fatalf("expected 13:00-14:00, got %v-%v", first.Start, first.End)
	}
	if !first.Start.Before(first.End) {
		t.Fatal("expected start before end")
	}
	y, m, d := first.Start.Date()
	if y != 2026 || m != time.September || d != 2 {
		t.Fatalf("expected slot on booking date, got %v", first.Start)
	}

	// 12-hour edge cases: 12:00 AM is midnight, 12:00 PM is noon.
	second := slots[1]
	if second.Start.Hour() != 0 || second.End.Hour() != 12 {
		t.Fatalf("expected 00:00-12:00, got %v-%v", second.Start, second.End)
	}
}

func TestResolveDisplayFeeForVerifiedUser(t *testing.T) {
	api := &fakeAPI{records: []hoaapi.SlotRecord{
		{StartTime: "8:00 AM", EndTime: "1:00 PM", Available: true, Fee: 5000, DiscountedFee: 4000},
	}}
	resolver := NewResolver(api)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)

	slots, err := resolver.Resolve(context.Background(), 3, date, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if slots[0].DisplayFee != 4000 {
		t.Fatalf("expected discounted display fee, got %v", slots[0].DisplayFee)
	}
	if !slots[0].Discounted {
		t.Fatal("expected discounted flag")
	}
}

func TestResolveDisplayFeeForRegularUser(t *testing.T) {
	api := &fakeAPI{records: []hoaapi.SlotRecord{
		{StartTime: "8:00 AM", EndTime: "1:00 PM", Available: true, Fee: 5000, DiscountedFee: 4000},
	}}
	resolver := NewResolver(api)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)

	slots, err := resolver.Resolve(context.Background(), 3, date, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if slots[0].DisplayFee != 5000 {
		t.Fatalf("expected base display fee, got %v", slots[0].DisplayFee)
	}
	if slots[0].Discounted {
		t.Fatal("expected no discounted flag for unverified user")
	}
}

func TestResolveNoDiscountFlagWhenFeesEqual(t *testing.T) {
	api := &fakeAPI{records: []hoaapi.SlotRecord{
		{StartTime: "8:00 AM", EndTime: "9:00 AM", Available: true, Fee: 200, DiscountedFee: 200},
	}}
	resolver := NewResolver(api)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)

	slots, err := resolver.Resolve(context.Background(), 1, date, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if slots[0].Discounted {
		t.Fatal("expected no discounted flag when discounted fee equals base fee")
	}
	if slots[0].DisplayFee != 200 {
		t.Fatalf("expected display fee 200, got %v", slots[0].DisplayFee)
	}
}

func TestResolveRejectsMalformedLabel(t *testing.T) {
	api := &fakeAPI{records: []hoaapi.SlotRecord{
		{StartTime: "25:00", EndTime: "2:00 PM", Available: true},
	}}
	resolver := NewResolver(api)

	_, err := resolver.Resolve(context.Background(), 1, time.Now(), false)
	if err == nil {
		t.Fatal("expected error for malformed time label")
	}
}
