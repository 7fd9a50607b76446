package reservation

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/session"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// API is the slice of the API client the reservation service depends on.
type API interface {
	StoreReservation(ctx context.Context, req hoaapi.StoreReservationRequest) (*hoaapi.ReservationRecord, error)
	Reservations(ctx context.Context) ([]hoaapi.ReservationRecord, error)
}

// Session is what the service needs from the session store.
type Session interface {
	Authenticated() bool
	User() *session.User
}

// Service submits completed drafts and lists confirmed reservations.
type Service struct {
	api     API
	session Session

	// inFlight makes submission idempotent from the caller's perspective: a
	// second confirm while a request is outstanding cannot fire a second
	// network call.
	inFlight atomic.Bool
}

// NewService creates a new reservation service.
func NewService(api API, sess Session) *Service {
	return &Service{api: api, session: sess}
}

// Submit serializes the wizard's draft and sends it to the server. On
// success the draft is fully reset; on any failure it is left untouched so
// the user can retry without re-entering the wizard.
func (s *Service) Submit(ctx context.Context, w *Wizard) (*ConfirmedReservation, error) {
	if !s.session.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	draft := w.Draft()
	if !draft.HasFacility() || !draft.HasDate() || !draft.HasSlot() {
		return nil, ErrMissingDetails
	}
	if !w.Ready() {
		return nil, ErrNotReady
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	req := buildRequest(draft)
	record, err := s.api.StoreReservation(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("Reservation submission failed")
		return nil, err
	}

	w.finishSubmission()
	confirmed := fromRecord(*record)
	log.Info().
		Int64("reservation_id", confirmed.ID).
		Str("facility", confirmed.Facility.String()).
		Msg("Reservation confirmed")
	return &confirmed, nil
}

// List fetches the user's confirmed reservations.
func (s *Service) List(ctx context.Context) ([]ConfirmedReservation, error) {
	if !s.session.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	records, err := s.api.Reservations(ctx)
	if err != nil {
		return nil, err
	}

	reservations := make([]ConfirmedReservation, 0, len(records))
	for _, rec := range records {
		reservations = append(reservations, fromRecord(rec))
	}
	return reservations, nil
}

// buildRequest serializes the draft for the wire. The date goes out as a
// calendar date and start/end as clock times local to it; amenity lines are
// filtered to quantities above zero and prices are never sent.
func buildRequest(d *Draft) hoaapi.StoreReservationRequest {
	req := hoaapi.StoreReservationRequest{
		FacilityID: int(d.Facility),
		Date:       d.Date.Format(dateLayout),
		StartTime:  d.Start.Format(timeLayout),
		EndTime:    d.End.Format(timeLayout),
	}

	if d.Facility.EventVenue() {
		if d.EventType != "" {
			eventType := d.EventType
			req.EventType = &eventType
		}
		if d.GuestCount > 0 {
			guestCount := d.GuestCount
			req.GuestCount = &guestCount
		}

		ids := make([]int, 0, len(d.Amenities))
		for id, sel := range d.Amenities {
			if sel.Quantity > 0 {
				ids = append(ids, id)
			}
		}
		sort.Ints(ids)
		for _, id := range ids {
			req.Amenities = append(req.Amenities, hoaapi.AmenityQuantity{
				AmenityID: id,
				Quantity:  d.Amenities[id].Quantity,
			})
		}
	}

	return req
}
