package checkin

import (
	"encoding/json"
	"errors"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/reservation"
)

// The check-in artifact is the JSON blob a gate scanner reads off the QR
// code. The server recomputes the signature over the booking attributes, so
// the encoded field set must match its verifier exactly; the encoder adds
// nothing and omits nothing. No signing or verification happens client-side.

var (
	ErrMissingToken     = errors.New("reservation has no check-in token")
	ErrMissingSignature = errors.New("reservation has no digital signature")
)

// Payload is the current signed-payload shape plus the sibling signature.
type Payload struct {
	UserID           int64  `json:"user_id"`
	FacilityID       int    `json:"facility_id"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	ReservationToken string `json:"reservation_token"`
	DigitalSignature string `json:"digital_signature"`
}

// legacyPayload is the original two-field shape. It remains scannable by old
// verifiers but allows token replay against a different reservation, which
// is why the richer shape superseded it.
type legacyPayload struct {
	ReservationToken string `json:"reservation_token"`
	DigitalSignature string `json:"digital_signature"`
}

// Encode renders a confirmed reservation into the scannable blob using the
// current payload shape.
func Encode(r reservation.ConfirmedReservation) ([]byte, error) {
	if r.ReservationToken == "" {
		return nil, ErrMissingToken
	}
	if r.DigitalSignature == "" {
		return nil, ErrMissingSignature
	}

	return json.Marshal(Payload{
		UserID:           r.UserID,
		FacilityID:       int(r.Facility),
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		ReservationToken: r.ReservationToken,
		DigitalSignature: r.DigitalSignature,
	})
}

// EncodeLegacy renders the superseded two-field blob.
func EncodeLegacy(r reservation.ConfirmedReservation) ([]byte, error) {
	if r.ReservationToken == "" {
		return nil, ErrMissingToken
	}
	if r.DigitalSignature == "" {
		return nil, ErrMissingSignature
	}

	return json.Marshal(legacyPayload{
		ReservationToken: r.ReservationToken,
		DigitalSignature: r.DigitalSignature,
	})
}
