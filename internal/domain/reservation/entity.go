package reservation

import "github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"

// Status of a confirmed reservation, server-authoritative.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCanceled  Status = "canceled"
)

// ConfirmedReservation is the client's read-only projection of a reservation
// the server has persisted. The token and signature pair is the check-in
// artifact; the client never interprets either.
type ConfirmedReservation struct {
	ID               int64
	UserID           int64
	Facility         Facility
	Date             string
	StartTime        string
	EndTime          string
	Status           Status
	ReservationToken string
	DigitalSignature string
}

func fromRecord(rec hoaapi.ReservationRecord) ConfirmedReservation {
	return ConfirmedReservation{
		ID:               rec.ID,
		UserID:           rec.UserID,
		Facility:         Facility(rec.FacilityID),
		Date:             rec.Date,
		StartTime:        rec.StartTime,
		EndTime:          rec.EndTime,
		Status:           Status(rec.Status),
		ReservationToken: rec.ReservationToken,
		DigitalSignature: rec.DigitalSignature,
	}
}
