package hoaapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Money handles currency amounts that the server may serialize either as a
// JSON number or as a decimal string.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*m = 0
			return nil
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid money value %q", str)
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// User is the authenticated account as returned by /login, /register and /me.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Status    int    `json:"status"`
}

// AuthResponse is returned by /login and /register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MeResponse is returned by /me.
type MeResponse struct {
	User User `json:"user"`
}

// LoginRequest for POST /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest for POST /register
type RegisterRequest struct {
	FirstName            string `json:"first_name" validate:"required,min=2,max=100"`
	LastName             string `json:"last_name" validate:"required,min=2,max=100"`
	Address              string `json:"address" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// SlotRecord is one bookable window as returned by
// GET /availability/{facility_id}/{date}. Times are 12-hour clock labels.
type SlotRecord struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Available     bool   `json:"available"`
	Fee           Money  `json:"fee"`
	DiscountedFee Money  `json:"discounted_fee"`
}

// AmenityRecord is one priced add-on from GET /amenities.
type AmenityRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	MaxQuantity int    `json:"max_quantity"`
}

// AmenityQuantity is one selected amenity line in a reservation request.
type AmenityQuantity struct {
	AmenityID int `json:"amenity_id"`
	Quantity  int `json:"quantity"`
}

// StoreReservationRequest for POST /reservations/store. Date is a calendar
// date string and start/end are clock times local to that date; prices and
// totals are never sent, the server prices authoritatively.
type StoreReservationRequest struct {
	FacilityID int               `json:"facility_id"`
	Date       string            `json:"date"`
	StartTime  string            `json:"start_time"`
	EndTime    string            `json:"end_time"`
	GuestCount *int              `json:"guest_count,omitempty"`
	EventType  *string           `json:"event_type,omitempty"`
	Amenities  []AmenityQuantity `json:"amenities,omitempty"`
}

// ReservationRecord is a confirmed reservation as returned by the server.
// The client holds a read-only projection.
type ReservationRecord struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	FacilityID       int    `json:"facility_id"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Status           string `json:"status"`
	ReservationToken string `json:"reservation_token"`
	DigitalSignature string `json:"digital_signature"`
}

// SendResetLinkRequest for POST /password/send-link
type SendResetLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest for POST /password/verify-otp
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

// ResetPasswordRequest for POST /password/reset-password
type ResetPasswordRequest struct {
	Token                string `json:"token" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// StatusResponse is the password-recovery response envelope.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Succeeded reports whether the server answered with status "success".
func (r StatusResponse) Succeeded() bool {
	return r.Status == "success"
}
