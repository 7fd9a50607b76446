package session

import "github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"

// StatusVerified is the account status code entitling the user to the
// discounted facility fee.
const StatusVerified = 1

// User is the authenticated homeowner identity.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Address   string
	Email     string
	Status    int
}

// Verified reports whether the account qualifies for discounted fees.
func (u *User) Verified() bool {
	return u != nil && u.Status == StatusVerified
}

// FullName returns the display name.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return u.FirstName + " " + u.LastName
}

func fromAPI(u hoaapi.User) *User {
	return &User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Address:   u.Address,
		Email:     u.Email,
		Status:    u.Status,
	}
}
