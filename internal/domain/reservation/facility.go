package reservation

// Facility identifies one of the association's bookable facilities. The ids
// match the server's facility table.
type Facility int

const (
	FacilityTennisCourt     Facility = 1
	FacilityBasketballCourt Facility = 2
	FacilityEventPlace      Facility = 3
)

// Facilities returns the fixed set of bookable facilities.
func Facilities() []Facility {
	return []Facility{FacilityTennisCourt, FacilityBasketballCourt, FacilityEventPlace}
}

// Valid reports whether f is a known facility.
func (f Facility) Valid() bool {
	switch f {
	case FacilityTennisCourt, FacilityBasketballCourt, FacilityEventPlace:
		return true
	}
	return false
}

// EventVenue reports whether f is the one facility supporting priced
// amenities and event metadata.
func (f Facility) EventVenue() bool {
	return f == FacilityEventPlace
}

func (f Facility) String() string {
	switch f {
	case FacilityTennisCourt:
		return "Tennis Court"
	case FacilityBasketballCourt:
		return "Basketball Court"
	case FacilityEventPlace:
		return "Event Place"
	default:
		return "Unknown Facility"
	}
}
