package availability

import "time"

// Slot is one bookable window for a facility on a given date, with absolute
// times derived from the queried date and the server's clock labels.
type Slot struct {
	StartLabel    string
	EndLabel      string
	Available     bool
	BaseFee       float64
	DiscountedFee float64

	// Derived
	Start      time.Time
	End        time.Time
	DisplayFee float64
	Discounted bool
}

// Label returns the human window label, e.g. "1:00 PM - 2:00 PM".
func (s Slot) Label() string {
	return s.StartLabel + " - " + s.EndLabel
}
