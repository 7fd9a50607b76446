package reservation

// Fee estimation is pure and advisory: the server reprices every reservation
// authoritatively, so these totals exist only for display before submission.

// AmenitiesTotal sums quantity times unit price over the selected amenities.
// It is zero for any facility other than the event venue, regardless of
// leftover selection state.
func AmenitiesTotal(d *Draft) float64 {
	if !d.Facility.EventVenue() {
		return 0
	}
	total := 0.0
	for _, sel := range d.Amenities {
		if sel.Quantity > 0 {
			total += float64(sel.Quantity) * sel.UnitPrice
		}
	}
	return total
}

// EstimatedTotal is the charged facility fee plus the amenities total.
func EstimatedTotal(d *Draft) float64 {
	return d.ChargedFee + AmenitiesTotal(d)
}
