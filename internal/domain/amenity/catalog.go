package amenity

import (
	"context"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"
)

// Option is one priced, quantity-limited add-on for event bookings. The
// authoritative copy lives server-side; the client treats it as read-only
// data, never as a fixed enum.
type Option struct {
	ID          int
	Name        string
	Price       float64
	MaxQuantity int
}

// Toggle reports whether the option behaves as an on/off switch.
func (o Option) Toggle() bool {
	return o.MaxQuantity == 1
}

// API is the slice of the API client the catalog depends on.
type API interface {
	Amenities(ctx context.Context) ([]hoaapi.AmenityRecord, error)
}

// Catalog fetches the amenity list. It is a stateless pass-through: every
// screen visit fetches fresh, nothing is cached.
type Catalog struct {
	api API
}

// NewCatalog creates a new amenity catalog.
func NewCatalog(api API) *Catalog {
	return &Catalog{api: api}
}

// Fetch returns the current amenity options.
func (c *Catalog) Fetch(ctx context.Context) ([]Option, error) {
	records, err := c.api.Amenities(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(records))
	for _, rec := range records {
		options = append(options, Option{
			ID:          rec.ID,
			Name:        rec.Name,
			Price:       float64(rec.Price),
			MaxQuantity: rec.MaxQuantity,
		})
	}
	return options, nil
}
