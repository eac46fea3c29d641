// Package geolocation resolves where the reporter is standing. Only a simulated locator
// exists; it answers with one fixed address after a delay.
package geolocation

import (
	"context"
	"fmt"
	"time"

	geojson "github.com/paulmach/go.geojson"
)

// DefaultDelay is how long the simulated lookup takes
const DefaultDelay = 2 * time.Second

// mapSpan is the half-width, in degrees, of the embedded map around a fix
const mapSpan = 0.005

// Fix is a resolved position
type Fix struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MockFix is the position every simulated lookup resolves to
var MockFix = Fix{
	Address:   "Av. Brigadeiro Faria Lima, 3450 - SP",
	Latitude:  -23.585,
	Longitude: -46.682,
}

// Feature renders the fix as a GeoJSON point feature
func (f Fix) Feature() *geojson.Feature {
	feature := geojson.NewPointFeature([]float64{f.Longitude, f.Latitude})
	feature.SetProperty("address", f.Address)
	return feature
}

// EmbedURL is the OpenStreetMap embed showing a marker on the fix
func (f Fix) EmbedURL() string {
	return fmt.Sprintf("https://www.openstreetmap.org/export/embed.html?bbox=%.3f,%.3f,%.3f,%.3f&layer=mapnik&marker=%.3f,%.3f",
		f.Longitude-mapSpan, f.Latitude-mapSpan, f.Longitude+mapSpan, f.Latitude+mapSpan,
		f.Latitude, f.Longitude)
}

// Locator looks up the current position. Locate must return promptly once ctx is done.
type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}

// MockLocator waits Delay and then reports MockFix
type MockLocator struct {
	Delay time.Duration
}

// NewMockLocator returns a simulated locator with the given delay
func NewMockLocator(delay time.Duration) *MockLocator {
	return &MockLocator{Delay: delay}
}

// Locate implements Locator
func (m *MockLocator) Locate(ctx context.Context) (Fix, error) {
	t := time.NewTimer(m.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return Fix{}, ctx.Err()
	case <-t.C:
		return MockFix, nil
	}
}
