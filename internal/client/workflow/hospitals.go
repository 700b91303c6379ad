package workflow

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultHospitalQuery is the initial search of the hospital tracker.
	DefaultHospitalQuery = "hospital"

	mapsSearchURL = "https://www.google.com/maps/search/"
	mapsZoom      = "15z"
)

var ErrInvalidPosition = errors.New("latitude must be within ±90 and longitude within ±180")

type Position struct {
	Lat float64
	Lng float64
}

// HospitalsPage builds a map search link for nearby hospitals.
type HospitalsPage struct {
	*page

	query string
	pos   *Position
}

func NewHospitalsPage(deps Deps) *HospitalsPage {
	return &HospitalsPage{page: newPage(deps), query: DefaultHospitalQuery}
}

func (p *HospitalsPage) Activate(ctx context.Context) { p.activate(ctx) }
func (p *HospitalsPage) Deactivate()                  { p.deactivate() }

func (p *HospitalsPage) Title() string {
	return p.Strings().Get("hospital_tracker", "Hospital Tracker")
}

func (p *HospitalsPage) DirectionsLabel() string {
	return p.Strings().Get("get_directions", "Get Directions")
}

// SetQuery changes the search; an empty query restores the default.
func (p *HospitalsPage) SetQuery(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		q = DefaultHospitalQuery
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
}

// SetPosition centres the search on the given coordinates.
func (p *HospitalsPage) SetPosition(lat, lng float64) error {
	if !finite(lat) || !finite(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidPosition
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = &Position{Lat: lat, Lng: lng}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (p *HospitalsPage) ClearPosition() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = nil
}

// MapURL is the search link for the current query and position.
func (p *HospitalsPage) MapURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	u := mapsSearchURL + url.PathEscape(p.query)
	if p.pos == nil {
		return u
	}
	return u + "/@" +
		strconv.FormatFloat(p.pos.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.pos.Lng, 'f', -1, 64) + "," + mapsZoom
}
