// Package report turns an optimizer response into view-ready data and
// renders it as HTML (with a Leaflet map) or terminal text. Build is pure:
// all filtering, capping and number formatting happens here so it can be
// tested without a rendering surface.
package report

import (
	"fmt"
	"math"

	"github.com/kestrelworks/listr-cli/internal/optimizer"
)

// Options controls view building.
type Options struct {
	// MinProbability suppresses target species below this detection
	// probability as noise.
	MinProbability float64
	// MaxSpeciesRows caps each hotspot's species table; qualifying entries
	// past the cap are truncated, not resampled.
	MaxSpeciesRows int
	// Title is the report heading.
	Title string
}

// DefaultOptions returns the standard thresholds: a 0.1% probability floor
// and 25 species rows per hotspot.
func DefaultOptions() Options {
	return Options{
		MinProbability: 0.001,
		MaxSpeciesRows: 25,
		Title:          "Listr",
	}
}

// SpeciesRow is one formatted line of a species table.
type SpeciesRow struct {
	CommonName string
	Percent    string  // probability as a percentage, one decimal
	BarWidth   float64 // probability x 100, clamped to 100
}

// HotspotView is one ranked hotspot with formatted fields.
type HotspotView struct {
	Rank               int
	Locality           string
	County             string
	Latitude           string // 4 decimals
	Longitude          string // 4 decimals
	MarginalGain       string // 2 decimals
	CumulativeExpected string // 2 decimals
	Species            []SpeciesRow
	SpeciesTruncated   int // qualifying entries cut by the row cap
}

// Marker is one map pin.
type Marker struct {
	LocalityID int64
	Lat        float64
	Lon        float64
	Label      string
}

// Bounds is the region covering all markers.
type Bounds struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// View is everything a renderer needs. When Empty is true no other field is
// populated: an empty hotspot list short-circuits all further processing.
type View struct {
	Title string
	Empty bool

	TotalExpectedLifers  string // 2 decimals, passed through unrecomputed
	NumCandidateHotspots int
	NumPotentialLifers   int
	DateRange            string // "start to end" when the service sent one
	GeographicFilter     string

	Hotspots      []HotspotView
	CombinedProbs []SpeciesRow // full list, no floor, no cap

	Markers []Marker
	Bounds  *Bounds
}

// Build transforms a response into view data. The response is not mutated
// and hotspot order is preserved as received (the service ranks them).
func Build(resp *optimizer.Response, opt Options) *View {
	if opt.MaxSpeciesRows <= 0 {
		opt.MaxSpeciesRows = DefaultOptions().MaxSpeciesRows
	}
	if opt.Title == "" {
		opt.Title = DefaultOptions().Title
	}
	v := &View{Title: opt.Title}
	if resp == nil || len(resp.Hotspots) == 0 {
		v.Empty = true
		return v
	}

	v.TotalExpectedLifers = formatFixed(resp.TotalExpectedLifers, 2)
	v.NumCandidateHotspots = resp.NumCandidateHotspots
	v.NumPotentialLifers = resp.NumPotentialLifers
	v.GeographicFilter = resp.GeographicFilter
	if len(resp.DateRange) == 2 {
		v.DateRange = resp.DateRange[0] + " to " + resp.DateRange[1]
	}

	v.Hotspots = make([]HotspotView, 0, len(resp.Hotspots))
	for _, h := range resp.Hotspots {
		hv := HotspotView{
			Rank:               h.Rank,
			Locality:           h.Locality,
			County:             h.County,
			Latitude:           formatFixed(h.Latitude, 4),
			Longitude:          formatFixed(h.Longitude, 4),
			MarginalGain:       formatFixed(h.MarginalGain, 2),
			CumulativeExpected: formatFixed(h.CumulativeExpected, 2),
		}
		for _, sp := range h.TargetSpecies {
			if sp.Probability < opt.MinProbability {
				continue
			}
			if len(hv.Species) == opt.MaxSpeciesRows {
				hv.SpeciesTruncated++
				continue
			}
			hv.Species = append(hv.Species, speciesRow(sp))
		}
		v.Hotspots = append(v.Hotspots, hv)

		if validCoordinates(h.Latitude, h.Longitude) {
			v.Markers = append(v.Markers, Marker{
				LocalityID: h.LocalityID,
				Lat:        h.Latitude,
				Lon:        h.Longitude,
				Label: fmt.Sprintf("#%d %s (%s) +%s expected lifers",
					h.Rank, h.Locality, h.County, hv.MarginalGain),
			})
		}
	}

	for _, sp := range resp.SpeciesCombinedProbs {
		v.CombinedProbs = append(v.CombinedProbs, speciesRow(sp))
	}

	v.Bounds = markerBounds(v.Markers)
	return v
}

func speciesRow(sp optimizer.TargetSpecies) SpeciesRow {
	return SpeciesRow{
		CommonName: sp.CommonName,
		Percent:    formatFixed(sp.Probability*100, 1),
		BarWidth:   math.Min(sp.Probability*100, 100),
	}
}

// validCoordinates keeps malformed upstream coordinates off the map. The
// hotspot still appears in the tables.
func validCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func markerBounds(markers []Marker) *Bounds {
	if len(markers) == 0 {
		return nil
	}
	b := &Bounds{
		MinLat: markers[0].Lat, MaxLat: markers[0].Lat,
		MinLon: markers[0].Lon, MaxLon: markers[0].Lon,
	}
	for _, m := range markers[1:] {
		b.MinLat = math.Min(b.MinLat, m.Lat)
		b.MaxLat = math.Max(b.MaxLat, m.Lat)
		b.MinLon = math.Min(b.MinLon, m.Lon)
		b.MaxLon = math.Max(b.MaxLon, m.Lon)
	}
	return b
}

func formatFixed(v float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, v)
}
