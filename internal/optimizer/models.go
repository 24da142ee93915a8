// Package optimizer is the client side of the hotspot optimization service.
// It defines the request/response contract and a small HTTP client; the
// ranking math itself lives behind the service.
package optimizer

import (
	"github.com/kestrelworks/listr-cli/internal/lifelist"
)

// Request is the body of POST /api/optimize. Immutable once sent.
type Request struct {
	LifeList  []string `json:"life_list"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	K         int      `json:"k"`
	County    *string  `json:"county"`
}

// NewRequest assembles a request from the parsed life list and the user's
// search parameters. An empty county is sent as JSON null. Dates and k are
// passed through unvalidated; the service rejects bad combinations and its
// message is surfaced to the user.
func NewRequest(list *lifelist.List, startDate, endDate string, k int, county string) Request {
	req := Request{
		LifeList:  list.Names(),
		StartDate: startDate,
		EndDate:   endDate,
		K:         k,
	}
	if county != "" {
		req.County = &county
	}
	return req
}

// TargetSpecies is one potential lifer with its detection probability.
type TargetSpecies struct {
	CommonName  string  `json:"common_name"`
	Probability float64 `json:"probability"`
}

// Hotspot is one ranked location in the optimizer's answer.
type Hotspot struct {
	Rank               int             `json:"rank"`
	Locality           string          `json:"locality"`
	LocalityID         int64           `json:"locality_id"`
	Latitude           float64         `json:"latitude"`
	Longitude          float64         `json:"longitude"`
	County             string          `json:"county"`
	MarginalGain       float64         `json:"marginal_gain"`
	CumulativeExpected float64         `json:"cumulative_expected"`
	TargetSpecies      []TargetSpecies `json:"target_species"`
}

// Response is the body of a successful optimize call. Hotspots arrive in
// rank order. DateRange, GeographicFilter and SpeciesCombinedProbs are
// optional; absence means "nothing to show".
type Response struct {
	TotalExpectedLifers  float64         `json:"total_expected_lifers"`
	NumCandidateHotspots int             `json:"num_candidate_hotspots"`
	NumPotentialLifers   int             `json:"num_potential_lifers"`
	DateRange            []string        `json:"date_range,omitempty"`
	GeographicFilter     string          `json:"geographic_filter,omitempty"`
	Hotspots             []Hotspot       `json:"hotspots"`
	SpeciesCombinedProbs []TargetSpecies `json:"species_combined_probs,omitempty"`
}
