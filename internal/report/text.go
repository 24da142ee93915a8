package report

import (
	"fmt"
	"strings"
)

// Text renders the view as a plain terminal summary.
func Text(v *View) string {
	var b strings.Builder
	if v.Empty {
		b.WriteString("No hotspots found. Try a wider date range or a different region.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n", v.Title)
	if v.DateRange != "" {
		fmt.Fprintf(&b, "Dates: %s\n", v.DateRange)
	}
	if v.GeographicFilter != "" {
		fmt.Fprintf(&b, "Region: %s\n", v.GeographicFilter)
	}
	fmt.Fprintf(&b, "Expected lifers: %s (%d potential across %d candidate hotspots)\n",
		v.TotalExpectedLifers, v.NumPotentialLifers, v.NumCandidateHotspots)

	for _, h := range v.Hotspots {
		fmt.Fprintf(&b, "\n#%d %s - %s\n", h.Rank, h.Locality, h.County)
		fmt.Fprintf(&b, "   %s, %s | marginal gain %s | cumulative %s\n",
			h.Latitude, h.Longitude, h.MarginalGain, h.CumulativeExpected)
		for _, sp := range h.Species {
			fmt.Fprintf(&b, "   %5s%%  %s\n", sp.Percent, sp.CommonName)
		}
		if h.SpeciesTruncated > 0 {
			fmt.Fprintf(&b, "   (%d more species not shown)\n", h.SpeciesTruncated)
		}
	}

	if len(v.CombinedProbs) > 0 {
		b.WriteString("\nCombined probability across all selected hotspots:\n")
		for _, sp := range v.CombinedProbs {
			fmt.Fprintf(&b, "   %5s%%  %s\n", sp.Percent, sp.CommonName)
		}
	}
	return b.String()
}
