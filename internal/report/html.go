package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// mapData is the marker/bounds payload handed to the Leaflet script.
type mapData struct {
	Markers []Marker `json:"markers"`
	Bounds  *Bounds  `json:"bounds"`
}

type htmlParams struct {
	*View
	MapJSON template.JS
	HasMap  bool
}

// WriteHTML renders the view as a standalone HTML page. The map section is
// included only when at least one marker survived coordinate validation.
func WriteHTML(w io.Writer, v *View) error {
	params := htmlParams{View: v}
	if !v.Empty && len(v.Markers) > 0 {
		payload, err := json.Marshal(mapData{Markers: v.Markers, Bounds: v.Bounds})
		if err != nil {
			return fmt.Errorf("marshal map data: %w", err)
		}
		params.MapJSON = template.JS(payload)
		params.HasMap = true
	}
	if err := reportTmpl.Execute(w, params); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
