// Package render composes a finished card state into a self-contained
// SVG document. All text reaching this package is already sanitized.
package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/PlacardTeam/Placard-Daemon/card"
)

// ContentType is the media type of rendered cards.
const ContentType = "image/svg+xml"

const cardWidth = 340

var statusColors = map[string]string{
	"online":  "#43b581",
	"idle":    "#faa61a",
	"dnd":     "#f04747",
	"offline": "#747f8d",
}

var cardTemplate = template.Must(template.New("card").Funcs(template.FuncMap{
	"statusColor": statusColor,
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <defs>
    <clipPath id="pfp"><circle cx="40" cy="40" r="25"/></clipPath>
    <clipPath id="art"><rect x="20" y="112" width="60" height="60" rx="8"/></clipPath>
  </defs>
  <rect width="{{.Width}}" height="{{.Height}}" rx="10" fill="#161b22" stroke="#30363d"/>
{{- if .PfpImage.Present}}
  <image href="{{.PfpImage.DataURI}}" x="15" y="15" width="50" height="50" clip-path="url(#pfp)"/>
{{- else}}
  <circle cx="40" cy="40" r="25" fill="#30363d"/>
{{- end}}
  <circle cx="58" cy="58" r="8" fill="{{statusColor .Status}}" stroke="#161b22" stroke-width="3"/>
  <text x="80" y="46" font-family="Segoe UI, Ubuntu, sans-serif" font-size="18" font-weight="600" fill="#c9d1d9">{{.Username}}</text>
{{- if .Game}}
  <text x="20" y="90" font-family="Segoe UI, Ubuntu, sans-serif" font-size="13" fill="#8b949e">{{.GameType}} <tspan font-weight="600" fill="#c9d1d9">{{.Game}}</tspan></text>
{{- end}}
{{- if .Tall}}
{{- if .DetailsImage.Present}}
  <image href="{{.DetailsImage.DataURI}}" x="20" y="112" width="60" height="60" clip-path="url(#art)"/>
{{- else}}
  <rect x="20" y="112" width="60" height="60" rx="8" fill="#30363d"/>
{{- end}}
  <text x="94" y="136" font-family="Segoe UI, Ubuntu, sans-serif" font-size="13" font-weight="600" fill="#c9d1d9">{{.Details}}</text>
  <text x="94" y="158" font-family="Segoe UI, Ubuntu, sans-serif" font-size="13" fill="#8b949e">{{.State}}</text>
{{- end}}
</svg>
`))

type cardView struct {
	card.CardState

	Width int
	Tall  bool
}

func statusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return color
	}

	return statusColors["offline"]
}

// Render produces the SVG document for a card state.
func Render(state card.CardState) ([]byte, error) {
	view := cardView{
		CardState: state,
		Width:     cardWidth,
		Tall:      state.Height == card.HeightTall,
	}

	var buf bytes.Buffer

	err := cardTemplate.Execute(&buf, view)
	if err != nil {
		return nil, fmt.Errorf("failed to render card: %w", err)
	}

	return buf.Bytes(), nil
}
