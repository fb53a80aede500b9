package itinerary

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

// renderFuncs are shared by both renderers.
var renderFuncs = map[string]any{
	"inc":     func(i int) int { return i + 1 },
	"fmtTime": fmtTime,
}

// fmtTime renders an ISO 8601 timestamp for display; values that do not
// parse are shown as-is.
func fmtTime(value string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.Format("Mon, 02 Jan 2006 15:04")
		}
	}
	return value
}

var htmlTmpl = htmltemplate.Must(htmltemplate.New("itinerary").Funcs(renderFuncs).Parse(`<!DOCTYPE html>
<html lang='en'>
<head>
<meta charset='UTF-8'>
<meta name='viewport' content='width=device-width, initial-scale=1.0'>
<title>Itinerary</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; margin: 20px; color: #333; }
h1, h2 { color: #222; }
.section { margin-bottom: 30px; }
.flight-details, .hotel-details { background: #f9f9f9; padding: 15px; border-radius: 8px; box-shadow: 0 2px 5px rgba(0, 0, 0, 0.1); margin-bottom: 20px; }
.hotel-container { display: flex; align-items: center; gap: 15px; margin-top: 10px; }
.hotel-container img { width: 180px; height: auto; border-radius: 8px; }
.link { display: inline-block; margin-top: 5px; color: #0073e6; text-decoration: none; font-weight: bold; }
.link:hover { text-decoration: underline; }
</style>
</head>
<body>
<h1>Itinerary</h1>
<h2>Flights</h2>
{{- range $idx, $flight := .Flights}}
<div class='flight-details'>
<h3>Flight {{inc $idx}} - {{$flight.Price.Formatted}}</h3>
{{- range $flight.Legs}}
<p>{{.Origin.Name}} ({{.Origin.DisplayCode}}) &rarr; {{.Destination.Name}} ({{.Destination.DisplayCode}})</p>
<p>Departure: {{fmtTime .Departure}}</p>
<p>Arrival: {{fmtTime .Arrival}}</p>
<p>Stops: {{.StopCount}}</p>
{{- end}}
</div>
{{- end}}
<h2>Accommodations</h2>
{{- range .Accommodations}}
{{- if and (eq .Source "booking") .Hotel}}
<div class='hotel-details'>
<h3>{{.Hotel.Name}} ({{.Hotel.Type}})</h3>
<p>Rating: {{.Hotel.Rating}} ({{.Hotel.Reviews}} reviews)</p>
<p>{{.Hotel.Description}}</p>
<a class='link' href='{{.Hotel.Link}}' target='_blank'>More info</a>
<div class='hotel-container'>
<img src='{{.Hotel.Image}}' alt='Hotel image'>
</div>
</div>
{{- end}}
{{- end}}
<h2>Attractions</h2>
{{- range .Attractions}}
<div class='section'>
<h3>{{.Title}}</h3>
<p>{{.Description}}</p>
<a class='link' href='{{.Link}}' target='_blank'>More info</a>
</div>
{{- end}}
</body>
</html>
`))

var markdownTmpl = texttemplate.Must(texttemplate.New("itinerary").Funcs(renderFuncs).Parse(`# Itinerary

## Flights
{{- range $idx, $flight := .Flights}}

### Flight {{inc $idx}} - {{$flight.Price.Formatted}}
{{- range $flight.Legs}}
- **{{.Origin.Name}} ({{.Origin.DisplayCode}}) → {{.Destination.Name}} ({{.Destination.DisplayCode}})**
  - Departure: {{fmtTime .Departure}}
  - Arrival: {{fmtTime .Arrival}}
  - Stops: {{.StopCount}}
{{- end}}
{{- end}}

## Accommodations
{{- range .Accommodations}}
{{- if and (eq .Source "booking") .Hotel}}

### {{.Hotel.Name}} ({{.Hotel.Type}})
**Rating:** {{.Hotel.Rating}} ({{.Hotel.Reviews}} reviews)

{{.Hotel.Description}}

[More info]({{.Hotel.Link}})
![Image]({{.Hotel.Image}})
{{- end}}
{{- end}}

## Attractions
{{- range .Attractions}}

### {{.Title}}
- {{.Description}}
- [More info]({{.Link}})
{{- end}}
`))

// HTML renders the itinerary as a self-contained HTML document. Only
// the booking-sourced accommodation variant is rendered; rendering is a
// pure function of the itinerary.
func HTML(it *Itinerary) string {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, it); err != nil {
		return ""
	}
	return buf.String()
}

// Markdown renders the itinerary as a Markdown document. Only the
// booking-sourced accommodation variant is rendered; rendering is a
// pure function of the itinerary.
func Markdown(it *Itinerary) string {
	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, it); err != nil {
		return ""
	}
	return buf.String()
}
