package itinerary

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "array passes through",
			in:   `[{"a":1},{"b":2}]`,
			want: `[{"a":1},{"b":2}]`,
		},
		{
			name: "wrapper object unwraps",
			in:   `{"results":[{"a":1},{"b":2}]}`,
			want: `[{"a":1},{"b":2}]`,
		},
		{
			name: "first wrapper key wins",
			in:   `{"listings":[1],"output":[2]}`,
			want: `[2]`,
		},
		{
			name: "json encoded string parses one level",
			in:   `"[{\"a\":1}]"`,
			want: `[{"a":1}]`,
		},
		{
			name: "bare object wraps into array",
			in:   `{"foo":1}`,
			want: `[{"foo":1}]`,
		},
		{
			name: "scalar wraps into array",
			in:   `42`,
			want: `[42]`,
		},
		{
			name: "itinerary shape passes through",
			in:   `{"accommodations":[],"flights":[]}`,
			want: `{"accommodations":[],"flights":[]}`,
		},
		{
			name: "misspelled section counts as itinerary shape",
			in:   `{"accomodations":[{"source":"booking"}]}`,
			want: `{"accomodations":[{"source":"booking"}]}`,
		},
		{
			name: "invalid json surfaces unchanged",
			in:   `here is your itinerary:`,
			want: `here is your itinerary:`,
		},
		{
			name: "string holding invalid json surfaces unchanged",
			in:   `"not json at all"`,
			want: `"not json at all"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Normalize(json.RawMessage(tt.in)))
			if got != tt.want {
				t.Errorf("Normalize(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		`{"results":[{"a":1}]}`,
		`{"foo":1}`,
		`[1,2,3]`,
		`"[{\"a\":1}]"`,
		`{"accommodations":[],"flights":[],"attractions":[]}`,
		`plain text`,
	}
	for _, in := range inputs {
		once := Normalize(json.RawMessage(in))
		twice := Normalize(once)
		if string(once) != string(twice) {
			t.Errorf("Normalize not idempotent for %s: first %s, second %s", in, once, twice)
		}
	}
}

func TestNormalizeItinerary(t *testing.T) {
	raw := json.RawMessage(`{
		"accommodations": [
			{"source":"booking","name":"Hotel Milano","type":"hotel","rating":8.7,"reviews":1200,"price":180,"link":"https://example.com/h","image":"https://example.com/h.jpg","description":"Central"},
			{"source":"airbnb","id":"42","title":"Loft","link":"https://example.com/p","thumbnail":"https://example.com/p.jpg","rating":{"guestSatisfaction":4.9,"reviewsCount":80}}
		],
		"flights": [
			{"price":{"raw":412.5,"formatted":"$413"},"legs":[{"origin":{"name":"New York John F. Kennedy","displayCode":"JFK"},"destination":{"name":"Milan Malpensa","displayCode":"MXP"},"departure":"2026-10-01T18:30:00","arrival":"2026-10-02T08:45:00","stopCount":0}]}
		],
		"attractions": [
			{"title":"Duomo di Milano","link":"https://example.com/duomo","description":"Gothic cathedral"}
		]
	}`)
	it, err := NormalizeItinerary(raw)
	if err != nil {
		t.Fatalf("NormalizeItinerary failed: %v", err)
	}
	if len(it.Accommodations) != 2 {
		t.Fatalf("expect 2 accommodations, got %d", len(it.Accommodations))
	}
	if it.Accommodations[0].Source != SourceBooking || it.Accommodations[0].Hotel == nil {
		t.Errorf("expect first accommodation to decode as hotel, got %+v", it.Accommodations[0])
	}
	if it.Accommodations[0].Hotel.Name != "Hotel Milano" {
		t.Errorf("unexpected hotel name: %s", it.Accommodations[0].Hotel.Name)
	}
	if it.Accommodations[1].Source != SourceAirbnb || it.Accommodations[1].Property == nil {
		t.Errorf("expect second accommodation to decode as property, got %+v", it.Accommodations[1])
	}
	if len(it.Flights) != 1 {
		t.Fatalf("expect 1 flight, got %d", len(it.Flights))
	}
	if it.Flights[0].Price.Formatted != "$413" {
		t.Errorf("unexpected flight price: %+v", it.Flights[0].Price)
	}
	if len(it.Attractions) != 1 || it.Attractions[0].Title != "Duomo di Milano" {
		t.Errorf("unexpected attractions: %+v", it.Attractions)
	}
}

func TestNormalizeItineraryWrapped(t *testing.T) {
	// the whole answer wrapped one level, sections wrapped again
	raw := json.RawMessage(`{"result":{"accomodations":{"listings":[{"source":"booking","name":"A"}]},"attractions":{"title":"One","link":"l","description":"d"}}}`)
	it, err := NormalizeItinerary(raw)
	if err != nil {
		t.Fatalf("NormalizeItinerary failed: %v", err)
	}
	if len(it.Accommodations) != 1 || it.Accommodations[0].Hotel == nil || it.Accommodations[0].Hotel.Name != "A" {
		t.Errorf("unexpected accommodations: %+v", it.Accommodations)
	}
	// single attraction object becomes a one-element section
	if len(it.Attractions) != 1 || it.Attractions[0].Title != "One" {
		t.Errorf("unexpected attractions: %+v", it.Attractions)
	}
	if it.Flights == nil || len(it.Flights) != 0 {
		t.Errorf("expect empty non-nil flights, got %#v", it.Flights)
	}
}

func TestNormalizeItinerarySingleObjectArray(t *testing.T) {
	raw := json.RawMessage(`[{"flights":[],"attractions":[]}]`)
	it, err := NormalizeItinerary(raw)
	if err != nil {
		t.Fatalf("NormalizeItinerary failed: %v", err)
	}
	if len(it.Flights) != 0 || len(it.Attractions) != 0 {
		t.Errorf("expect empty sections, got %+v", it)
	}
}

func TestNormalizeItineraryErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"prose answer", `Sure! Here is your itinerary.`},
		{"bare list of listings", `[{"a":1},{"b":2}]`},
		{"malformed section", `{"flights":"not a flight"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeItinerary(json.RawMessage(tt.in)); err == nil {
				t.Errorf("expect error for %s", tt.in)
			}
		})
	}
}
