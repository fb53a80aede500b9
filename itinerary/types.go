package itinerary

import (
	"encoding/json"

	"github.com/bububa/travel-agent/schema"
)

// Source discriminates the accommodation variant.
type Source string

const (
	SourceBooking Source = "booking"
	SourceAirbnb  Source = "airbnb"
)

// Hotel is a Booking.com sourced accommodation.
type Hotel struct {
	// Name of the hotel.
	Name string `json:"name" jsonschema:"title=name,description=Name of the hotel."`
	// Type of the property, always "hotel" for this variant.
	Type string `json:"type" jsonschema:"title=type,description=Type of the property e.g. 'hotel'."`
	// Rating average review score.
	Rating float64 `json:"rating" jsonschema:"title=rating,description=Average review score."`
	// Reviews number of reviews behind the rating.
	Reviews int `json:"reviews" jsonschema:"title=reviews,description=Number of reviews."`
	// Description of the property.
	Description string `json:"description" jsonschema:"title=description,description=Description of the property."`
	// Price per night.
	Price float64 `json:"price" jsonschema:"title=price,description=Price per night."`
	// Link booking link.
	Link string `json:"link" jsonschema:"title=link,description=Booking link." validate:"omitempty,url"`
	// Image URL of a property photo.
	Image string `json:"image" jsonschema:"title=image,description=URL of a property photo." validate:"omitempty,url"`
}

// PropertyRating is the composite review score of a rental property.
type PropertyRating struct {
	Accuracy          float64 `json:"accuracy" jsonschema:"title=accuracy"`
	Checking          float64 `json:"checking" jsonschema:"title=checking"`
	Cleanliness       float64 `json:"cleanliness" jsonschema:"title=cleanliness"`
	Communication     float64 `json:"communication" jsonschema:"title=communication"`
	Location          float64 `json:"location" jsonschema:"title=location"`
	Value             float64 `json:"value" jsonschema:"title=value"`
	GuestSatisfaction float64 `json:"guestSatisfaction" jsonschema:"title=guestSatisfaction"`
	ReviewsCount      float64 `json:"reviewsCount" jsonschema:"title=reviewsCount"`
}

// Property is an Airbnb sourced accommodation.
type Property struct {
	// Thumbnail URL of the listing thumbnail.
	Thumbnail string `json:"thumbnail" jsonschema:"title=thumbnail,description=URL of the listing thumbnail." validate:"omitempty,url"`
	// Link listing link.
	Link string `json:"link,omitempty" jsonschema:"title=link,description=Listing link." validate:"omitempty,url"`
	// ID provider listing identifier.
	ID string `json:"id" jsonschema:"title=id,description=Provider listing identifier."`
	// Title of the listing.
	Title string `json:"title" jsonschema:"title=title,description=Title of the listing."`
	// Description of the listing.
	Description string `json:"description" jsonschema:"title=description,description=Description of the listing."`
	// Rating composite review score.
	Rating PropertyRating `json:"rating" jsonschema:"title=rating,description=Composite review score."`
}

// Accommodation is a tagged union over the hotel and rental variants.
// The Source field is the discriminant; exactly one of Hotel and
// Property is set for a known source.
type Accommodation struct {
	Source   Source `json:"source"`
	Hotel    *Hotel
	Property *Property
	// raw keeps the original payload of an unrecognized variant so it
	// survives a round trip unmodified.
	raw json.RawMessage
}

func (a *Accommodation) UnmarshalJSON(data []byte) error {
	var tag struct {
		Source Source `json:"source"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	a.Source = tag.Source
	switch tag.Source {
	case SourceBooking:
		a.Hotel = new(Hotel)
		return json.Unmarshal(data, a.Hotel)
	case SourceAirbnb:
		a.Property = new(Property)
		return json.Unmarshal(data, a.Property)
	}
	a.raw = append(a.raw[:0], data...)
	return nil
}

func (a Accommodation) MarshalJSON() ([]byte, error) {
	switch {
	case a.Source == SourceBooking && a.Hotel != nil:
		return json.Marshal(struct {
			Source Source `json:"source"`
			*Hotel
		}{a.Source, a.Hotel})
	case a.Source == SourceAirbnb && a.Property != nil:
		return json.Marshal(struct {
			Source Source `json:"source"`
			*Property
		}{a.Source, a.Property})
	case a.raw != nil:
		return a.raw, nil
	}
	return json.Marshal(struct {
		Source Source `json:"source"`
	}{a.Source})
}

// FlightPrice is the price block of a flight option.
type FlightPrice struct {
	// Raw numeric price value.
	Raw float64 `json:"raw" jsonschema:"title=raw,description=Numeric price value."`
	// Formatted display price, e.g. "$234".
	Formatted string `json:"formatted" jsonschema:"title=formatted,description=Display price e.g. '$234'."`
	// PricingOptionID provider pricing option identifier.
	PricingOptionID string `json:"pricingOptionId,omitempty" jsonschema:"title=pricingOptionId,description=Provider pricing option identifier."`
}

// Location is an endpoint of a flight leg.
type Location struct {
	ID            string `json:"id,omitempty" jsonschema:"title=id"`
	EntityID      string `json:"entityId,omitempty" jsonschema:"title=entityId"`
	Name          string `json:"name" jsonschema:"title=name,description=Display name of the airport or city."`
	DisplayCode   string `json:"displayCode" jsonschema:"title=displayCode,description=IATA-style display code."`
	City          string `json:"city,omitempty" jsonschema:"title=city"`
	Country       string `json:"country,omitempty" jsonschema:"title=country"`
	IsHighlighted bool   `json:"isHighlighted,omitempty" jsonschema:"title=isHighlighted"`
}

// Leg is a single leg of a flight option. Carrier and segment payloads
// are provider-specific and are passed through unmodified.
type Leg struct {
	Origin            Location        `json:"origin" jsonschema:"title=origin"`
	Destination       Location        `json:"destination" jsonschema:"title=destination"`
	DurationInMinutes int             `json:"durationInMinutes,omitempty" jsonschema:"title=durationInMinutes"`
	StopCount         int             `json:"stopCount" jsonschema:"title=stopCount"`
	IsSmallestStops   bool            `json:"isSmallestStops,omitempty" jsonschema:"title=isSmallestStops"`
	Departure         string          `json:"departure" jsonschema:"title=departure,description=Departure timestamp in ISO 8601."`
	Arrival           string          `json:"arrival" jsonschema:"title=arrival,description=Arrival timestamp in ISO 8601."`
	TimeDeltaInDays   int             `json:"timeDeltaInDays,omitempty" jsonschema:"title=timeDeltaInDays,description=Number of calendar days between departure and arrival."`
	Carriers          json.RawMessage `json:"carriers,omitempty" jsonschema:"title=carriers"`
	Segments          json.RawMessage `json:"segments,omitempty" jsonschema:"title=segments"`
}

// Flight is a single flight option.
type Flight struct {
	Price FlightPrice `json:"price" jsonschema:"title=price"`
	Legs  []Leg       `json:"legs" jsonschema:"title=legs"`
}

// Attraction is a point of interest near the destination.
type Attraction struct {
	Title       string `json:"title" jsonschema:"title=title"`
	Link        string `json:"link" jsonschema:"title=link" validate:"omitempty,url"`
	Description string `json:"description" jsonschema:"title=description"`
}

// Itinerary is the final structured travel plan. All three sections are
// always present, possibly empty; the value is immutable once built.
type Itinerary struct {
	schema.Base
	Accommodations []Accommodation `json:"accommodations" jsonschema:"title=accommodations,description=Best matching accommodations."`
	Flights        []Flight        `json:"flights" jsonschema:"title=flights,description=Best matching flight options."`
	Attractions    []Attraction    `json:"attractions" jsonschema:"title=attractions,description=Points of interest near the destination."`
}

// NewItinerary returns an empty itinerary with all sections present.
func NewItinerary() *Itinerary {
	return &Itinerary{
		Accommodations: make([]Accommodation, 0),
		Flights:        make([]Flight, 0),
		Attractions:    make([]Attraction, 0),
	}
}

func (s Itinerary) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
