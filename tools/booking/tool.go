package booking

import (
	"context"
	"encoding/json"

	"github.com/bububa/travel-agent/apify"
	"github.com/bububa/travel-agent/schema"
	"github.com/bububa/travel-agent/tools"
)

const (
	// ActorID is the provider identifier of the Booking.com scraper.
	ActorID = "oeiQgfg5fsmIJB7Cn"

	DefaultCity       = "New York"
	DefaultPriceRange = "0-999999"
	DefaultStars      = "any"
	DefaultRooms      = 1
	DefaultAdults     = 1
)

// Input is the query schema for a hotel listings search. Every field is
// optional; omitted fields fall back to documented defaults.
type Input struct {
	schema.Base
	// CityName city to search hotels in.
	CityName string `json:"cityName,omitempty" jsonschema:"title=cityName,description=City to search hotels in. Defaults to New York."`
	// MinMaxPrice nightly price band formatted as min-max.
	MinMaxPrice string `json:"minMaxPrice,omitempty" jsonschema:"title=minMaxPrice,description=Nightly price band formatted as 'min-max' e.g. '0-200'."`
	// NumberOfRooms rooms wanted.
	NumberOfRooms int `json:"numberOfRooms,omitempty" jsonschema:"title=numberOfRooms,description=Number of rooms." validate:"omitempty,min=1"`
	// NumberOfAdults adult guests.
	NumberOfAdults int `json:"numberOfAdults,omitempty" jsonschema:"title=numberOfAdults,description=Number of adult guests." validate:"omitempty,min=1"`
	// NumberOfChildren child guests.
	NumberOfChildren int `json:"numberOfChildren,omitempty" jsonschema:"title=numberOfChildren,description=Number of children." validate:"omitempty,min=0"`
	// StarsCountFilter star rating filter, e.g. "4" or "any".
	StarsCountFilter string `json:"starsCountFilter,omitempty" jsonschema:"title=starsCountFilter,description=Hotel star rating filter e.g. '4' or 'any'."`
}

func NewInput(city string) *Input {
	return &Input{CityName: city}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output wraps the raw hotel listings returned by the provider.
type Output struct {
	schema.Base
	// Listings raw provider records, at most the configured listing cap.
	Listings []json.RawMessage `json:"listings"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// actorQuery is the provider-specific call shape.
type actorQuery struct {
	Currency         string `json:"currency"`
	Language         string `json:"language"`
	MaxItems         int    `json:"maxItems"`
	MinMaxPrice      string `json:"minMaxPrice"`
	Search           string `json:"search"`
	Rooms            int    `json:"rooms"`
	Adults           int    `json:"adults"`
	Children         int    `json:"children"`
	SortBy           string `json:"sortBy"`
	StarsCountFilter string `json:"starsCountFilter"`
}

type Config struct {
	tools.Config
	actorID     string
	maxListings int
	maxItems    int
}

// Tool fetches Booking.com hotel listings for a city.
type Tool struct {
	Config
	client *apify.Client
}

func New(client *apify.Client, opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	ret.client = client
	if ret.Title() == "" {
		ret.SetTitle("fetch_booking_listings")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetch Booking.com hotel listings for a city.")
	}
	if ret.actorID == "" {
		ret.actorID = ActorID
	}
	if ret.maxListings == 0 {
		ret.maxListings = 5
	}
	if ret.maxItems == 0 {
		ret.maxItems = 10
	}
	return ret
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

// Run queries the hotel provider. Omitted optional fields are replaced
// with their defaults; the result is capped at maxListings entries.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	query := actorQuery{
		Currency:         "USD",
		Language:         "en-us",
		MaxItems:         t.maxItems,
		MinMaxPrice:      input.MinMaxPrice,
		Search:           input.CityName,
		Rooms:            input.NumberOfRooms,
		Adults:           input.NumberOfAdults,
		Children:         input.NumberOfChildren,
		SortBy:           "distance_from_search",
		StarsCountFilter: input.StarsCountFilter,
	}
	if query.Search == "" {
		query.Search = DefaultCity
	}
	if query.MinMaxPrice == "" {
		query.MinMaxPrice = DefaultPriceRange
	}
	if query.Rooms == 0 {
		query.Rooms = DefaultRooms
	}
	if query.Adults == 0 {
		query.Adults = DefaultAdults
	}
	if query.StarsCountFilter == "" {
		query.StarsCountFilter = DefaultStars
	}
	items, err := t.client.CallActor(ctx, t.actorID, &query, t.maxItems)
	if err != nil {
		return nil, err
	}
	if len(items) > t.maxListings {
		items = items[:t.maxListings]
	}
	if items == nil {
		items = make([]json.RawMessage, 0)
	}
	return &Output{Listings: items}, nil
}
