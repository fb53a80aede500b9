package airbnb

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bububa/travel-agent/apify"
	"github.com/bububa/travel-agent/schema"
	"github.com/bububa/travel-agent/tools"
)

const (
	// ActorID is the provider identifier of the Airbnb scraper.
	ActorID = "GsNzxEKzE2vQ5d9HN"

	DefaultCity     = "New York"
	DefaultPriceMax = 300
	DefaultAdults   = 1
	DefaultMinRooms = 1
	// DefaultStayNights is how far past check-in the check-out date
	// defaults when the request names none.
	DefaultStayNights = 5

	dateLayout = "2006-01-02"
)

// Input is the query schema for a short-term rental search. Every field
// is optional; omitted fields fall back to documented defaults.
type Input struct {
	schema.Base
	// CityName city to search rentals in.
	CityName string `json:"cityName,omitempty" jsonschema:"title=cityName,description=City to search rentals in. Defaults to New York."`
	// CheckIn check-in date, YYYY-MM-DD.
	CheckIn string `json:"checkIn,omitempty" jsonschema:"title=checkIn,description=Check-in date in YYYY-MM-DD format. Defaults to today."`
	// CheckOut check-out date, YYYY-MM-DD.
	CheckOut string `json:"checkOut,omitempty" jsonschema:"title=checkOut,description=Check-out date in YYYY-MM-DD format. Defaults to five nights after check-in."`
	// Adults adult guests.
	Adults int `json:"adults,omitempty" jsonschema:"title=adults,description=Number of adult guests." validate:"omitempty,min=1"`
	// Children child guests.
	Children int `json:"children,omitempty" jsonschema:"title=children,description=Number of children." validate:"omitempty,min=0"`
	// PriceMax nightly price ceiling.
	PriceMax int `json:"priceMax,omitempty" jsonschema:"title=priceMax,description=Maximum nightly price. Defaults to 300." validate:"omitempty,min=1"`
	// MinBeds minimum number of beds.
	MinBeds int `json:"minBeds,omitempty" jsonschema:"title=minBeds,description=Minimum number of beds." validate:"omitempty,min=1"`
	// MinBedrooms minimum number of bedrooms.
	MinBedrooms int `json:"minBedrooms,omitempty" jsonschema:"title=minBedrooms,description=Minimum number of bedrooms." validate:"omitempty,min=1"`
	// MinBathrooms minimum number of bathrooms.
	MinBathrooms int `json:"minBathrooms,omitempty" jsonschema:"title=minBathrooms,description=Minimum number of bathrooms." validate:"omitempty,min=1"`
	// Pets number of pets travelling along.
	Pets int `json:"pets,omitempty" jsonschema:"title=pets,description=Number of pets." validate:"omitempty,min=0"`
}

func NewInput(city string) *Input {
	return &Input{CityName: city}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output wraps the raw rental listings returned by the provider.
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
	LocationQueries  []string `json:"locationQueries"`
	Locale           string   `json:"locale"`
	Currency         string   `json:"currency"`
	CheckIn          string   `json:"checkIn"`
	CheckOut         string   `json:"checkOut"`
	NumberOfAdults   int      `json:"numberOfAdults"`
	NumberOfChildren int      `json:"numberOfChildren"`
	PriceMax         int      `json:"priceMax"`
	MinBeds          int      `json:"minBeds"`
	MinBedrooms      int      `json:"minBedrooms"`
	MinBathrooms     int      `json:"minBathrooms"`
	NumberOfPets     int      `json:"numberOfPets"`
}

type Config struct {
	tools.Config
	actorID     string
	maxListings int
	maxItems    int
	now         func() time.Time
}

// Tool fetches Airbnb rental listings for a city.
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
		ret.SetTitle("fetch_airbnb_listings")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetch Airbnb rental listings for a city.")
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
	if ret.now == nil {
		ret.now = time.Now
	}
	return ret
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

// Run queries the rental provider. Omitted optional fields are replaced
// with their defaults; the result is capped at maxListings entries.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	query := actorQuery{
		LocationQueries:  []string{input.CityName},
		Locale:           "en-US",
		Currency:         "USD",
		CheckIn:          input.CheckIn,
		CheckOut:         input.CheckOut,
		NumberOfAdults:   input.Adults,
		NumberOfChildren: input.Children,
		PriceMax:         input.PriceMax,
		MinBeds:          input.MinBeds,
		MinBedrooms:      input.MinBedrooms,
		MinBathrooms:     input.MinBathrooms,
		NumberOfPets:     input.Pets,
	}
	if query.LocationQueries[0] == "" {
		query.LocationQueries[0] = DefaultCity
	}
	if query.CheckIn == "" {
		query.CheckIn = t.now().Format(dateLayout)
	}
	if query.CheckOut == "" {
		checkIn, err := time.Parse(dateLayout, query.CheckIn)
		if err != nil {
			checkIn = t.now()
		}
		query.CheckOut = checkIn.AddDate(0, 0, DefaultStayNights).Format(dateLayout)
	}
	if query.NumberOfAdults == 0 {
		query.NumberOfAdults = DefaultAdults
	}
	if query.PriceMax == 0 {
		query.PriceMax = DefaultPriceMax
	}
	if query.MinBeds == 0 {
		query.MinBeds = DefaultMinRooms
	}
	if query.MinBedrooms == 0 {
		query.MinBedrooms = DefaultMinRooms
	}
	if query.MinBathrooms == 0 {
		query.MinBathrooms = DefaultMinRooms
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
