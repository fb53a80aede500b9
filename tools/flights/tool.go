package flights

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bububa/travel-agent/apify"
	"github.com/bububa/travel-agent/schema"
	"github.com/bububa/travel-agent/tools"
)

const (
	// ActorID is the provider identifier of the flight search scraper.
	ActorID = "tiveIS4hgXOMtu3Hf"

	// DefaultCity is used for both ends of the route when the request
	// names neither; an unspecified departure city means New York.
	DefaultCity = "New York"

	dateLayout = "2006-01-02"
)

// Input is the query schema for a flight search. Every field is
// optional; omitted fields fall back to documented defaults.
type Input struct {
	schema.Base
	// DepartureCity origin city or IATA code.
	DepartureCity string `json:"departureCity,omitempty" jsonschema:"title=departureCity,description=Departure city name or IATA code. Defaults to New York."`
	// ArrivalCity destination city or IATA code.
	ArrivalCity string `json:"arrivalCity,omitempty" jsonschema:"title=arrivalCity,description=Arrival city name or IATA code."`
	// DepartDate departure date, YYYY-MM-DD.
	DepartDate string `json:"departDate,omitempty" jsonschema:"title=departDate,description=Departure date in YYYY-MM-DD format. Defaults to today."`
}

func NewInput(origin, destination string) *Input {
	return &Input{
		DepartureCity: origin,
		ArrivalCity:   destination,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output wraps the raw flight listings returned by the provider.
type Output struct {
	schema.Base
	// Listings raw provider records, at most the configured listing cap.
	Listings []json.RawMessage `json:"listings"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// actorQuery is the provider-specific call shape. The provider indexes
// route fields, supporting multi-leg requests; only leg 0 is used here.
type actorQuery struct {
	Market   string `json:"market"`
	Currency string `json:"currency"`
	Origin   string `json:"origin.0"`
	Target   string `json:"target.0"`
	Depart   string `json:"depart.0"`
}

type Config struct {
	tools.Config
	actorID     string
	maxListings int
	maxItems    int
	now         func() time.Time
}

// Tool fetches flight listings between two cities.
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
		ret.SetTitle("fetch_flights")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetch flight listings between two cities.")
	}
	if ret.actorID == "" {
		ret.actorID = ActorID
	}
	if ret.maxListings == 0 {
		ret.maxListings = 5
	}
	if ret.maxItems == 0 {
		ret.maxItems = 20
	}
	if ret.now == nil {
		ret.now = time.Now
	}
	return ret
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

// Run queries the flight provider. Omitted optional fields are replaced
// with their defaults; the result is capped at maxListings entries.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	query := actorQuery{
		Market:   "US",
		Currency: "USD",
		Origin:   input.DepartureCity,
		Target:   input.ArrivalCity,
		Depart:   input.DepartDate,
	}
	if query.Origin == "" {
		query.Origin = DefaultCity
	}
	if query.Target == "" {
		query.Target = DefaultCity
	}
	if query.Depart == "" {
		query.Depart = t.now().Format(dateLayout)
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
