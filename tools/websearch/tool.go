package websearch

import (
	"context"
	"encoding/json"

	"github.com/bububa/travel-agent/apify"
	"github.com/bububa/travel-agent/schema"
	"github.com/bububa/travel-agent/tools"
)

// ActorID is the provider identifier of the web search scraper.
const ActorID = "apify/google-search-scraper"

// Input is the query schema for a generic web search, used to resolve
// airport codes and to find points of interest around a destination.
type Input struct {
	schema.Base
	// Query search terms.
	Query string `json:"query" jsonschema:"title=query,description=Search query e.g. 'top attractions in Milan' or 'Milan airport IATA code'." validate:"required"`
}

func NewInput(query string) *Input {
	return &Input{Query: query}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Result is a single organic search result.
type Result struct {
	schema.Base
	// Title of the result page.
	Title string `json:"title" jsonschema:"title=title,description=Title of the result page."`
	// Link URL of the result page.
	Link string `json:"link" jsonschema:"title=link,description=URL of the result page." validate:"omitempty,url"`
	// Description snippet of the result page.
	Description string `json:"description,omitempty" jsonschema:"title=description,description=Snippet of the result page."`
}

func (s Result) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output wraps the flattened organic search results in the same
// listings container the other provider tools use.
type Output struct {
	schema.Base
	Listings []Result `json:"listings"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// actorQuery is the provider-specific call shape.
type actorQuery struct {
	Queries          string `json:"queries"`
	MaxPagesPerQuery int    `json:"maxPagesPerQuery"`
	ResultsPerPage   int    `json:"resultsPerPage"`
	CountryCode      string `json:"countryCode"`
	LanguageCode     string `json:"languageCode"`
}

// searchPage is the shape of a provider dataset item.
type searchPage struct {
	SearchQuery    json.RawMessage `json:"searchQuery"`
	OrganicResults []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
	} `json:"organicResults"`
}

type Config struct {
	tools.Config
	actorID    string
	maxResults int
}

// Tool performs a generic web search through the scraping platform.
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
		ret.SetTitle("search_web")
	}
	if ret.Description() == "" {
		ret.SetDescription("Search the web for travel information such as airport codes and points of interest.")
	}
	if ret.actorID == "" {
		ret.actorID = ActorID
	}
	if ret.maxResults == 0 {
		ret.maxResults = 5
	}
	return ret
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

// Run queries the search provider and flattens its organic results.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	query := actorQuery{
		Queries:          input.Query,
		MaxPagesPerQuery: 1,
		ResultsPerPage:   t.maxResults,
		CountryCode:      "us",
		LanguageCode:     "en",
	}
	items, err := t.client.CallActor(ctx, t.actorID, &query, 1)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, t.maxResults)
	for _, item := range items {
		var page searchPage
		if err := json.Unmarshal(item, &page); err != nil {
			continue
		}
		for _, organic := range page.OrganicResults {
			if len(results) >= t.maxResults {
				break
			}
			results = append(results, Result{
				Title:       organic.Title,
				Link:        organic.URL,
				Description: organic.Description,
			})
		}
	}
	return &Output{Listings: results}, nil
}
