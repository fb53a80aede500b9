package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bububa/travel-agent/apify"
)

func newTestServer(t *testing.T, items int, query *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ActorID) {
			t.Errorf("unexpected actor path %s", r.URL.Path)
		}
		if query != nil {
			if err := json.NewDecoder(r.Body).Decode(query); err != nil {
				t.Errorf("decode query: %v", err)
			}
		}
		listings := make([]string, 0, items)
		for i := 0; i < items; i++ {
			listings = append(listings, fmt.Sprintf(`{"price":{"raw":%d}}`, 100+i))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "[%s]", strings.Join(listings, ","))
	}))
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
}

func TestRunDefaults(t *testing.T) {
	var query map[string]any
	srv := newTestServer(t, 1, &query)
	defer srv.Close()

	tool := New(
		apify.NewClient(apify.WithToken("x"), apify.WithBaseURL(srv.URL)),
		WithClock(fixedClock),
	)
	if _, err := tool.Run(context.Background(), &Input{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for key, want := range map[string]any{
		"market":   "US",
		"currency": "USD",
		"origin.0": DefaultCity,
		"target.0": DefaultCity,
		"depart.0": "2026-10-01",
	} {
		if got := query[key]; got != want {
			t.Errorf("query[%s] = %v, want %v", key, got, want)
		}
	}
}

func TestRunExplicitQuery(t *testing.T) {
	var query map[string]any
	srv := newTestServer(t, 1, &query)
	defer srv.Close()

	tool := New(
		apify.NewClient(apify.WithToken("x"), apify.WithBaseURL(srv.URL)),
		WithClock(fixedClock),
	)
	input := &Input{DepartureCity: "JFK", ArrivalCity: "MXP", DepartDate: "2026-12-24"}
	if _, err := tool.Run(context.Background(), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if query["origin.0"] != "JFK" || query["target.0"] != "MXP" || query["depart.0"] != "2026-12-24" {
		t.Errorf("explicit route not forwarded: %v", query)
	}
}

func TestRunTruncatesListings(t *testing.T) {
	srv := newTestServer(t, 12, nil)
	defer srv.Close()

	tool := New(
		apify.NewClient(apify.WithToken("x"), apify.WithBaseURL(srv.URL)),
		WithClock(fixedClock),
	)
	output, err := tool.Run(context.Background(), NewInput("JFK", "MXP"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(output.Listings) != 5 {
		t.Errorf("expect 5 listings after truncation, got %d", len(output.Listings))
	}
}
