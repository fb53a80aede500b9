package airbnb

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
			listings = append(listings, fmt.Sprintf(`{"id":"%d"}`, i))
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
	locations, ok := query["locationQueries"].([]any)
	if !ok || len(locations) != 1 || locations[0] != DefaultCity {
		t.Errorf("locationQueries = %v, want [%s]", query["locationQueries"], DefaultCity)
	}
	if query["checkIn"] != "2026-10-01" {
		t.Errorf("checkIn = %v, want today", query["checkIn"])
	}
	// check-out defaults to five nights after check-in
	if query["checkOut"] != "2026-10-06" {
		t.Errorf("checkOut = %v, want 2026-10-06", query["checkOut"])
	}
	for key, want := range map[string]any{
		"numberOfAdults": float64(DefaultAdults),
		"priceMax":       float64(DefaultPriceMax),
		"minBeds":        float64(DefaultMinRooms),
		"minBedrooms":    float64(DefaultMinRooms),
		"minBathrooms":   float64(DefaultMinRooms),
		"locale":         "en-US",
		"currency":       "USD",
	} {
		if got := query[key]; got != want {
			t.Errorf("query[%s] = %v, want %v", key, got, want)
		}
	}
}

func TestRunCheckOutFollowsCheckIn(t *testing.T) {
	var query map[string]any
	srv := newTestServer(t, 1, &query)
	defer srv.Close()

	tool := New(
		apify.NewClient(apify.WithToken("x"), apify.WithBaseURL(srv.URL)),
		WithClock(fixedClock),
	)
	input := &Input{CityName: "Milan", CheckIn: "2026-12-24"}
	if _, err := tool.Run(context.Background(), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if query["checkIn"] != "2026-12-24" || query["checkOut"] != "2026-12-29" {
		t.Errorf("stay window = %v .. %v, want 2026-12-24 .. 2026-12-29", query["checkIn"], query["checkOut"])
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
	input := &Input{
		CityName:     "Milan",
		CheckIn:      "2026-12-24",
		CheckOut:     "2026-12-31",
		Adults:       2,
		Children:     1,
		PriceMax:     150,
		MinBeds:      2,
		MinBedrooms:  2,
		MinBathrooms: 1,
		Pets:         1,
	}
	if _, err := tool.Run(context.Background(), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if query["checkOut"] != "2026-12-31" {
		t.Errorf("explicit checkOut overridden: %v", query["checkOut"])
	}
	if query["priceMax"] != float64(150) || query["numberOfPets"] != float64(1) {
		t.Errorf("explicit fields not forwarded: %v", query)
	}
}

func TestRunTruncatesListings(t *testing.T) {
	srv := newTestServer(t, 8, nil)
	defer srv.Close()

	tool := New(
		apify.NewClient(apify.WithToken("x"), apify.WithBaseURL(srv.URL)),
		WithClock(fixedClock),
	)
	output, err := tool.Run(context.Background(), NewInput("Milan"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(output.Listings) != 5 {
		t.Errorf("expect 5 listings after truncation, got %d", len(output.Listings))
	}
}
