package itinerary

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// wrapperKeys is the ordered list of wrapper keys probed when an answer
// arrives nested one object layer deep. First match wins; the order is
// a compatibility contract with observed model quirks and must not be
// re-derived.
var wrapperKeys = []string{
	"input",
	"output",
	"result",
	"results",
	"response",
	"listings",
	"homes",
	"rentals",
	"houses",
	"filteredListings",
	"filteredHomes",
	"filteredRentals",
	"filteredHouses",
}

// sectionKeys maps each itinerary section to the field names it may
// arrive under. The misspelled variants come from the original response
// schema and are still produced by some prompts.
var sectionKeys = map[string][]string{
	"accommodations": {"accommodations", "accomodations"},
	"flights":        {"flights"},
	"attractions":    {"attractions"},
}

// Normalize coerces a loosely structured model answer into either the
// itinerary object shape or a JSON array:
//
//   - non-JSON input is surfaced unchanged (normalization failed, the
//     caller decides what to do with the raw value);
//   - a JSON-encoded string is parsed one level deep;
//   - an object that is not itinerary-shaped is probed against the
//     wrapper key list and unwrapped on first match;
//   - anything that still is not an array (and not itinerary-shaped)
//     is wrapped into a single-element array.
//
// Normalize is idempotent and never fails.
func Normalize(raw json.RawMessage) json.RawMessage {
	if !gjson.ValidBytes(raw) {
		return raw
	}
	value := gjson.ParseBytes(raw)
	if value.Type == gjson.String {
		inner := value.String()
		if !gjson.Valid(inner) {
			return raw
		}
		value = gjson.Parse(inner)
	}
	if value.IsObject() && !isItineraryShape(value) {
		for _, key := range wrapperKeys {
			if nested := value.Get(key); nested.Exists() {
				value = nested
				break
			}
		}
	}
	if value.IsArray() || isItineraryShape(value) {
		return json.RawMessage(value.Raw)
	}
	wrapped, _ := json.Marshal([]json.RawMessage{json.RawMessage(value.Raw)})
	return wrapped
}

// isItineraryShape reports whether the object carries at least one of
// the itinerary section fields.
func isItineraryShape(value gjson.Result) bool {
	if !value.IsObject() {
		return false
	}
	for _, aliases := range sectionKeys {
		for _, key := range aliases {
			if value.Get(key).Exists() {
				return true
			}
		}
	}
	return false
}

// NormalizeItinerary coerces a model answer into a typed Itinerary.
// Sections may be missing, wrapped, or single objects; each is
// normalized independently. A shape that still cannot be decoded
// returns an error together with nothing else: the caller owns the
// fallback.
func NormalizeItinerary(raw json.RawMessage) (*Itinerary, error) {
	normalized := Normalize(raw)
	value := gjson.ParseBytes(normalized)
	if value.IsArray() {
		arr := value.Array()
		if len(arr) == 1 && arr[0].IsObject() {
			value = arr[0]
		} else {
			return nil, fmt.Errorf("answer is a bare list, not an itinerary: %s", truncate(normalized))
		}
	}
	if !value.IsObject() {
		return nil, fmt.Errorf("answer is not an itinerary object: %s", truncate(raw))
	}
	ret := NewItinerary()
	if err := decodeSection(value, &ret.Accommodations, sectionKeys["accommodations"]...); err != nil {
		return nil, fmt.Errorf("malformed accommodations: %w", err)
	}
	if err := decodeSection(value, &ret.Flights, sectionKeys["flights"]...); err != nil {
		return nil, fmt.Errorf("malformed flights: %w", err)
	}
	if err := decodeSection(value, &ret.Attractions, sectionKeys["attractions"]...); err != nil {
		return nil, fmt.Errorf("malformed attractions: %w", err)
	}
	return ret, nil
}

// decodeSection extracts an itinerary section by any of its aliases,
// normalizes it into an array and decodes it. A missing section leaves
// the destination untouched.
func decodeSection[T any](value gjson.Result, dist *[]T, keys ...string) error {
	for _, key := range keys {
		field := value.Get(key)
		if !field.Exists() || field.Type == gjson.Null {
			continue
		}
		list := Normalize(json.RawMessage(field.Raw))
		items := make([]T, 0)
		if err := json.Unmarshal(list, &items); err != nil {
			return err
		}
		*dist = items
		return nil
	}
	return nil
}

func truncate(raw json.RawMessage) string {
	const max = 256
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}
