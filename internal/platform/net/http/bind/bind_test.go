package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "taskpulse/internal/platform/errors"
)

type savePayload struct {
	Title     string  `json:"title" validate:"required,max=200"`
	Timeframe string  `json:"timeframe" validate:"timeframe"`
	Score     float64 `json:"score" validate:"min=0,max=1"`
}

func TestParseJSONValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"title":"ship it","timeframe":"week","score":0.5}`))
	got, err := ParseJSON[savePayload](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "ship it" || got.Timeframe != "week" {
		t.Fatalf("bad parse: %+v", got)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))
	_, err := ParseJSON[savePayload](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error for empty body, got %v", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"x","bogus":1}`))
	_, err := ParseJSON[savePayload](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error for unknown field, got %v", err)
	}
}

func TestParseJSONValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"title":"x","timeframe":"decade","score":0.1}`))
	_, err := ParseJSON[savePayload](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error for bad timeframe, got %v", err)
	}
}
