package entity

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestRecommendation_MarshalJSONCreatorField(t *testing.T) {
	tests := []struct {
		domain Domain
		field  string
	}{
		{DomainSongs, "artist"},
		{DomainMovies, "director"},
		{DomainTVShows, "creator"},
	}
	for _, tt := range tests {
		t.Run(string(tt.domain), func(t *testing.T) {
			raw, err := json.Marshal(Recommendation{Domain: tt.domain, Title: "X", Creator: "Someone", Year: 2001})
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatal(err)
			}
			if got[tt.field] != "Someone" {
				t.Errorf("%s = %v in %s", tt.field, got[tt.field], raw)
			}
			if len(got) != 6 {
				t.Errorf("fields = %d, want 6: %s", len(got), raw)
			}
			if genres, ok := got["genres"].([]any); !ok || len(genres) != 0 {
				t.Errorf("genres = %#v, want []", got["genres"])
			}
		})
	}
}

func TestParseDomain(t *testing.T) {
	for _, v := range []any{"songs", "movies", "tvshows"} {
		if _, ok := ParseDomain(v); !ok {
			t.Errorf("ParseDomain(%v) rejected", v)
		}
	}
	for _, v := range []any{"Songs", "tv", "", nil, 1.0, []any{"songs"}} {
		if _, ok := ParseDomain(v); ok {
			t.Errorf("ParseDomain(%#v) accepted", v)
		}
	}
}

func TestSampleSeedsIsCopy(t *testing.T) {
	for _, d := range Domains {
		seeds := d.SampleSeeds()
		if len(seeds) != 5 {
			t.Fatalf("%s: %d sample seeds", d, len(seeds))
		}
		seeds[0].Title = "mutated"
		if d.SampleSeeds()[0].Title == "mutated" {
			t.Fatalf("%s: SampleSeeds shares its backing array", d)
		}
	}
}

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := map[ErrorCode]int{
		CodeBadRequest: 400,
		CodeRateLimit:  429,
		CodeUpstream:   503,
		CodeParseError: 500,
	}
	for code, want := range tests {
		if got := code.HTTPStatus(); got != want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", code, got, want)
		}
	}
}
