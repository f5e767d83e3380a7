package entity

import "github.com/goccy/go-json"

// Seed is a user supplied anchor item. By is the artist, director or creator
// depending on the request's domain.
type Seed struct {
	Title string `json:"title"`
	By    string `json:"by,omitempty"`
}

// RecommendationRequest is the validated unit of work handed to the generator.
type RecommendationRequest struct {
	Domain Domain `json:"domain"`
	Seeds  []Seed `json:"seeds"`
	Count  int    `json:"count"`
}

// Recommendation is one generated item. The creator is stored once and
// serialized under the domain's field name (artist, director or creator).
type Recommendation struct {
	Domain     Domain   `json:"-"`
	Title      string   `json:"title"`
	Creator    string   `json:"-"`
	Year       int      `json:"year"`
	Genres     []string `json:"genres"`
	Why        string   `json:"why"`
	Confidence float64  `json:"confidence"`
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	genres := r.Genres
	if genres == nil {
		genres = []string{}
	}
	return json.Marshal(map[string]any{
		"title":                 r.Title,
		r.Domain.CreatorField(): r.Creator,
		"year":                  r.Year,
		"genres":                genres,
		"why":                   r.Why,
		"confidence":            r.Confidence,
	})
}

// Meta describes how a response was produced.
type Meta struct {
	SeedCount int    `json:"seed_count"`
	Requested int    `json:"requested"`
	Model     string `json:"model"`
}

// DefaultModelLabel is reported in meta when the model does not name itself.
const DefaultModelLabel = "ai-engine"

type RecommendationResponse struct {
	Items []Recommendation `json:"items"`
	Meta  Meta             `json:"meta"`
}
