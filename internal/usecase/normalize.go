package usecase

import (
	"math"
	"strconv"
	"strings"

	"seedrec/internal/domain/entity"
)

const (
	MinYear           = 1900
	MaxYear           = 2030
	DefaultYear       = 2020
	MaxGenres         = 5
	MaxWhyLength      = 220
	DefaultWhy        = "Similar to your seeds"
	DefaultConfidence = 0.5
)

// NormalizeRecommendation turns one untrusted model item into a
// Recommendation with every field clamped. Items without a usable title are
// dropped (ok=false).
func NormalizeRecommendation(raw any, domain entity.Domain) (entity.Recommendation, bool) {
	item, ok := raw.(map[string]any)
	if !ok {
		return entity.Recommendation{}, false
	}
	title, _ := item["title"].(string)
	title = strings.TrimSpace(title)
	if title == "" {
		return entity.Recommendation{}, false
	}

	creator, _ := item[domain.CreatorField()].(string)
	creator = strings.TrimSpace(creator)
	if creator == "" {
		creator = domain.UnknownCreator()
	}

	year := DefaultYear
	if y, ok := item["year"].(float64); ok {
		year = int(math.Round(clamp(y, MinYear, MaxYear)))
	}

	why := DefaultWhy
	if w, ok := item["why"].(string); ok {
		why = truncateRunes(w, MaxWhyLength)
	}

	confidence := DefaultConfidence
	if c, ok := item["confidence"].(float64); ok {
		confidence = clamp(c, 0, 1)
	}

	return entity.Recommendation{
		Domain:     domain,
		Title:      title,
		Creator:    creator,
		Year:       year,
		Genres:     normalizeGenres(item["genres"]),
		Why:        why,
		Confidence: confidence,
	}, true
}

// normalizeGenres keeps the first MaxGenres entries; scalars are rendered as
// strings and null or nested values are skipped.
func normalizeGenres(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	if len(arr) > MaxGenres {
		arr = arr[:MaxGenres]
	}
	out := make([]string, 0, len(arr))
	for _, g := range arr {
		switch g := g.(type) {
		case string:
			out = append(out, g)
		case float64:
			out = append(out, strconv.FormatFloat(g, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(g))
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
