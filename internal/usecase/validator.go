package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"seedrec/internal/domain/entity"
)

const (
	MinSeeds       = 1
	MaxSeeds       = 5
	MinCount       = 1
	MaxCount       = 20
	MinTitleLength = 2
	MaxTitleLength = 120
)

// ValidateDomain reports whether v is exactly one of the recognized tags.
func ValidateDomain(v any) bool {
	_, ok := entity.ParseDomain(v)
	return ok
}

type SeedsValidation struct {
	Valid  bool
	Errors []string
}

// ValidateSeeds checks a decoded JSON value. Array level failures return
// immediately; otherwise every seed is checked and all messages collected.
func ValidateSeeds(v any) SeedsValidation {
	arr, ok := v.([]any)
	if !ok {
		return SeedsValidation{Errors: []string{"Seeds must be an array"}}
	}
	if len(arr) < MinSeeds {
		return SeedsValidation{Errors: []string{"At least one seed is required"}}
	}
	if len(arr) > MaxSeeds {
		return SeedsValidation{Errors: []string{fmt.Sprintf("Maximum %d seeds allowed", MaxSeeds)}}
	}

	var errs []string
	for i, raw := range arr {
		n := i + 1
		seed, ok := raw.(map[string]any)
		if !ok || seed == nil {
			errs = append(errs, fmt.Sprintf("Seed %d: Must be an object", n))
			continue
		}

		title, _ := seed["title"].(string)
		title = strings.TrimSpace(title)
		switch l := utf8.RuneCountInString(title); {
		case title == "":
			errs = append(errs, fmt.Sprintf("Seed %d: Title is required", n))
		case l < MinTitleLength:
			errs = append(errs, fmt.Sprintf("Seed %d: Title must be at least %d characters", n, MinTitleLength))
		case l > MaxTitleLength:
			errs = append(errs, fmt.Sprintf("Seed %d: Title must be less than %d characters", n, MaxTitleLength))
		case isEmojiOnly(title):
			errs = append(errs, fmt.Sprintf("Seed %d: Title cannot be only emojis", n))
		}

		if by, present := seed["by"]; present && by != nil {
			if _, ok := by.(string); !ok {
				errs = append(errs, fmt.Sprintf("Seed %d: By field must be a string", n))
			}
		}
	}
	return SeedsValidation{Valid: len(errs) == 0, Errors: errs}
}

type CountValidation struct {
	Valid bool
	Value int
	Error string
}

// ValidateCount coerces numeric strings and checks the integer bounds.
func ValidateCount(v any) CountValidation {
	var n float64
	switch c := v.(type) {
	case float64:
		n = c
	case float32:
		n = float64(c)
	case int:
		n = float64(c)
	case int64:
		n = float64(c)
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			// an empty string coerces to zero
			break
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return CountValidation{Error: "Count must be a number"}
		}
		n = f
	default:
		return CountValidation{Error: "Count must be a number"}
	}

	if math.IsNaN(n) {
		return CountValidation{Error: "Count must be a number"}
	}
	if math.IsInf(n, 0) || n != math.Trunc(n) {
		return CountValidation{Error: "Count must be an integer"}
	}
	if n < MinCount {
		return CountValidation{Error: fmt.Sprintf("Count must be at least %d", MinCount)}
	}
	if n > MaxCount {
		return CountValidation{Error: fmt.Sprintf("Count must be at most %d", MaxCount)}
	}
	return CountValidation{Valid: true, Value: int(n)}
}

// ValidateSeedTitle applies the per-title rules on their own.
func ValidateSeedTitle(title string) bool {
	t := strings.TrimSpace(title)
	l := utf8.RuneCountInString(t)
	if l < MinTitleLength || l > MaxTitleLength {
		return false
	}
	return !isEmojiOnly(t)
}

// NormalizeSeed trims both fields; a blank By becomes absent.
func NormalizeSeed(s entity.Seed) entity.Seed {
	return entity.Seed{
		Title: strings.TrimSpace(s.Title),
		By:    strings.TrimSpace(s.By),
	}
}

// seedsFromValidated converts an already validated seeds value.
func seedsFromValidated(v any) []entity.Seed {
	arr, _ := v.([]any)
	out := make([]entity.Seed, 0, len(arr))
	for _, raw := range arr {
		m, _ := raw.(map[string]any)
		title, _ := m["title"].(string)
		by, _ := m["by"].(string)
		out = append(out, NormalizeSeed(entity.Seed{Title: title, By: by}))
	}
	return out
}

func isEmojiOnly(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.Is(emojiTable, r) {
			continue
		}
		return false
	}
	return true
}

// emojiTable covers pictographic code points and the joiners, selectors and
// modifiers that build emoji sequences. ASCII keycap bases (digits, '#', '*')
// are deliberately absent so numeric titles stay valid.
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00a9, Hi: 0x00a9, Stride: 1},
		{Lo: 0x00ae, Hi: 0x00ae, Stride: 1},
		{Lo: 0x200d, Hi: 0x200d, Stride: 1},
		{Lo: 0x203c, Hi: 0x203c, Stride: 1},
		{Lo: 0x2049, Hi: 0x2049, Stride: 1},
		{Lo: 0x20e3, Hi: 0x20e3, Stride: 1},
		{Lo: 0x2122, Hi: 0x2122, Stride: 1},
		{Lo: 0x2139, Hi: 0x2139, Stride: 1},
		{Lo: 0x2194, Hi: 0x2199, Stride: 1},
		{Lo: 0x21a9, Hi: 0x21aa, Stride: 1},
		{Lo: 0x231a, Hi: 0x231b, Stride: 1},
		{Lo: 0x2328, Hi: 0x2328, Stride: 1},
		{Lo: 0x23cf, Hi: 0x23cf, Stride: 1},
		{Lo: 0x23e9, Hi: 0x23f3, Stride: 1},
		{Lo: 0x23f8, Hi: 0x23fa, Stride: 1},
		{Lo: 0x24c2, Hi: 0x24c2, Stride: 1},
		{Lo: 0x25aa, Hi: 0x25ab, Stride: 1},
		{Lo: 0x25b6, Hi: 0x25b6, Stride: 1},
		{Lo: 0x25c0, Hi: 0x25c0, Stride: 1},
		{Lo: 0x25fb, Hi: 0x25fe, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2934, Hi: 0x2935, Stride: 1},
		{Lo: 0x2b05, Hi: 0x2b07, Stride: 1},
		{Lo: 0x2b1b, Hi: 0x2b1c, Stride: 1},
		{Lo: 0x2b50, Hi: 0x2b50, Stride: 1},
		{Lo: 0x2b55, Hi: 0x2b55, Stride: 1},
		{Lo: 0x3030, Hi: 0x3030, Stride: 1},
		{Lo: 0x303d, Hi: 0x303d, Stride: 1},
		{Lo: 0x3297, Hi: 0x3297, Stride: 1},
		{Lo: 0x3299, Hi: 0x3299, Stride: 1},
		{Lo: 0xfe0e, Hi: 0xfe0f, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1faff, Stride: 1},
		{Lo: 0xe0020, Hi: 0xe007f, Stride: 1},
	},
	LatinOffset: 2,
}
