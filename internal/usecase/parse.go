package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"seedrec/internal/domain/entity"
)

var (
	jsonObjectPattern    = regexp.MustCompile(`\{[\s\S]*\}`)
	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
	bareKeyPattern       = regexp.MustCompile(`([{,]\s*)([a-zA-Z_][a-zA-Z0-9_]*)\s*:`)
	singleQuotePattern   = regexp.MustCompile(`:\s*'([^']*)'`)
)

// ParseModelOutput decodes a model reply into a JSON object. It tries the
// whole text, then the outermost {...} span, then that span after light
// repair. The first stage that decodes wins.
func ParseModelOutput(text string) (map[string]any, error) {
	if obj, err := decodeObject(text); err == nil {
		return obj, nil
	}

	span := jsonObjectPattern.FindString(text)
	if span == "" {
		return nil, entity.ErrUnparseable
	}
	if obj, err := decodeObject(span); err == nil {
		return obj, nil
	}

	obj, err := decodeObject(repairJSON(span))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnparseable, err)
	}
	return obj, nil
}

// repairJSON fixes the usual slips: trailing commas, bare keys and single
// quoted string values.
func repairJSON(s string) string {
	s = trailingCommaPattern.ReplaceAllString(s, "$1")
	s = bareKeyPattern.ReplaceAllString(s, `$1"$2":`)
	s = singleQuotePattern.ReplaceAllString(s, `:"$1"`)
	return s
}

func decodeObject(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("not a JSON object")
	}
	return obj, nil
}
