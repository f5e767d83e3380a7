package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"seedrec/internal/domain/entity"
)

const songPromptTemplate = `You are a music recommender. You receive up to five seed songs (title and optional artist).
Infer the listener's taste signals: mood, tempo, genre, era, production, vocal style and cultural niche.
Reply with ONE minified JSON object and nothing else, matching this schema:

{"items":[{"title":"String","artist":"String","year":1234,"genres":["String"],"why":"<=220 chars","confidence":0.0}],"meta":{"seed_count":INT,"requested":INT,"model":"ai-engine"}}

Rules:
- Return EXACTLY {requested} items. If the seeds pull in contradictory directions, still return {requested} items but lower their confidence and say why in "why".
- "confidence" is a number in [0,1].
- Never repeat an item and never return any of the seeds.
- Prefer widely recognizable songs where possible.
- Give every "why" a different angle: genre blend, vocal style, production, era, mood, instrumentation or cultural context. Keep it specific, e.g. "Dreamy shoegaze textures with ethereal vocals".
- "why" is at most 220 characters.
- Pure JSON only. No markdown, no code fences.

SEEDS:
{seeds_json}
REQUESTED: {count}`

const moviePromptTemplate = `You are a film recommender. You receive up to five seed films (title and optional director).
Infer the viewer's taste signals: tone, themes, pacing, cinematography, period, country and language.
Reply with ONE minified JSON object and nothing else, matching this schema:

{"items":[{"title":"String","director":"String","year":1234,"genres":["String"],"why":"<=220 chars","confidence":0.0}],"meta":{"seed_count":INT,"requested":INT,"model":"ai-engine"}}

Rules:
- Return EXACTLY {requested} items. If that is not possible, still fill the list but lower confidence and explain the tension in "why".
- "confidence" is a number in [0,1].
- Never repeat an item and never return any of the seeds.
- When confidence is high, mix in a few non-obvious picks.
- Give every "why" a different cinematic angle: visual style, narrative structure, thematic depth, character work, directorial technique or cultural impact, e.g. "Non-linear storytelling with baroque visual flair".
- "why" is at most 220 characters.
- Pure JSON only. No markdown, no code fences.

SEEDS:
{seeds_json}
REQUESTED: {count}`

const tvShowPromptTemplate = `You are a TV series recommender. You receive up to five seed shows (title and optional creator).
Infer the viewer's taste signals: narrative style, character development, pacing, themes, tone, setting and format.
Reply with ONE minified JSON object and nothing else, matching this schema:

{"items":[{"title":"String","creator":"String","year":1234,"genres":["String"],"why":"<=220 chars","confidence":0.0}],"meta":{"seed_count":INT,"requested":INT,"model":"ai-engine"}}

Rules:
- Return EXACTLY {requested} items. If that is not possible, still fill the list but lower confidence and explain the tension in "why".
- "confidence" is a number in [0,1].
- Never repeat an item and never return any of the seeds.
- Consider both streaming and broadcast series; mix in a few non-obvious picks when confidence is high.
- Give every "why" a different angle: character arcs, world-building, dialogue, narrative complexity, tonal balance, production values or cultural themes, e.g. "Ensemble cast navigating intricate plot webs".
- "why" is at most 220 characters.
- Pure JSON only. No markdown, no code fences.

SEEDS:
{seeds_json}
REQUESTED: {count}`

func promptTemplate(d entity.Domain) string {
	switch d {
	case entity.DomainSongs:
		return songPromptTemplate
	case entity.DomainMovies:
		return moviePromptTemplate
	default:
		return tvShowPromptTemplate
	}
}

// BuildPrompt renders the domain's template with the seed list and count.
func BuildPrompt(domain entity.Domain, seeds []entity.Seed, count int) (string, error) {
	seedsJSON, err := json.Marshal(seeds)
	if err != nil {
		return "", fmt.Errorf("marshal seeds: %w", err)
	}
	n := strconv.Itoa(count)
	r := strings.NewReplacer(
		"{seeds_json}", string(seedsJSON),
		"{requested}", n,
		"{count}", n,
	)
	return r.Replace(promptTemplate(domain)), nil
}
