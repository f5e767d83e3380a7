package usecase

import (
	"errors"
	"strings"
	"testing"

	"seedrec/internal/domain/entity"
)

func TestParseModelOutput_Stages(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"direct", `{"items":[{"title":"Heroes"}],"meta":{"model":"x"}}`},
		{"fenced", "```json\n{\"items\":[{\"title\":\"Heroes\"}]}\n```"},
		{"prose around", `Here you go: {"items":[{"title":"Heroes"}]} Enjoy!`},
		{"trailing commas", `{"items":[{"title":"Heroes",},],}`},
		{"bare keys", `{items:[{title:"Heroes", year: 1977}]}`},
		{"single quotes", `{"items":[{"title":'Heroes', "why": 'Glam'}]}`},
		{"all repairs", "Sure!\n{items: [{title: 'Heroes', confidence: 0.9,},]}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			obj, err := ParseModelOutput(c.in)
			if err != nil {
				t.Fatalf("ParseModelOutput() error = %v", err)
			}
			items, ok := obj["items"].([]any)
			if !ok || len(items) != 1 {
				t.Fatalf("items = %#v", obj["items"])
			}
			first := items[0].(map[string]any)
			if first["title"] != "Heroes" {
				t.Fatalf("title = %v", first["title"])
			}
		})
	}
}

func TestParseModelOutput_Failures(t *testing.T) {
	for _, in := range []string{
		"",
		"I cannot help with that.",
		`{"items": [ {"title": "unterminated }`,
		`{"items": [1, 2 3]}`,
	} {
		_, err := ParseModelOutput(in)
		if !errors.Is(err, entity.ErrUnparseable) {
			t.Errorf("ParseModelOutput(%q) error = %v, want ErrUnparseable", in, err)
		}
	}
}

func TestRepairJSON(t *testing.T) {
	got := repairJSON(`{a: 'x', "b": [1,2,],}`)
	want := `{"a":"x", "b": [1,2]}`
	if got != want {
		t.Fatalf("repairJSON = %s, want %s", got, want)
	}
	if strings.Contains(repairJSON(`{"ok":"yes"}`), `""`) {
		t.Fatal("repair must leave valid keys alone")
	}
}
