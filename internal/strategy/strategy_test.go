package strategy

import (
	"reflect"
	"testing"

	"github.com/prosepolish/prosepolish/internal/evaluator"
)

func names(strategies []Strategy) []string {
	out := make([]string, len(strategies))
	for i, s := range strategies {
		out[i] = s.Name
	}
	return out
}

func TestDetermineOrder(t *testing.T) {
	r := &evaluator.Report{
		OverallScore:    40,
		GlueWords:       55,
		PassiveVoice:    0,
		DialogueBalance: 40,
		ShowDontTell:    50,
		DynamicContent:  80,
		AIPatternCount:  2,
	}

	got := names(Determine(r, evaluator.DefaultTargets()))
	want := []string{
		PatternElimination,
		TellingConversion,
		GlueWordReduction,
		SentenceVariation,
		SensoryDetail,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Determine order = %v, want %v", got, want)
	}
}

func TestDetermineSaturated(t *testing.T) {
	r := &evaluator.Report{
		OverallScore:    95,
		GlueWords:       20,
		PassiveVoice:    0,
		DialogueBalance: 40,
		ShowDontTell:    0,
		DynamicContent:  90,
		AIPatternCount:  0,
	}

	if got := Determine(r, evaluator.DefaultTargets()); len(got) != 0 {
		t.Errorf("Determine on saturated report = %v, want empty", names(got))
	}
}

func TestDetermineDialogueOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		dialogue float64
		included bool
	}{
		{"below range", 10, true},
		{"at low edge", 30, false},
		{"inside range", 40, false},
		{"at high edge", 50, false},
		{"above range", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &evaluator.Report{
				OverallScore:    95,
				GlueWords:       20,
				DialogueBalance: tt.dialogue,
				DynamicContent:  90,
			}
			got := names(Determine(r, evaluator.DefaultTargets()))
			has := false
			for _, n := range got {
				if n == DialogueFix {
					has = true
				}
			}
			if has != tt.included {
				t.Errorf("dialogue %.0f: dialogue-fix included = %v, want %v", tt.dialogue, has, tt.included)
			}
		})
	}
}

func TestDetermineSensoryDetailConditions(t *testing.T) {
	targets := evaluator.DefaultTargets()

	// Low dynamic content alone triggers it
	low := &evaluator.Report{OverallScore: 95, GlueWords: 20, DialogueBalance: 40, DynamicContent: 74}
	found := false
	for _, s := range Determine(low, targets) {
		if s.Name == SensoryDetail {
			found = true
		}
	}
	if !found {
		t.Error("sensory-detail not selected for dynamic content below 75")
	}

	// High telling alone triggers it
	telling := &evaluator.Report{OverallScore: 95, GlueWords: 20, DialogueBalance: 40, DynamicContent: 90, ShowDontTell: 9}
	found = false
	for _, s := range Determine(telling, targets) {
		if s.Name == SensoryDetail {
			found = true
		}
	}
	if !found {
		t.Error("sensory-detail not selected for telling above 8")
	}
}

func TestCatalogPriorities(t *testing.T) {
	want := map[string]int{
		PatternElimination:  10,
		TellingConversion:   9,
		DialogueFix:         8,
		GlueWordReduction:   7,
		DynamicContentBoost: 7,
		PassiveVoiceFix:     6,
		SentenceVariation:   5,
		SensoryDetail:       5,
	}

	catalog := Catalog()
	if len(catalog) != len(want) {
		t.Fatalf("catalog has %d strategies, want %d", len(catalog), len(want))
	}
	for _, s := range catalog {
		if want[s.Name] != s.Priority {
			t.Errorf("%s priority = %d, want %d", s.Name, s.Priority, want[s.Name])
		}
		if len(s.Targets) == 0 {
			t.Errorf("%s has no target metrics", s.Name)
		}
	}
}

func TestGet(t *testing.T) {
	s, ok := Get(TellingConversion)
	if !ok || s.Priority != 9 {
		t.Errorf("Get(%s) = %+v, %v", TellingConversion, s, ok)
	}
	if _, ok := Get("no-such-strategy"); ok {
		t.Error("Get(no-such-strategy) found a strategy")
	}
}
