// Package evaluator scores unstructured prose on heuristic writing-quality
// dimensions. Evaluation is a pure function over the input text: no side
// effects, no external calls, deterministic for a given lexicon and targets.
package evaluator

import (
	"github.com/prosepolish/prosepolish/internal/lexicon"
)

// Metric names used in locks, deltas, and best-ever tracking
const (
	MetricOverallScore      = "overallScore"
	MetricGlueWords         = "glueWords"
	MetricPassiveVoice      = "passiveVoice"
	MetricDialogueBalance   = "dialogueBalance"
	MetricShowDontTell      = "showDontTell"
	MetricWordRepetition    = "wordRepetition"
	MetricDynamicContent    = "dynamicContent"
	MetricReflectiveContent = "reflectiveContent"
	MetricAIPatternCount    = "aiPatternCount"
	MetricCoherencePenalty  = "coherencePenalty"
)

// Sentence-length boundaries for the dynamic/reflective split
const (
	dynamicMaxWords    = 15
	reflectiveMinWords = 20
)

// Targets are the per-metric quality thresholds. Ratios are percentages.
type Targets struct {
	GlueWordsMax      float64 `yaml:"glue_words_max"`
	PassiveVoiceMax   float64 `yaml:"passive_voice_max"`
	DialogueMin       float64 `yaml:"dialogue_min"`
	DialogueMax       float64 `yaml:"dialogue_max"`
	ShowDontTellMax   float64 `yaml:"show_dont_tell_max"`
	DynamicContentMin float64 `yaml:"dynamic_content_min"`
}

// DefaultTargets returns the standard thresholds
func DefaultTargets() Targets {
	return Targets{
		GlueWordsMax:      40,
		PassiveVoiceMax:   5,
		DialogueMin:       30,
		DialogueMax:       50,
		ShowDontTellMax:   10,
		DynamicContentMin: 70,
	}
}

// DialogueMidpoint is the ideal dialogue ratio within the target range
func (t Targets) DialogueMidpoint() float64 {
	return (t.DialogueMin + t.DialogueMax) / 2
}

// PatternMatch records one flagged phrase found in the text
type PatternMatch struct {
	Phrase   string   `json:"phrase"`
	Severity string   `json:"severity"`
	Count    int      `json:"count"`
	Examples []string `json:"examples,omitempty"`
}

// CoherenceIssue records one structural problem found in the text
type CoherenceIssue struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Breakdown is the additive composition of the overall score
type Breakdown struct {
	GlueComponent    float64 `json:"glueComponent"`
	TellingComponent float64 `json:"tellingComponent"`
	DynamicComponent float64 `json:"dynamicComponent"`
	DialogueBonus    float64 `json:"dialogueBonus"`
	PatternBonus     float64 `json:"patternBonus"`
	CoherencePenalty float64 `json:"coherencePenalty"`
}

// Report is the full metrics report for one text. All ratio fields are
// percentages rounded to one decimal place; OverallScore is in [0,100].
type Report struct {
	WordCount     int `json:"wordCount"`
	SentenceCount int `json:"sentenceCount"`

	GlueWords         float64 `json:"glueWords"`
	PassiveVoice      float64 `json:"passiveVoice"`
	DialogueBalance   float64 `json:"dialogueBalance"`
	ShowDontTell      float64 `json:"showDontTell"`
	WordRepetition    float64 `json:"wordRepetition"`
	DynamicContent    float64 `json:"dynamicContent"`
	ReflectiveContent float64 `json:"reflectiveContent"`

	AIPatterns     []PatternMatch `json:"aiPatterns,omitempty"`
	AIPatternCount int            `json:"aiPatternCount"`

	CoherenceIssues  []CoherenceIssue `json:"coherenceIssues,omitempty"`
	CoherencePenalty float64          `json:"coherencePenalty"`

	OverallScore float64   `json:"overallScore"`
	Breakdown    Breakdown `json:"breakdown"`

	Suggestions []string `json:"suggestions,omitempty"`
}

// Metric returns the named metric value. AIPatternCount is reported as a
// float so that locks and deltas can treat all metrics uniformly.
func (r *Report) Metric(name string) float64 {
	switch name {
	case MetricOverallScore:
		return r.OverallScore
	case MetricGlueWords:
		return r.GlueWords
	case MetricPassiveVoice:
		return r.PassiveVoice
	case MetricDialogueBalance:
		return r.DialogueBalance
	case MetricShowDontTell:
		return r.ShowDontTell
	case MetricWordRepetition:
		return r.WordRepetition
	case MetricDynamicContent:
		return r.DynamicContent
	case MetricReflectiveContent:
		return r.ReflectiveContent
	case MetricAIPatternCount:
		return float64(r.AIPatternCount)
	case MetricCoherencePenalty:
		return r.CoherencePenalty
	default:
		return 0
	}
}

// Evaluator computes metric reports for texts. It carries no per-call state;
// construct one per lexicon/targets pair and share freely.
type Evaluator struct {
	lex     *lexicon.Lexicon
	targets Targets
}

// New creates an evaluator with the default targets
func New(lex *lexicon.Lexicon) *Evaluator {
	return NewWithTargets(lex, DefaultTargets())
}

// NewWithTargets creates an evaluator with custom targets
func NewWithTargets(lex *lexicon.Lexicon, targets Targets) *Evaluator {
	return &Evaluator{lex: lex, targets: targets}
}

// Targets returns the thresholds this evaluator scores against
func (e *Evaluator) Targets() Targets {
	return e.targets
}

// Evaluate computes the full metrics report for a text.
// Empty or word-free input yields an all-zero report, never an error.
func (e *Evaluator) Evaluate(text string) *Report {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return &Report{}
	}
	sentences := splitSentences(text)

	r := &Report{
		WordCount:     len(tokens),
		SentenceCount: len(sentences),
	}

	r.GlueWords = round1(percent(e.countGlue(tokens), len(tokens)))
	r.PassiveVoice = round1(percent(countPassive(text), len(sentences)))
	r.DialogueBalance = round1(percent(e.countDialogueWords(text), len(tokens)))
	r.ShowDontTell = round1(percent(e.countTelling(tokens), len(sentences)))
	r.WordRepetition = round1(percent(e.repetitionExcess(tokens), len(tokens)))

	dynamic, reflective := e.classifySentences(sentences)
	r.DynamicContent = round1(percent(dynamic, len(sentences)))
	r.ReflectiveContent = round1(percent(reflective, len(sentences)))

	r.AIPatterns, r.AIPatternCount = e.detectPatterns(text, sentences)
	r.CoherenceIssues, r.CoherencePenalty = e.checkCoherence(tokens, sentences)

	r.OverallScore, r.Breakdown = composite(
		r.GlueWords, r.ShowDontTell, r.DynamicContent, r.DialogueBalance,
		r.AIPatternCount, r.CoherencePenalty, e.targets,
	)
	r.Suggestions = e.suggestions(r)

	return r
}

func (e *Evaluator) countGlue(tokens []string) int {
	count := 0
	for _, tok := range tokens {
		if e.lex.IsGlueWord(tok) {
			count++
		}
	}
	return count
}

func (e *Evaluator) countDialogueWords(text string) int {
	count := 0
	for _, span := range quotedSpans(text) {
		count += len(tokenize(span))
	}
	return count
}

func (e *Evaluator) countTelling(tokens []string) int {
	count := 0
	for _, tok := range tokens {
		if e.lex.IsTellingMarker(tok) {
			count++
		}
	}
	return count
}

// repetitionExcess sums (occurrences - 2) over content words that appear
// more than twice. Content words are longer than 4 runes and not glue words.
func (e *Evaluator) repetitionExcess(tokens []string) int {
	counts := make(map[string]int)
	for _, tok := range tokens {
		if len([]rune(tok)) <= 4 || e.lex.IsGlueWord(tok) {
			continue
		}
		counts[tok]++
	}

	excess := 0
	for _, n := range counts {
		if n > 2 {
			excess += n - 2
		}
	}
	return excess
}

// classifySentences counts dynamic and reflective sentences. A sentence may
// count toward both categories, or neither.
func (e *Evaluator) classifySentences(sentences []string) (dynamic, reflective int) {
	for _, s := range sentences {
		words := tokenize(s)

		isDynamic := len(words) < dynamicMaxWords
		isReflective := len(words) > reflectiveMinWords
		for _, w := range words {
			if !isDynamic && e.lex.IsActionVerb(w) {
				isDynamic = true
			}
			if !isReflective && e.lex.IsIntrospectiveVerb(w) {
				isReflective = true
			}
		}

		if isDynamic {
			dynamic++
		}
		if isReflective {
			reflective++
		}
	}
	return dynamic, reflective
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
