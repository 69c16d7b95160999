package enforcer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosepolish/prosepolish/internal/evaluator"
	"github.com/prosepolish/prosepolish/internal/lexicon"
	"github.com/prosepolish/prosepolish/internal/rewriter"
	"github.com/prosepolish/prosepolish/internal/strategy"
)

// Scores roughly 95.6: action-driven, in-range dialogue, no telling.
const excellentText = `"Stay close to me and keep quiet," she whispered, and pulled him toward the door. He kicked the door open and dragged her into the cold night. "They followed us from the bridge," he said between ragged breaths. She grabbed his arm and shoved him behind the broken cart. "Then we run for the river," she said, and he nodded once.`

// Scores 40.0: all telling, all fragments.
const tellingText = "He felt tired. She felt sad. They felt lost."

// Scores roughly 82.3: shown action with no telling, but no dialogue.
const shownText = "He rubbed his burning eyes and yawned. She wiped her wet cheeks with one sleeve. They circled the empty streets for hours."

// Scores well below 40: stock phrasing, passive voice, fragments.
const degradedText = "In conclusion, it was very important. Furthermore, it was noted. Moreover, it was felt deeply."

// stubRewriter returns canned rewrites and records every request
type stubRewriter struct {
	fn    func(req rewriter.Request) (string, error)
	calls []rewriter.Request
}

func (s *stubRewriter) Rewrite(ctx context.Context, req rewriter.Request) (*rewriter.Result, error) {
	s.calls = append(s.calls, req)
	text, err := s.fn(req)
	if err != nil {
		return nil, err
	}
	return &rewriter.Result{Text: text, TokensUsed: 100, Model: "stub"}, nil
}

func fixed(text string) *stubRewriter {
	return &stubRewriter{fn: func(rewriter.Request) (string, error) { return text, nil }}
}

func newTestEvaluator() *evaluator.Evaluator {
	return evaluator.New(lexicon.Default())
}

func TestEnforceSaturatedIsNoOp(t *testing.T) {
	rw := fixed("should never be used")
	enf := New(newTestEvaluator(), rw, 90)

	result := enf.EnforceExcellence(context.Background(), excellentText, "", 3)

	assert.Equal(t, excellentText, result.FinalText)
	assert.Empty(t, result.Attempts)
	assert.Empty(t, rw.calls, "rewriter must not be called for saturated text")
	assert.GreaterOrEqual(t, result.FinalReport.OverallScore, 90.0)
}

func TestApplyStrategyImprovement(t *testing.T) {
	rw := fixed(shownText)
	enf := New(newTestEvaluator(), rw, 90)

	strat, ok := strategy.Get(strategy.TellingConversion)
	require.True(t, ok)

	att := enf.ApplyStrategy(context.Background(), tellingText, strat, "noir")

	assert.True(t, att.Success)
	assert.Empty(t, att.Error)
	assert.Equal(t, shownText, att.RewrittenText)
	assert.InDelta(t, 42.3, att.ScoreDelta, 0.1)
	assert.InDelta(t, 100, att.Deltas[evaluator.MetricShowDontTell], 0.1)
	assert.Equal(t, int64(100), att.TokensUsed)

	require.Len(t, rw.calls, 1)
	req := rw.calls[0]
	assert.Equal(t, strategy.TellingConversion, req.Weakness)
	assert.Equal(t, "noir", req.Genre)
	assert.Contains(t, req.TargetDescription, "telling")
}

func TestApplyStrategyFailurePreservesText(t *testing.T) {
	rw := &stubRewriter{fn: func(rewriter.Request) (string, error) {
		return "", errors.New("backend unavailable")
	}}
	enf := New(newTestEvaluator(), rw, 90)

	strat, _ := strategy.Get(strategy.TellingConversion)
	att := enf.ApplyStrategy(context.Background(), tellingText, strat, "")

	assert.False(t, att.Success)
	assert.Contains(t, att.Error, "backend unavailable")
	assert.Equal(t, tellingText, att.RewrittenText)
	assert.Equal(t, att.Before, att.After)
	assert.Zero(t, att.ScoreDelta)
}

func TestApplyStrategyRecoversRewriterPanic(t *testing.T) {
	rw := &stubRewriter{fn: func(rewriter.Request) (string, error) {
		panic("backend crashed")
	}}
	enf := New(newTestEvaluator(), rw, 90)

	strat, _ := strategy.Get(strategy.TellingConversion)
	att := enf.ApplyStrategy(context.Background(), tellingText, strat, "")

	assert.False(t, att.Success)
	assert.Contains(t, att.Error, "backend crashed")
	assert.Equal(t, tellingText, att.RewrittenText)
	assert.Zero(t, att.ScoreDelta)
}

func TestEnforceAcceptsImprovement(t *testing.T) {
	rw := fixed(shownText)
	enf := New(newTestEvaluator(), rw, 90)

	result := enf.EnforceExcellence(context.Background(), tellingText, "", 1)

	require.Len(t, result.Attempts, 1)
	assert.True(t, result.Attempts[0].Accepted)
	assert.Equal(t, shownText, result.FinalText)
	assert.InDelta(t, 42.3, result.TotalImprovement, 0.1)
	assert.Equal(t, int64(100), result.TokensUsed)
}

func TestEnforceRejectsRegression(t *testing.T) {
	rw := fixed(degradedText)
	enf := New(newTestEvaluator(), rw, 90)

	result := enf.EnforceExcellence(context.Background(), tellingText, "", 1)

	require.Len(t, result.Attempts, 1)
	att := result.Attempts[0]
	assert.True(t, att.Success, "rewrite itself succeeded")
	assert.False(t, att.Accepted, "regression must not be kept")
	assert.Negative(t, att.ScoreDelta)

	assert.Equal(t, tellingText, result.FinalText)
	assert.Zero(t, result.TotalImprovement)
}

func TestEnforceStopsAtTarget(t *testing.T) {
	rw := fixed(excellentText)
	enf := New(newTestEvaluator(), rw, 90)

	// Several strategies apply to the telling text, but the first rewrite
	// already crosses the target.
	result := enf.EnforceExcellence(context.Background(), tellingText, "", 3)

	assert.Len(t, result.Attempts, 1)
	assert.GreaterOrEqual(t, result.FinalReport.OverallScore, 90.0)
	assert.Equal(t, excellentText, result.FinalText)
}

func TestEnforceHonorsMaxStrategies(t *testing.T) {
	// Echo the input back: no improvement, every attempt accepted at delta 0
	rw := &stubRewriter{fn: func(req rewriter.Request) (string, error) { return req.Text, nil }}
	enf := New(newTestEvaluator(), rw, 90)

	result := enf.EnforceExcellence(context.Background(), tellingText, "", 2)

	require.Len(t, result.Attempts, 2)
	assert.Equal(t, strategy.TellingConversion, result.Attempts[0].Strategy.Name)
	assert.Equal(t, strategy.DialogueFix, result.Attempts[1].Strategy.Name)
	assert.Equal(t, tellingText, result.FinalText)
}

func TestEnforceRecoverFromFailureAndContinue(t *testing.T) {
	calls := 0
	rw := &stubRewriter{fn: func(rewriter.Request) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient error")
		}
		return shownText, nil
	}}
	enf := New(newTestEvaluator(), rw, 90)

	result := enf.EnforceExcellence(context.Background(), tellingText, "", 2)

	require.Len(t, result.Attempts, 2)
	assert.False(t, result.Attempts[0].Success)
	assert.True(t, result.Attempts[1].Accepted)
	assert.Equal(t, shownText, result.FinalText)
}
