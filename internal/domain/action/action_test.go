package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeight(t *testing.T) {
	w, ok := Weight(Crawl)
	assert.True(t, ok)
	assert.Equal(t, 1.0, w)

	w, ok = Weight(GitMajor)
	assert.True(t, ok)
	assert.Equal(t, 100000.0, w)

	_, ok = Weight(Action("bogus"))
	assert.False(t, ok)
}

func TestIsLLM(t *testing.T) {
	assert.True(t, IsLLM(LLMOwn))
	assert.True(t, IsLLM(LLMPeer))
	assert.False(t, IsLLM(Crawl))
	assert.False(t, IsLLM(GitFix))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Crawl))
	assert.False(t, Valid(Action("not_an_action")))
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		name         string
		score        float64
		wantTier     Tier
		wantBaseCost float64
	}{
		{"zero score is T1", 0, T1, 0.100},
		{"just under T2 threshold", 99.99, T1, 0.100},
		{"exactly at T2 threshold", 100, T2, 0.050},
		{"between T2 and T3", 500, T2, 0.050},
		{"exactly at T3 threshold", 1000, T3, 0.033},
		{"well above T3", 1_000_000, T3, 0.033},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, cost := TierForScore(tt.score)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantBaseCost, cost)
		})
	}
}
