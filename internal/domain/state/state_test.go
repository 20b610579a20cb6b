package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_PositiveBalanceIsNormal(t *testing.T) {
	a := Evaluate(10, nil, 1000, 0.05)
	assert.Equal(t, Normal, a.State)
	assert.Equal(t, 0.05, a.EffectiveCost)
	assert.Equal(t, 0.0, a.DebtAmount)
	assert.Nil(t, a.GraceRemainingHours)
}

func TestEvaluate_ZeroBalanceNoGraceStartIsNormal(t *testing.T) {
	a := Evaluate(0, nil, 1000, 0.05)
	assert.Equal(t, Normal, a.State)
	assert.Equal(t, 0.0, a.DebtAmount)
}

func TestEvaluate_WithinGracePeriod(t *testing.T) {
	graceStart := 1_000_000.0
	now := graceStart + 10*3600 // 10 hours into grace
	a := Evaluate(-5, &graceStart, now, 0.05)

	assert.Equal(t, Grace, a.State)
	assert.Equal(t, 0.05, a.EffectiveCost)
	assert.Equal(t, 5.0, a.DebtAmount)
	if assert.NotNil(t, a.GraceRemainingHours) {
		assert.InDelta(t, 62.0, *a.GraceRemainingHours, 1e-9)
	}
}

func TestEvaluate_ExactlyAtGraceBoundaryStillInGrace(t *testing.T) {
	graceStart := 0.0
	now := GracePeriodHours * 3600
	a := Evaluate(0, &graceStart, now, 0.05)
	assert.Equal(t, Grace, a.State)
}

func TestEvaluate_PastGraceIsDebt(t *testing.T) {
	graceStart := 0.0
	now := (GracePeriodHours + 1) * 3600
	a := Evaluate(-20, &graceStart, now, 0.05)

	assert.Equal(t, Debt, a.State)
	assert.Equal(t, 0.10, a.EffectiveCost)
	assert.Equal(t, 20.0, a.DebtAmount)
	assert.Nil(t, a.GraceRemainingHours)
}

func TestEvaluate_DebtCostIsDoubleBase(t *testing.T) {
	graceStart := 0.0
	now := 1000 * 3600.0
	a := Evaluate(-1, &graceStart, now, 0.033)
	assert.Equal(t, Debt, a.State)
	assert.InDelta(t, 0.066, a.EffectiveCost, 1e-9)
}
