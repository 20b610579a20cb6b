package timezoneimpl

import (
	"testing"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrey/p2psearch-ledger/internal/services/timezone"
)

func testLogger() lgr.L {
	return lgr.New(lgr.Debug)
}

func TestEstimateOffsetFromIP_KnownAndUnknown(t *testing.T) {
	offset, ok := EstimateOffsetFromIP("24.1.2.3")
	require.True(t, ok)
	assert.Equal(t, -5.0, offset)

	_, ok = EstimateOffsetFromIP("200.1.2.3")
	assert.False(t, ok)

	_, ok = EstimateOffsetFromIP("not-an-ip")
	assert.False(t, ok)
}

func TestGetTimezoneOffset_UnresolvedZoneErrors(t *testing.T) {
	_, err := GetTimezoneOffset("Not/AZone")
	assert.ErrorIs(t, err, timezone.ErrZoneUnresolved)
}

func TestVerifyTimezone_UnknownIPGivesBenefitOfTheDoubt(t *testing.T) {
	svc := New(testLogger())
	check := svc.VerifyTimezone("peer-1", "America/Los_Angeles", "200.0.0.1")
	assert.True(t, check.Plausible)
	assert.Nil(t, check.EstimatedOffset)
}

func TestVerifyTimezone_ImplausibleClaimIsFlagged(t *testing.T) {
	svc := New(testLogger())
	// claimed zone is UTC+8 but IP maps to US east coast (-5): far beyond
	// the 2h plausibility threshold.
	check := svc.VerifyTimezone("peer-2", "Asia/Shanghai", "24.0.0.1")
	assert.False(t, check.Plausible)
	require.NotNil(t, check.EstimatedOffset)
	assert.Equal(t, -5.0, *check.EstimatedOffset)
}

func TestRecordClaim_FlagsFrequentZoneChanges(t *testing.T) {
	svc := New(testLogger())
	now := 1_000_000.0

	svc.RecordClaim("peer-3", "America/New_York", now)
	svc.RecordClaim("peer-3", "Asia/Tokyo", now+60)
	svc.RecordClaim("peer-3", "America/New_York", now+120)
	record := svc.RecordClaim("peer-3", "Asia/Tokyo", now+180)

	assert.True(t, record.Suspicious)
	assert.GreaterOrEqual(t, record.ChangesIn24h, timezone.MaxTZChangesPerDay)
}

func TestRecordClaim_StableZoneIsNotSuspicious(t *testing.T) {
	svc := New(testLogger())
	now := 1_000_000.0

	svc.RecordClaim("peer-4", "America/New_York", now)
	record := svc.RecordClaim("peer-4", "America/New_York", now+60)

	assert.False(t, record.Suspicious)
	assert.Equal(t, 0, record.ChangesIn24h)
}

func TestSuspicionOf_DoesNotMutateHistory(t *testing.T) {
	svc := New(testLogger())
	now := 1_000_000.0

	svc.RecordClaim("peer-5", "America/New_York", now)
	before := svc.SuspicionOf("peer-5", now)
	after := svc.SuspicionOf("peer-5", now)

	assert.Equal(t, before, after)
	assert.False(t, before)
}

func TestSuspicionOf_PrunesStaleClaims(t *testing.T) {
	svc := New(testLogger())
	now := 1_000_000.0

	svc.RecordClaim("peer-6", "America/New_York", now)
	farFuture := now + (timezone.PruneWindowHours+1)*3600
	assert.False(t, svc.SuspicionOf("peer-6", farFuture))
}
