package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/catalog"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/logger"
)

func newTestResolver() *Resolver {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	return NewResolver(config.DefaultTunables(), catalog.Default(), log)
}

func hvacBusiness(id int64, ebitda int64, quality int) domain.Business {
	return domain.Business{
		ID:      id,
		Sector:  "home_services",
		SubType: "hvac",
		EBITDA:  ebitda,
		Quality: quality,
		Status:  domain.StatusActive,
	}
}

func TestSizeRatioTier(t *testing.T) {
	tests := []struct {
		name     string
		acquired int64
		platform int64
		expected domain.SizeRatioTier
	}{
		{name: "ideal at quarter", acquired: 250, platform: 1_000, expected: domain.SizeRatioIdeal},
		{name: "stretch at half", acquired: 500, platform: 1_000, expected: domain.SizeRatioStretch},
		{name: "strained at three quarters", acquired: 750, platform: 1_000, expected: domain.SizeRatioStrained},
		{name: "overreach near parity", acquired: 900, platform: 1_000, expected: domain.SizeRatioOverreach},
		{name: "larger acquirer uses smaller side", acquired: 4_000, platform: 1_000, expected: domain.SizeRatioOverreach},
		{name: "tiny bolt-on", acquired: 50, platform: 5_000, expected: domain.SizeRatioIdeal},
		{name: "zero platform is overreach", acquired: 500, platform: 0, expected: domain.SizeRatioOverreach},
		{name: "negative platform is overreach", acquired: 500, platform: -200, expected: domain.SizeRatioOverreach},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SizeRatioTier(tt.acquired, tt.platform))
		})
	}
}

func TestProbabilityBaseline(t *testing.T) {
	r := newTestResolver()

	// Average quality, no platform, no flags: the unadjusted base.
	p, affinity, sizeTier := r.Probability(Input{Acquired: hvacBusiness(1, 500, 3)})
	assert.InDelta(t, 0.70, p, 1e-9)
	assert.Equal(t, domain.AffinityMatch, affinity)
	assert.Equal(t, domain.SizeRatioIdeal, sizeTier)
}

func TestProbabilityQualityAndOperator(t *testing.T) {
	r := newTestResolver()

	p5, _, _ := r.Probability(Input{Acquired: hvacBusiness(1, 500, 5)})
	p1, _, _ := r.Probability(Input{Acquired: hvacBusiness(1, 500, 1)})
	assert.InDelta(t, 0.80, p5, 1e-9)
	assert.InDelta(t, 0.60, p1, 1e-9)

	strong, _, _ := r.Probability(Input{Acquired: hvacBusiness(1, 500, 3), Operator: domain.OperatorStrong})
	weak, _, _ := r.Probability(Input{Acquired: hvacBusiness(1, 500, 3), Operator: domain.OperatorWeak})
	assert.InDelta(t, 0.75, strong, 1e-9)
	assert.InDelta(t, 0.63, weak, 1e-9)
}

func TestProbabilityAffinityAndSector(t *testing.T) {
	r := newTestResolver()
	platform := hvacBusiness(2, 10_000, 3)

	// Same sector, same sub-type: base + same-sector bonus, ideal size.
	match := hvacBusiness(1, 500, 3)
	p, affinity, _ := r.Probability(Input{Acquired: match, Platform: &platform})
	assert.Equal(t, domain.AffinityMatch, affinity)
	assert.InDelta(t, 0.78, p, 1e-9)

	// Related sub-type within the same affinity group.
	related := match
	related.SubType = "plumbing"
	p, affinity, _ = r.Probability(Input{Acquired: related, Platform: &platform})
	assert.Equal(t, domain.AffinityRelated, affinity)
	assert.InDelta(t, 0.73, p, 1e-9)

	// Distant sub-type, same sector.
	distant := match
	distant.SubType = "roofing"
	p, affinity, _ = r.Probability(Input{Acquired: distant, Platform: &platform})
	assert.Equal(t, domain.AffinityDistant, affinity)
	assert.InDelta(t, 0.66, p, 1e-9)

	// Cross-sector is always distant, and loses the same-sector bonus.
	cross := match
	cross.Sector = "distribution"
	cross.SubType = "industrial_supply"
	p, affinity, _ = r.Probability(Input{Acquired: cross, Platform: &platform})
	assert.Equal(t, domain.AffinityDistant, affinity)
	assert.InDelta(t, 0.58, p, 1e-9)
}

func TestProbabilitySizePenaltyAndOffsets(t *testing.T) {
	r := newTestResolver()

	// Strained tuck-in with no offsets: full penalty applies.
	platform := hvacBusiness(2, 1_000, 3)
	acquired := hvacBusiness(1, 700, 3)
	p, _, sizeTier := r.Probability(Input{Acquired: acquired, Platform: &platform})
	assert.Equal(t, domain.SizeRatioStrained, sizeTier)
	assert.InDelta(t, 0.78-0.16, p, 1e-9)

	// Platform scale offsets, capped at half the base penalty. Scale 10
	// would offset 0.20 raw on a 0.16 penalty, but caps at 0.08. Shared
	// services then adds its own probability bonus on top.
	platform.PlatformScale = 10
	p, _, _ = r.Probability(Input{Acquired: acquired, Platform: &platform, SharedServices: true})
	assert.InDelta(t, 0.78-0.08+0.06, p, 1e-9)
}

func TestProbabilityMergerHalvesPenalties(t *testing.T) {
	r := newTestResolver()

	// Near-parity merger of distant sub-types: affinity and size penalties
	// run at half the tuck-in magnitude.
	platform := hvacBusiness(2, 1_000, 3)
	acquired := hvacBusiness(1, 900, 3)
	acquired.SubType = "roofing"

	tuckIn, _, _ := r.Probability(Input{Acquired: acquired, Platform: &platform})
	merger, _, _ := r.Probability(Input{Acquired: acquired, Platform: &platform, Merger: true})
	assert.InDelta(t, 0.78-0.12-0.28, tuckIn, 1e-9)
	assert.InDelta(t, 0.78-0.06-0.14, merger, 1e-9)
}

func TestProbabilityClamped(t *testing.T) {
	r := newTestResolver()

	// Worst case clamps at the floor, never zero.
	platform := hvacBusiness(2, 1_000, 1)
	acquired := hvacBusiness(1, 990, 1)
	acquired.Sector = "consumer_brands"
	acquired.SubType = "pet_products"
	p, _, _ := r.Probability(Input{Acquired: acquired, Platform: &platform, Operator: domain.OperatorWeak, HighRevenueConcentration: true})
	assert.GreaterOrEqual(t, p, 0.05)

	// Best case clamps at the ceiling.
	best := hvacBusiness(1, 100, 5)
	bigPlatform := hvacBusiness(2, 10_000, 5)
	p, _, _ = r.Probability(Input{Acquired: best, Platform: &bigPlatform, Operator: domain.OperatorStrong, SharedServices: true})
	assert.LessOrEqual(t, p, 0.95)
}

func TestResolveWithRollThresholds(t *testing.T) {
	r := newTestResolver()
	in := Input{Acquired: hvacBusiness(1, 500, 3)} // p = 0.70

	tests := []struct {
		name     string
		roll     float64
		expected domain.IntegrationOutcome
	}{
		{name: "well under success threshold", roll: 0.10, expected: domain.IntegrationSuccess},
		{name: "just under success threshold", roll: 0.41, expected: domain.IntegrationSuccess},
		{name: "just over success threshold", roll: 0.43, expected: domain.IntegrationPartial},
		{name: "just under partial threshold", roll: 0.83, expected: domain.IntegrationPartial},
		{name: "over partial threshold", roll: 0.85, expected: domain.IntegrationFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.ResolveWithRoll(in, tt.roll)
			assert.Equal(t, tt.expected, res.Outcome)
			assert.InDelta(t, 0.70, res.Probability, 1e-9)
		})
	}
}

func TestResolveSynergyByOutcome(t *testing.T) {
	r := newTestResolver()
	platform := hvacBusiness(2, 10_000, 3)
	in := Input{Acquired: hvacBusiness(1, 1_000, 3), Platform: &platform}

	success := r.ResolveWithRoll(in, 0.01)
	require.Equal(t, domain.IntegrationSuccess, success.Outcome)
	assert.Equal(t, int64(200), success.Synergy) // 20% of the smaller EBITDA
	assert.Nil(t, success.Drag)

	partial := r.ResolveWithRoll(in, 0.50)
	require.Equal(t, domain.IntegrationPartial, partial.Outcome)
	assert.Equal(t, int64(60), partial.Synergy)
	assert.Nil(t, partial.Drag)

	failure := r.ResolveWithRoll(in, 0.99)
	require.Equal(t, domain.IntegrationFailure, failure.Outcome)
	assert.Equal(t, int64(-50), failure.Synergy)
	require.NotNil(t, failure.Drag)
	assert.Greater(t, failure.Drag.PerRound, 0.0)
	assert.Equal(t, 0.5, failure.Drag.Decay)
}

func TestSynergyDampedByAffinityAndSize(t *testing.T) {
	r := newTestResolver()

	// Related sub-type at stretch ratio: 20% x 0.75 affinity x 0.75 size.
	platform := hvacBusiness(2, 2_000, 3)
	acquired := hvacBusiness(1, 1_000, 3)
	acquired.SubType = "plumbing"
	res := r.ResolveWithRoll(Input{Acquired: acquired, Platform: &platform}, 0.01)
	require.Equal(t, domain.IntegrationSuccess, res.Outcome)
	assert.Equal(t, int64(113), res.Synergy) // round(1000 x 0.20 x 0.75 x 0.75)
}

func TestGrowthDragBounds(t *testing.T) {
	r := newTestResolver()

	// A tiny bolt-on failure floors the drag.
	platform := hvacBusiness(2, 50_000, 3)
	small := Input{Acquired: hvacBusiness(1, 200, 3), Platform: &platform}
	drag := r.growthDrag(small)
	assert.InDelta(t, 0.005, drag.PerRound, 1e-9)

	// An oversized reverse-ratio failure caps it.
	big := Input{Acquired: hvacBusiness(1, 80_000, 3), Platform: &platform}
	drag = r.growthDrag(big)
	assert.InDelta(t, 0.04, drag.PerRound, 1e-9)

	// Mergers halve the drag.
	bigMerger := big
	bigMerger.Merger = true
	drag = r.growthDrag(bigMerger)
	assert.InDelta(t, 0.02, drag.PerRound, 1e-9)
}
