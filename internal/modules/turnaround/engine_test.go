package turnaround

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/catalog"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/logger"
)

func newTestEngine() *Engine {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	return NewEngine(config.DefaultTunables(), catalog.Default(), log)
}

func stabilizationProgram(t *testing.T, e *Engine) domain.TurnaroundProgram {
	t.Helper()
	p, ok := e.Program("operational_stabilization")
	require.True(t, ok)
	return p
}

func testBusiness(quality int, ebitda int64) domain.Business {
	return domain.Business{
		ID:                   1,
		Sector:               "home_services",
		SubType:              "hvac",
		EBITDA:               ebitda,
		Revenue:              ebitda * 8,
		Margin:               0.125,
		Quality:              quality,
		QualityAtAcquisition: quality,
		Status:               domain.StatusActive,
	}
}

func TestProgramCatalogInvariants(t *testing.T) {
	for _, p := range DefaultPrograms() {
		t.Run(p.ID, func(t *testing.T) {
			sum := p.SuccessRate + p.PartialRate + p.FailureRate
			assert.InDelta(t, 1.0, sum, 1e-9, "outcome rates must sum to 1")

			assert.Greater(t, p.TargetQuality, p.SourceQuality)
			assert.GreaterOrEqual(t, p.SourceQuality, domain.MinQuality)
			assert.LessOrEqual(t, p.TargetQuality, domain.MaxQuality)
			assert.LessOrEqual(t, p.QuickDuration, p.StandardDuration)
			assert.GreaterOrEqual(t, p.Tier, 1)
			assert.LessOrEqual(t, p.Tier, 3)
			assert.Greater(t, p.UpfrontCostFraction, 0.0)
		})
	}
}

func TestTierRequirementsAscend(t *testing.T) {
	reqs := TierRequirements()
	require.Len(t, reqs, 3)
	for i := 1; i < len(reqs); i++ {
		assert.Greater(t, reqs[i].MinBusinesses, reqs[i-1].MinBusinesses)
		assert.Greater(t, reqs[i].MinCash, reqs[i-1].MinCash)
		assert.Greater(t, reqs[i].UnlockCost, reqs[i-1].UnlockCost)
		assert.Greater(t, reqs[i].OrganicBonus, reqs[i-1].OrganicBonus)
	}
}

func TestTierUnlockable(t *testing.T) {
	// Tier 1: 2 businesses and 500 cash.
	assert.True(t, TierUnlockable(1, 0, 2, 500))
	assert.False(t, TierUnlockable(1, 0, 1, 500))
	assert.False(t, TierUnlockable(1, 0, 2, 499))

	// Tiers unlock strictly in order.
	assert.False(t, TierUnlockable(2, 0, 10, 100_000))
	assert.True(t, TierUnlockable(2, 1, 4, 2_000))
	assert.True(t, TierUnlockable(3, 2, 6, 5_000))
	assert.False(t, TierUnlockable(4, 3, 100, 1_000_000))
}

func TestOrganicImprovementBonus(t *testing.T) {
	assert.Equal(t, 0.0, OrganicImprovementBonus(0))
	assert.Equal(t, 0.02, OrganicImprovementBonus(1))
	assert.Equal(t, 0.04, OrganicImprovementBonus(2))
	assert.Equal(t, 0.06, OrganicImprovementBonus(3))
}

func TestCalculateCost(t *testing.T) {
	e := newTestEngine()
	p := stabilizationProgram(t, e) // 12% of EBITDA

	b := testBusiness(1, 333)
	assert.Equal(t, int64(40), e.CalculateCost(&p, &b))

	// Negative EBITDA still costs money to fix.
	b.EBITDA = -333
	assert.Equal(t, int64(40), e.CalculateCost(&p, &b))
}

func TestCanStart(t *testing.T) {
	e := newTestEngine()
	p := stabilizationProgram(t, e)
	b := testBusiness(1, 1_000)

	assert.NoError(t, e.CanStart(&p, &b, 1, 10_000, nil))

	// Tier locked.
	assert.Error(t, e.CanStart(&p, &b, 0, 10_000, nil))

	// Wrong source quality.
	wrong := testBusiness(3, 1_000)
	assert.Error(t, e.CanStart(&p, &wrong, 1, 10_000, nil))

	// Already under a running program.
	running := []domain.ActiveTurnaround{{BusinessID: b.ID, Status: domain.TurnaroundActive}}
	assert.Error(t, e.CanStart(&p, &b, 1, 10_000, running))

	// A completed program no longer blocks.
	done := []domain.ActiveTurnaround{{BusinessID: b.ID, Status: domain.TurnaroundCompleted}}
	assert.NoError(t, e.CanStart(&p, &b, 1, 10_000, done))

	// Insufficient cash for the upfront cost.
	assert.Error(t, e.CanStart(&p, &b, 1, 50, nil))

	// Terminal business.
	sold := testBusiness(1, 1_000)
	sold.Status = domain.StatusSold
	assert.Error(t, e.CanStart(&p, &sold, 1, 10_000, nil))
}

func TestCanStartSectorQualityCeiling(t *testing.T) {
	e := newTestEngine()
	full, ok := e.Program("full_transformation") // quality 3 -> 5
	require.True(t, ok)

	// Home services caps at quality 4, so a 3->5 program never starts.
	b := testBusiness(3, 2_000)
	err := e.CanStart(&full, &b, 3, 100_000, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ceiling")

	// A program whose target stays at the ceiling still qualifies.
	upgrade, ok := e.Program("management_upgrade") // quality 3 -> 4
	require.True(t, ok)
	assert.NoError(t, e.CanStart(&upgrade, &b, 2, 100_000, nil))

	// A business already at the sector ceiling cannot be lifted further.
	flagship, ok := e.Program("flagship_buildout") // quality 4 -> 5
	require.True(t, ok)
	atCeiling := testBusiness(4, 2_000)
	assert.Error(t, e.CanStart(&flagship, &atCeiling, 3, 100_000, nil))

	// The same programs run where the sector ceiling is 5.
	soft := testBusiness(3, 2_000)
	soft.Sector, soft.SubType = "business_software", "vertical_saas"
	assert.NoError(t, e.CanStart(&full, &soft, 3, 100_000, nil))

	// Unknown sectors carry no ceiling.
	offMap := testBusiness(3, 2_000)
	offMap.Sector = "asteroid_mining"
	assert.NoError(t, e.CanStart(&full, &offMap, 3, 100_000, nil))
}

func TestStartDurations(t *testing.T) {
	e := newTestEngine()
	p := stabilizationProgram(t, e)
	b := testBusiness(1, 1_000)

	standard := e.Start(&p, &b, 10, false)
	assert.Equal(t, 10+p.StandardDuration, standard.EndRound)
	assert.Equal(t, domain.TurnaroundActive, standard.Status)
	assert.True(t, standard.Running())

	quick := e.Start(&p, &b, 10, true)
	assert.Equal(t, 10+p.QuickDuration, quick.EndRound)
	assert.True(t, quick.Quick)
}

func TestResolveWithRollOutcomes(t *testing.T) {
	e := newTestEngine()
	p := stabilizationProgram(t, e) // 0.65 / 0.25 / 0.10

	t.Run("success", func(t *testing.T) {
		b := testBusiness(1, 1_000)
		res := e.ResolveWithRoll(&p, b, 0, 0.30)
		assert.Equal(t, domain.TurnaroundSuccess, res.Outcome)
		assert.Equal(t, p.TargetQuality, res.Business.Quality)
		assert.Equal(t, int64(1_150), res.Business.EBITDA) // 15% boost
		assert.False(t, res.Fatigued)
	})

	t.Run("partial", func(t *testing.T) {
		b := testBusiness(1, 1_000)
		res := e.ResolveWithRoll(&p, b, 0, 0.80)
		assert.Equal(t, domain.TurnaroundPartial, res.Outcome)
		assert.Equal(t, 2, res.Business.Quality)
		assert.Equal(t, int64(1_050), res.Business.EBITDA) // 5% boost
	})

	t.Run("failure", func(t *testing.T) {
		b := testBusiness(1, 1_000)
		res := e.ResolveWithRoll(&p, b, 0, 0.95)
		assert.Equal(t, domain.TurnaroundFailure, res.Outcome)
		assert.Equal(t, 1, res.Business.Quality)
		assert.Equal(t, int64(900), res.Business.EBITDA) // 10% damage
		assert.Equal(t, res.QualityFrom, res.QualityTo)
	})
}

func TestResolveLeavesInputSnapshotUntouched(t *testing.T) {
	e := newTestEngine()
	p := stabilizationProgram(t, e)

	b := testBusiness(1, 1_000)
	before := b
	res := e.ResolveWithRoll(&p, b, 0, 0.30)

	require.Equal(t, domain.TurnaroundSuccess, res.Outcome)
	assert.Equal(t, before, b, "caller's snapshot must not change until committed")
	assert.NotEqual(t, before.Quality, res.Business.Quality)
	assert.Equal(t, before.Quality, res.QualityFrom)
	assert.Equal(t, before.EBITDA, res.EBITDAFrom)
}

func TestResolveFatigueShiftsSuccessToPartial(t *testing.T) {
	e := newTestEngine()
	p := stabilizationProgram(t, e)

	// Roll 0.57 succeeds at three concurrent programs but only lands a
	// partial at four, when the 0.10 fatigue penalty pulls the success
	// threshold down to 0.55. Failure odds are untouched.
	fresh := testBusiness(1, 1_000)
	res := e.ResolveWithRoll(&p, fresh, 3, 0.57)
	assert.Equal(t, domain.TurnaroundSuccess, res.Outcome)
	assert.False(t, res.Fatigued)

	tired := testBusiness(1, 1_000)
	res = e.ResolveWithRoll(&p, tired, 4, 0.57)
	assert.Equal(t, domain.TurnaroundPartial, res.Outcome)
	assert.True(t, res.Fatigued)

	// The failure band starts at the same roll either way.
	failing := testBusiness(1, 1_000)
	res = e.ResolveWithRoll(&p, failing, 4, 0.91)
	assert.Equal(t, domain.TurnaroundFailure, res.Outcome)
}

func TestResolvePartialCapsAtTarget(t *testing.T) {
	e := newTestEngine()
	full, ok := e.Program("full_transformation") // quality 3 -> 5
	require.True(t, ok)

	b := testBusiness(3, 2_000)
	b.Sector, b.SubType = "business_software", "vertical_saas"
	res := e.ResolveWithRoll(&full, b, 0, 0.50) // partial band: 0.45..0.75
	require.Equal(t, domain.TurnaroundPartial, res.Outcome)
	assert.Equal(t, 4, res.Business.Quality, "partial lifts one tier, not to target")
}

func TestResolveMarginStaysConsistent(t *testing.T) {
	e := newTestEngine()
	p := stabilizationProgram(t, e)

	b := testBusiness(1, 1_000)
	res := e.ResolveWithRoll(&p, b, 0, 0.30)
	got := res.Business
	assert.InDelta(t, float64(got.EBITDA)/float64(got.Revenue), got.Margin, 1e-9)
}

func TestResolveExitPremium(t *testing.T) {
	e := newTestEngine()
	full, ok := e.Program("full_transformation")
	require.True(t, ok)

	b := testBusiness(3, 2_000)
	b.Sector, b.SubType = "business_software", "vertical_saas"
	res := e.ResolveWithRoll(&full, b, 0, 0.10)
	require.Equal(t, domain.TurnaroundSuccess, res.Outcome)
	assert.Equal(t, 5, res.Business.Quality)
	assert.True(t, res.ExitPremium, "two-tier lift over acquisition quality")

	// A one-tier lift does not qualify.
	e2 := newTestEngine()
	p := stabilizationProgram(t, e2)
	b2 := testBusiness(1, 1_000)
	res = e2.ResolveWithRoll(&p, b2, 0, 0.30)
	assert.False(t, res.ExitPremium)
}

func TestProgramsFor(t *testing.T) {
	e := newTestEngine()

	b := testBusiness(1, 1_000)
	programs := e.ProgramsFor(&b, 1)
	require.Len(t, programs, 1)
	assert.Equal(t, "operational_stabilization", programs[0].ID)

	// Quality 2 at tier 2 sees both the tier 1 and tier 2 entries.
	b.Quality = 2
	programs = e.ProgramsFor(&b, 2)
	require.Len(t, programs, 2)
	assert.Equal(t, "cost_restructuring", programs[0].ID)
	assert.Equal(t, "commercial_excellence", programs[1].ID)

	// Nothing unlocked, nothing offered.
	programs = e.ProgramsFor(&b, 0)
	assert.Empty(t, programs)
}
