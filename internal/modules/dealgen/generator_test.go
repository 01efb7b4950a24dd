package dealgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/catalog"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/affordability"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/dealheat"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/logger"
)

func newTestGenerator() *Generator {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	tun := config.DefaultTunables()
	cat := catalog.Default()
	afford := affordability.NewModel(tun, log)
	heat := dealheat.NewEngine(tun, log)
	return NewGenerator(tun, cat, afford, heat, log)
}

func TestSizePremium(t *testing.T) {
	g := newTestGenerator()

	assert.InDelta(t, 0.5, g.SizePremium(2_000), 1e-9)
	assert.InDelta(t, 3.5, g.SizePremium(30_000), 1e-9)

	// Capped: a 50M EBITDA business commands the same premium as 30M.
	assert.InDelta(t, g.SizePremium(30_000), g.SizePremium(50_000), 1e-9)

	// Monotonic over the whole scale.
	prev := -1.0
	for _, ebitda := range []int64{0, 150, 500, 1_000, 2_500, 5_000, 8_000, 12_000, 20_000, 25_000, 30_000, 40_000} {
		p := g.SizePremium(ebitda)
		assert.GreaterOrEqual(t, p, prev, "premium dropped at ebitda=%d", ebitda)
		prev = p
	}
}

func TestGenerateBusinessInvariants(t *testing.T) {
	g := newTestGenerator()
	ctx := sim.NewContext(21)

	for _, sectorID := range g.catalog.SectorIDs() {
		for i := 0; i < 100; i++ {
			b, err := g.GenerateBusiness(sectorID, 1, ctx)
			require.NoError(t, err)

			assert.Equal(t, sectorID, b.Sector)
			assert.GreaterOrEqual(t, b.Quality, domain.MinQuality)
			assert.LessOrEqual(t, b.Quality, domain.MaxQuality)
			assert.GreaterOrEqual(t, b.Margin, domain.MinMargin)
			assert.LessOrEqual(t, b.Margin, domain.MaxMargin)
			assert.GreaterOrEqual(t, b.OrganicGrowth, domain.MinOrganicGrowth)
			assert.LessOrEqual(t, b.OrganicGrowth, domain.MaxOrganicGrowth)
			assert.Greater(t, b.Revenue, int64(0))
			assert.Greater(t, b.EBITDA, int64(0))

			sector, _ := g.catalog.Sector(sectorID)
			assert.True(t, sector.HasSubType(b.SubType))
			assert.Equal(t, domain.StatusActive, b.Status)
		}
	}
}

func TestGenerateBusinessUnknownSector(t *testing.T) {
	g := newTestGenerator()
	ctx := sim.NewContext(1)

	_, err := g.GenerateBusiness("no_such_sector", 1, ctx)
	assert.Error(t, err)
}

func TestGenerateDealPricing(t *testing.T) {
	g := newTestGenerator()
	ctx := sim.NewContext(33)
	opts := Options{Round: 3, GameLength: 40, Cash: 2_000, Affordability: affordability.Result{Total: 8_000}}

	for i := 0; i < 300; i++ {
		deal, err := g.GenerateDeal("home_services", opts, ctx)
		require.NoError(t, err)

		assert.Greater(t, deal.AskingPrice, int64(0))
		assert.Greater(t, deal.EffectivePrice, int64(0))
		assert.Greater(t, deal.ListedMultiple, 0.0)
		assert.Equal(t, 3, deal.Round)
		assert.Equal(t, g.cfg.Deals.InitialFreshness, deal.Freshness)

		// Cold deals close at asking; heat only ever pushes price up,
		// except the distressed cap which can pull it back down.
		if deal.Heat == domain.HeatCold && deal.Archetype != domain.SellerDistressed {
			assert.Equal(t, deal.AskingPrice, deal.EffectivePrice)
		}
	}
}

func TestDistressedMultipleCap(t *testing.T) {
	g := newTestGenerator()
	ctx := sim.NewContext(55)
	opts := Options{Round: 1, GameLength: 40}
	sector, _ := g.catalog.Sector("home_services")

	// A distressed seller's effective price never exceeds the sector
	// midpoint multiple, no matter how hot the deal ran.
	for i := 0; i < 2_000; i++ {
		deal, err := g.GenerateDeal("home_services", opts, ctx)
		require.NoError(t, err)
		if deal.Archetype != domain.SellerDistressed {
			continue
		}
		capMultiple := sector.MultipleMidpoint()
		if deal.Business.Quality <= 2 {
			capMultiple = sector.MultipleRange.Min * 1.1
		}
		implied := float64(deal.EffectivePrice) / float64(deal.Business.EBITDA)
		assert.LessOrEqual(t, implied, capMultiple+0.01,
			"distressed deal priced above cap: quality=%d", deal.Business.Quality)
	}
}

func TestAcquisitionTypeBySize(t *testing.T) {
	g := newTestGenerator()
	ctx := sim.NewContext(2)

	assert.Equal(t, domain.AcquisitionTuckIn, g.acquisitionType(800, ctx))

	// Mid and large bands split probabilistically but never tuck-in.
	for i := 0; i < 100; i++ {
		at := g.acquisitionType(3_000, ctx)
		assert.NotEqual(t, domain.AcquisitionTuckIn, at)
		at = g.acquisitionType(20_000, ctx)
		assert.NotEqual(t, domain.AcquisitionTuckIn, at)
	}
}

func TestDrawChannelShiftsWithSourcingTier(t *testing.T) {
	g := newTestGenerator()

	count := func(tier int, seed int64) int {
		ctx := sim.NewContext(seed)
		n := 0
		for i := 0; i < 2_000; i++ {
			ch := g.drawChannel(tier, ctx)
			if ch == domain.ChannelSourced || ch == domain.ChannelProprietary {
				n++
			}
		}
		return n
	}

	// Higher sourcing capability materially shifts flow toward sourced
	// and proprietary channels.
	assert.Greater(t, count(3, 9), count(0, 9)+100)
}

func TestProfileFor(t *testing.T) {
	p := profileFor(domain.SellerDistressed)
	assert.True(t, p.MultipleCap)
	assert.Equal(t, 0.20, p.Discount)

	// Unknown archetypes fall back to a neutral profile.
	p = profileFor(domain.SellerArchetype("alien"))
	assert.Equal(t, domain.SellerSuccession, p.Archetype)
	assert.Zero(t, p.Discount)
}

func TestOperatorQualityFor(t *testing.T) {
	cases := map[domain.SellerArchetype]domain.OperatorQuality{
		domain.SellerRetiring:      domain.OperatorNeutral,
		domain.SellerSuccession:    domain.OperatorStrong,
		domain.SellerDistressed:    domain.OperatorWeak,
		domain.SellerBurnout:       domain.OperatorWeak,
		domain.SellerOpportunistic: domain.OperatorNeutral,
		domain.SellerInstitutional: domain.OperatorStrong,
	}
	for archetype, want := range cases {
		assert.Equal(t, want, OperatorQualityFor(archetype), "archetype %s", archetype)
	}
	assert.Equal(t, domain.OperatorNeutral, OperatorQualityFor(domain.SellerArchetype("alien")))
}

func TestGeneratedDealsCarryOperatorQuality(t *testing.T) {
	g := newTestGenerator()
	ctx := sim.NewContext(21)
	opts := Options{Round: 1, GameLength: 40}

	seen := map[domain.OperatorQuality]int{}
	for i := 0; i < 300; i++ {
		deal, err := g.GenerateDeal("home_services", opts, ctx)
		require.NoError(t, err)
		assert.Equal(t, OperatorQualityFor(deal.Archetype), deal.Operator)
		seen[deal.Operator]++
	}

	// The archetype table spans all three operator classes, so a large
	// draw produces each of them.
	assert.Positive(t, seen[domain.OperatorNeutral])
	assert.Positive(t, seen[domain.OperatorStrong])
	assert.Positive(t, seen[domain.OperatorWeak])
}
