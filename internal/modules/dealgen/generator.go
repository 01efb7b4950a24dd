// Package dealgen produces the acquisition pipeline: sector-parameterized
// candidate businesses, pricing with seller psychology and competitive heat,
// and round-to-round pipeline maintenance.
package dealgen

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/catalog"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/affordability"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/dealheat"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// Options carries the per-round generation settings supplied by the
// round orchestrator.
type Options struct {
	Round           int
	GameLength      int
	FocusSector     string
	SourcingTier    int // 0-3 M&A sourcing capability
	SizePreference  domain.SizePreference
	PortfolioSize   int
	Cash            int64
	Affordability   affordability.Result
	CreditTightened bool
	LastMacroEvent  dealheat.MacroEvent
}

// Generator produces priced acquisition candidates
type Generator struct {
	cfg     *config.Tunables
	catalog catalog.Catalog
	afford  *affordability.Model
	heat    *dealheat.Engine
	log     zerolog.Logger
}

// NewGenerator creates a deal generator wired to its collaborators
func NewGenerator(cfg *config.Tunables, cat catalog.Catalog, afford *affordability.Model, heat *dealheat.Engine, log zerolog.Logger) *Generator {
	return &Generator{
		cfg:     cfg,
		catalog: cat,
		afford:  afford,
		heat:    heat,
		log:     log.With().Str("module", "dealgen").Logger(),
	}
}

// tierEBITDARange maps a value tier to its natural EBITDA band ($K).
// Trophy sizing is affordability-scaled and handled separately.
var tierEBITDARange = map[domain.ValueTier]catalog.MoneyRange{
	domain.TierMicro:    {Min: 150, Max: 500},
	domain.TierSmall:    {Min: 400, Max: 1_200},
	domain.TierLowerMid: {Min: 1_000, Max: 2_500},
	domain.TierMid:      {Min: 2_000, Max: 6_000},
	domain.TierUpperMid: {Min: 5_000, Max: 12_000},
	domain.TierLarge:    {Min: 10_000, Max: 25_000},
}

// GenerateBusiness creates a candidate business for a sector. Quality comes
// from the weighted quality-tier draw; revenue, margin and growth are drawn
// from the sector's ranges with sub-type modifiers applied, then EBITDA is
// derived and all invariants enforced.
func (g *Generator) GenerateBusiness(sectorID string, round int, ctx *sim.Context) (domain.Business, error) {
	sector, ok := g.catalog.Sector(sectorID)
	if !ok {
		return domain.Business{}, fmt.Errorf("unknown sector: %s", sectorID)
	}

	quality := g.drawQuality(ctx)
	subType := sector.SubTypes[ctx.IntN(len(sector.SubTypes))]
	mods := sector.Modifiers(subType)

	revenue := ctx.RangeInt64(sector.RevenueRange.Min, sector.RevenueRange.Max)
	// Quality tilts margin and growth within the sector band.
	qualityTilt := float64(quality-3) / 4.0
	margin := ctx.Range(sector.MarginRange.Min, sector.MarginRange.Max) +
		mods.MarginShift + qualityTilt*0.02
	growth := ctx.Range(sector.GrowthRange.Min, sector.GrowthRange.Max) +
		mods.GrowthShift + qualityTilt*0.02

	b := domain.Business{
		ID:            ctx.NextID(),
		Name:          fmt.Sprintf("%s-%03d", subType, ctx.IntN(900)+100),
		Sector:        sector.ID,
		SubType:       subType,
		Revenue:       revenue,
		Margin:        margin,
		OrganicGrowth: growth,
		Quality:       quality,
		Status:        domain.StatusActive,
	}
	b.EBITDA = formulas.RoundMoney(float64(revenue) * b.Margin)
	b.PeakEBITDA = b.EBITDA
	b.EnforceInvariants()
	return b, nil
}

func (g *Generator) drawQuality(ctx *sim.Context) int {
	weights := make([]float64, len(g.cfg.Deals.QualityWeights))
	copy(weights, g.cfg.Deals.QualityWeights)
	formulas.NormalizeWeights(weights)
	return formulas.WeightedIndex(weights, ctx.Float64()) + 1
}

// GenerateDeal produces a fully priced acquisition candidate for the given
// sector, applying size preference, seller psychology, the size-tier
// premium curve and competitive heat.
func (g *Generator) GenerateDeal(sectorID string, opts Options, ctx *sim.Context) (domain.Deal, error) {
	business, err := g.GenerateBusiness(sectorID, opts.Round, ctx)
	if err != nil {
		return domain.Deal{}, err
	}
	sector, _ := g.catalog.Sector(sectorID)

	g.applySizing(&business, sector, opts, ctx)

	channel := g.drawChannel(opts.SourcingTier, ctx)
	archetype := drawArchetype(ctx)
	acqType := g.acquisitionType(business.EBITDA, ctx)

	deal := g.price(business, sector, channel, archetype, acqType, opts, ctx)
	deal.Round = opts.Round
	deal.Freshness = g.cfg.Deals.InitialFreshness

	g.log.Debug().
		Int64("deal_id", deal.ID).
		Str("sector", sectorID).
		Str("sub_type", business.SubType).
		Int64("ebitda", business.EBITDA).
		Int64("asking", deal.AskingPrice).
		Int64("effective", deal.EffectivePrice).
		Stringer("heat", deal.Heat).
		Msg("Generated deal")

	return deal, nil
}

// applySizing overrides the natural EBITDA when a size preference or an
// affordability-picked tier targets a specific band, re-deriving revenue so
// margin stays consistent.
func (g *Generator) applySizing(b *domain.Business, sector catalog.Sector, opts Options, ctx *sim.Context) {
	var target catalog.MoneyRange
	switch opts.SizePreference {
	case domain.SizeSmall:
		target = tierEBITDARange[domain.TierMicro]
		target.Max = tierEBITDARange[domain.TierSmall].Max
	case domain.SizeMedium:
		target = tierEBITDARange[domain.TierLowerMid]
		target.Max = tierEBITDARange[domain.TierMid].Max
	case domain.SizeLarge:
		target = tierEBITDARange[domain.TierUpperMid]
		// Larger portfolios attract larger sellers.
		scale := 1 + 0.05*float64(opts.PortfolioSize)
		target.Max = formulas.RoundMoney(math.Min(float64(tierEBITDARange[domain.TierLarge].Max)*scale,
			float64(tierEBITDARange[domain.TierLarge].Max)*2))
	default:
		if opts.Affordability.Total <= 0 {
			return // keep natural sizing
		}
		weights := g.afford.Weights(opts.Affordability.Total, opts.Cash)
		tier := g.afford.PickTier(weights, ctx.Float64())
		if tier == domain.TierTrophy {
			ebitda := g.afford.TrophyEBITDA(opts.Affordability.Total, ctx)
			g.retarget(b, ebitda)
			return
		}
		target = tierEBITDARange[tier]
	}

	g.retarget(b, ctx.RangeInt64(target.Min, target.Max))
}

func (g *Generator) retarget(b *domain.Business, ebitda int64) {
	if ebitda <= 0 || b.Margin <= 0 {
		return
	}
	b.EBITDA = ebitda
	b.PeakEBITDA = ebitda
	b.Revenue = formulas.RoundMoney(float64(ebitda) / b.Margin)
	b.EnforceInvariants()
}

// acquisitionType classifies the deal by EBITDA size: small businesses are
// tuck-ins, the mid band splits standalone/platform by weight, large
// businesses lean platform.
func (g *Generator) acquisitionType(ebitda int64, ctx *sim.Context) domain.AcquisitionType {
	d := &g.cfg.Deals
	switch {
	case ebitda < d.TuckInMaxEBITDA:
		return domain.AcquisitionTuckIn
	case ebitda < d.PlatformMinEBITDA:
		if ctx.Float64() < d.MidPlatformWeight {
			return domain.AcquisitionPlatform
		}
		return domain.AcquisitionStandalone
	default:
		if ctx.Float64() < d.BigPlatformWeight {
			return domain.AcquisitionPlatform
		}
		return domain.AcquisitionStandalone
	}
}

// drawChannel picks the sourcing channel. Higher sourcing capability shifts
// volume toward self-sourced and proprietary deal flow.
func (g *Generator) drawChannel(sourcingTier int, ctx *sim.Context) domain.SourcingChannel {
	weights := []float64{35, 35, 20, 10} // inbound, brokered, sourced, proprietary
	weights[2] += float64(sourcingTier) * 5
	weights[3] += float64(sourcingTier) * 5
	formulas.NormalizeWeights(weights)
	switch formulas.WeightedIndex(weights, ctx.Float64()) {
	case 0:
		return domain.ChannelInbound
	case 1:
		return domain.ChannelBrokered
	case 2:
		return domain.ChannelSourced
	}
	return domain.ChannelProprietary
}

// SizePremium evaluates the size-tier premium curve: the acquisition
// multiple uplift larger businesses command. Monotonic and smooth across
// tier boundaries, capped at the top of the curve.
func (g *Generator) SizePremium(ebitda int64) float64 {
	d := &g.cfg.Deals
	return formulas.InterpolateCurve(d.SizePremiumEBITDA, d.SizePremiumValues, float64(ebitda))
}

// price turns a candidate business into a priced deal. Discounts do not
// stack: the largest of tuck-in, proprietary and archetype discount wins,
// then any archetype premium applies on top, then heat. Distressed sellers
// cap the implied multiple at the sector midpoint (near the floor for low
// quality) and the cap is re-applied after heat so heat can never push a
// distressed deal above it.
func (g *Generator) price(
	b domain.Business,
	sector catalog.Sector,
	channel domain.SourcingChannel,
	archetype archetypeProfile,
	acqType domain.AcquisitionType,
	opts Options,
	ctx *sim.Context,
) domain.Deal {
	mods := sector.Modifiers(b.SubType)
	multiple := ctx.Range(sector.MultipleRange.Min, sector.MultipleRange.Max) +
		mods.MultipleShift +
		float64(b.Quality-3)*0.25 +
		g.SizePremium(b.EBITDA)

	discount := 0.0
	if acqType == domain.AcquisitionTuckIn {
		// Tuck-in discount runs inverse to quality: weaker businesses
		// folded into a larger one concede more.
		d := &g.cfg.Deals
		discount = d.TuckInDiscount.Min +
			(d.TuckInDiscount.Max-d.TuckInDiscount.Min)*(1-float64(b.Quality-1)/4.0)
	}
	if channel == domain.ChannelProprietary && g.cfg.Deals.ProprietaryDiscount > discount {
		discount = g.cfg.Deals.ProprietaryDiscount
	}
	if archetype.Discount > discount {
		discount = archetype.Discount
	}

	multiple *= (1 - discount) * (1 + archetype.Premium)

	capMultiple := math.Inf(1)
	if archetype.MultipleCap {
		capMultiple = sector.MultipleMidpoint()
		if b.Quality <= 2 {
			capMultiple = sector.MultipleRange.Min * 1.1
		}
		multiple = math.Min(multiple, capMultiple)
	}

	asking := formulas.RoundMoney(float64(b.EBITDA) * multiple)

	heat := g.heat.Draw(dealheat.Input{
		Quality:         b.Quality,
		Channel:         channel,
		Archetype:       archetype.Archetype,
		Round:           opts.Round,
		GameLength:      opts.GameLength,
		LastMacroEvent:  opts.LastMacroEvent,
		CreditTightened: opts.CreditTightened,
		SourcingTier:    opts.SourcingTier,
	}, ctx)

	effective := formulas.RoundMoney(float64(asking) * heat.Premium)
	if archetype.MultipleCap && b.EBITDA > 0 {
		capped := formulas.RoundMoney(float64(b.EBITDA) * capMultiple)
		if effective > capped {
			effective = capped
		}
	}

	return domain.Deal{
		ID:              ctx.NextID(),
		Business:        b,
		AskingPrice:     asking,
		EffectivePrice:  effective,
		ListedMultiple:  multiple,
		Channel:         channel,
		AcquisitionType: acqType,
		Archetype:       archetype.Archetype,
		Operator:        archetype.operatorQuality(),
		Heat:            heat.Level,
		HeatPremium:     heat.Premium,
		Discount:        discount,
		OffMarket:       channel == domain.ChannelProprietary && opts.SourcingTier >= 3,
	}
}
