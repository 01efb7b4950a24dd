package dealgen

import (
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// MaintainPipeline ages the existing pipeline by one freshness tick,
// drops expired deals and refills from the weighted sources until the
// pipeline reaches its per-round target within the [min, max] band:
//
//  1. focus-sector bonus deals, when a focus sector is set
//  2. sourcing-tier bonus deals (quality floors at tier 2+, proprietary
//     off-market flow at tier 3)
//  3. sector-diversity fill toward under-represented sectors
//  4. weighted-random fill across the whole catalog
//
// The result never exceeds the maximum pipeline size and never ends below
// the guaranteed minimum.
func (g *Generator) MaintainPipeline(pipeline []domain.Deal, opts Options, ctx *sim.Context) []domain.Deal {
	d := &g.cfg.Deals

	aged := make([]domain.Deal, 0, len(pipeline))
	expired := 0
	for _, deal := range pipeline {
		deal.Freshness--
		if deal.Expired() {
			expired++
			continue
		}
		aged = append(aged, deal)
	}

	target := d.PipelineMin + ctx.IntN(d.PipelineMax-d.PipelineMin+1)
	if target > d.PipelineMax {
		target = d.PipelineMax
	}

	// Source 1: focus-sector bonus.
	if opts.FocusSector != "" && len(aged) < target {
		if deal, err := g.GenerateDeal(opts.FocusSector, opts, ctx); err == nil {
			aged = append(aged, deal)
		}
	}

	// Source 2: sourcing-tier bonus deals with tier-gated extras.
	for i := 0; i < opts.SourcingTier && len(aged) < target; i++ {
		deal, err := g.GenerateDeal(g.randomSector(ctx), opts, ctx)
		if err != nil {
			continue
		}
		if opts.SourcingTier >= 2 && deal.Business.Quality < 3 {
			continue // tier 2+ screens out weak targets
		}
		if opts.SourcingTier >= 3 {
			deal.Channel = domain.ChannelProprietary
			deal.OffMarket = true
		}
		aged = append(aged, deal)
	}

	// Source 3: sector-diversity fill.
	if len(aged) < target {
		if sector := g.underRepresentedSector(aged); sector != "" {
			if deal, err := g.GenerateDeal(sector, opts, ctx); err == nil {
				aged = append(aged, deal)
			}
		}
	}

	// Source 4: weighted-random fill until the target is met.
	for len(aged) < target {
		deal, err := g.GenerateDeal(g.randomSector(ctx), opts, ctx)
		if err != nil {
			break
		}
		aged = append(aged, deal)
	}

	if len(aged) > d.PipelineMax {
		aged = aged[:d.PipelineMax]
	}

	g.log.Info().
		Int("round", opts.Round).
		Int("expired", expired).
		Int("pipeline", len(aged)).
		Msg("Maintained deal pipeline")

	return aged
}

func (g *Generator) randomSector(ctx *sim.Context) string {
	ids := g.catalog.SectorIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[ctx.IntN(len(ids))]
}

// underRepresentedSector returns the catalog sector with the fewest deals
// in the pipeline, or "" when the catalog is empty.
func (g *Generator) underRepresentedSector(pipeline []domain.Deal) string {
	counts := make(map[string]int)
	for _, deal := range pipeline {
		counts[deal.Business.Sector]++
	}
	best := ""
	bestCount := int(^uint(0) >> 1)
	for _, id := range g.catalog.SectorIDs() {
		if counts[id] < bestCount {
			best = id
			bestCount = counts[id]
		}
	}
	return best
}

// GenerateRecessionBatch produces discounted deals from distressed sellers
// during a simulated recession: quality capped, asking and effective prices
// cut by a 15-25% band.
func (g *Generator) GenerateRecessionBatch(count int, opts Options, ctx *sim.Context) []domain.Deal {
	return g.distressedBatch(count, g.cfg.Deals.RecessionDiscount.Min, g.cfg.Deals.RecessionDiscount.Max, opts, ctx)
}

// GenerateCrisisBatch produces deeply discounted deals during a financial
// crisis: quality capped, prices cut by a 30-50% band.
func (g *Generator) GenerateCrisisBatch(count int, opts Options, ctx *sim.Context) []domain.Deal {
	return g.distressedBatch(count, g.cfg.Deals.CrisisDiscount.Min, g.cfg.Deals.CrisisDiscount.Max, opts, ctx)
}

func (g *Generator) distressedBatch(count int, discountMin, discountMax float64, opts Options, ctx *sim.Context) []domain.Deal {
	out := make([]domain.Deal, 0, count)
	for i := 0; i < count; i++ {
		deal, err := g.GenerateDeal(g.randomSector(ctx), opts, ctx)
		if err != nil {
			continue
		}
		if deal.Business.Quality > g.cfg.Deals.DistressedQualityCap {
			deal.Business.Quality = g.cfg.Deals.DistressedQualityCap
			deal.Business.EnforceInvariants()
		}
		discount := ctx.Range(discountMin, discountMax)
		deal.AskingPrice = formulas.RoundMoney(float64(deal.AskingPrice) * (1 - discount))
		deal.EffectivePrice = formulas.RoundMoney(float64(deal.EffectivePrice) * (1 - discount))
		deal.Archetype = domain.SellerDistressed
		deal.Operator = OperatorQualityFor(domain.SellerDistressed)
		deal.Distressed = true
		deal.Discount = discount
		out = append(out, deal)
	}
	return out
}
