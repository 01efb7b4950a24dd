package main

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/affordability"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/dealgen"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/integration"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/platform"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/modules/turnaround"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// Fraction of portfolio EBITDA converted to cash each round, and the
// equity share of each purchase price paid up front.
const (
	cashConversion = 0.45
	equityFraction = 0.40
)

// world holds the mutable simulation state the demo strategy plays over
type world struct {
	cfg      *config.Config
	tunables *config.Tunables
	log      zerolog.Logger

	cash       int64
	businesses map[int64]*domain.Business
	order      []int64 // acquisition order, for deterministic iteration

	pipeline     []domain.Deal
	platforms    []domain.IntegratedPlatform
	turnarounds  []domain.ActiveTurnaround
	unlockedTier int

	acquired int
	forged   int
}

func newWorld(cfg *config.Config, tunables *config.Tunables, log zerolog.Logger) *world {
	return &world{
		cfg:        cfg,
		tunables:   tunables,
		log:        log.With().Str("module", "world").Logger(),
		cash:       1_000, // $1M starting cash
		businesses: make(map[int64]*domain.Business),
	}
}

func (w *world) active() []domain.Business {
	out := make([]domain.Business, 0, len(w.order))
	for _, id := range w.order {
		if b := w.businesses[id]; b.IsActive() {
			out = append(out, *b)
		}
	}
	return out
}

func (w *world) runningTurnarounds() int {
	n := 0
	for i := range w.turnarounds {
		if w.turnarounds[i].Running() {
			n++
		}
	}
	return n
}

// playRound advances the simulation one round with a simple greedy
// strategy: collect cash, refresh the pipeline, buy the best affordable
// deal, integrate tuck-ins, forge eligible platforms and rehabilitate the
// weakest business.
func (w *world) playRound(
	round int,
	gen *dealgen.Generator,
	afford *affordability.Model,
	resolver *integration.Resolver,
	platforms *platform.Manager,
	turnarounds *turnaround.Engine,
	ctx *sim.Context,
) {
	w.collectCash(turnarounds)

	power := afford.Compute(w.cash, affordability.CreditConditions{}, affordability.MarketState{}, ctx)

	opts := dealgen.Options{
		Round:         round,
		GameLength:    w.cfg.GameLength,
		SourcingTier:  w.unlockedTier,
		PortfolioSize: len(w.active()),
		Cash:          w.cash,
		Affordability: power,
	}
	w.pipeline = gen.MaintainPipeline(w.pipeline, opts, ctx)

	w.buyBestDeal(round, power, resolver, ctx)
	w.resolveTurnarounds(round, turnarounds, ctx)
	w.startTurnaround(round, turnarounds)
	w.forgePlatforms(round, platforms, ctx)

	w.log.Info().
		Int("round", round).
		Int64("cash", w.cash).
		Int("portfolio", len(w.active())).
		Int("pipeline", len(w.pipeline)).
		Int("platforms", len(w.platforms)).
		Msg("round complete")
}

func (w *world) collectCash(turnarounds *turnaround.Engine) {
	for _, id := range w.order {
		b := w.businesses[id]
		if !b.IsActive() {
			continue
		}
		w.cash += formulas.RoundMoney(float64(b.EBITDA) * cashConversion)
	}
	for i := range w.turnarounds {
		if !w.turnarounds[i].Running() {
			continue
		}
		if p, ok := turnarounds.Program(w.turnarounds[i].ProgramID); ok {
			w.cash -= p.AnnualCost
		}
	}
}

// buyBestDeal picks the highest-quality deal whose equity check fits the
// cash balance and whose full price fits stretched affordability.
func (w *world) buyBestDeal(round int, power affordability.Result, resolver *integration.Resolver, ctx *sim.Context) {
	best := -1
	for i := range w.pipeline {
		d := &w.pipeline[i]
		equity := formulas.RoundMoney(float64(d.EffectivePrice) * equityFraction)
		if d.EffectivePrice > power.Total || equity > w.cash {
			continue
		}
		if best < 0 || d.Business.Quality > w.pipeline[best].Business.Quality {
			best = i
		}
	}
	if best < 0 {
		return
	}

	deal := w.pipeline[best]
	w.pipeline = append(w.pipeline[:best], w.pipeline[best+1:]...)

	equity := formulas.RoundMoney(float64(deal.EffectivePrice) * equityFraction)
	b := deal.Business
	b.ID = ctx.NextID()
	b.AcquisitionPrice = deal.EffectivePrice
	b.AcquisitionMultiple = deal.ListedMultiple
	b.AcquisitionRound = round
	b.EBITDAAtAcquisition = b.EBITDA
	b.QualityAtAcquisition = b.Quality
	b.PeakEBITDA = b.EBITDA
	b.SellerNote = deal.EffectivePrice - equity
	b.Status = domain.StatusActive

	w.cash -= equity
	w.businesses[b.ID] = &b
	w.order = append(w.order, b.ID)
	w.acquired++

	w.log.Info().
		Int64("business_id", b.ID).
		Str("sector", b.Sector).
		Int("quality", b.Quality).
		Int64("price", deal.EffectivePrice).
		Str("heat", deal.Heat.String()).
		Msg("acquired business")

	if deal.AcquisitionType == domain.AcquisitionTuckIn {
		w.tuckIn(&b, deal.Operator, resolver, ctx)
	}
}

// tuckIn absorbs a small acquisition into the largest active business in
// the same sector, when one exists. The seller archetype's apparent
// operator quality carries into the integration attempt.
func (w *world) tuckIn(b *domain.Business, operator domain.OperatorQuality, resolver *integration.Resolver, ctx *sim.Context) {
	var host *domain.Business
	for _, id := range w.order {
		c := w.businesses[id]
		if !c.IsActive() || c.ID == b.ID || c.Sector != b.Sector {
			continue
		}
		if host == nil || c.EBITDA > host.EBITDA {
			host = c
		}
	}
	if host == nil {
		return
	}

	res := resolver.Resolve(integration.Input{Acquired: *b, Platform: host, Operator: operator}, ctx)
	if res.Outcome == domain.IntegrationFailure {
		host.OrganicGrowth -= res.Drag.PerRound
		host.EnforceInvariants()
		return
	}

	host.EBITDA += b.EBITDA + res.Synergy
	host.Revenue += b.Revenue
	if host.Revenue > 0 {
		host.Margin = float64(host.EBITDA) / float64(host.Revenue)
	}
	host.BoltOnIDs = append(host.BoltOnIDs, b.ID)
	host.PlatformScale++
	host.EnforceInvariants()
	b.Status = domain.StatusIntegrated

	w.log.Info().
		Int64("business_id", b.ID).
		Int64("host_id", host.ID).
		Str("outcome", string(res.Outcome)).
		Int64("synergy", res.Synergy).
		Msg("tuck-in resolved")
}

func (w *world) resolveTurnarounds(round int, engine *turnaround.Engine, ctx *sim.Context) {
	running := w.runningTurnarounds()
	for i := range w.turnarounds {
		t := &w.turnarounds[i]
		if !t.Running() || t.EndRound > round {
			continue
		}
		p, ok := engine.Program(t.ProgramID)
		if !ok {
			t.Status = domain.TurnaroundFailed
			continue
		}
		b := w.businesses[t.BusinessID]
		res := engine.Resolve(&p, *b, running, ctx)
		*b = res.Business
		if res.Outcome == domain.TurnaroundFailure {
			t.Status = domain.TurnaroundFailed
		} else {
			t.Status = domain.TurnaroundCompleted
		}
	}
}

func (w *world) startTurnaround(round int, engine *turnaround.Engine) {
	actives := w.active()
	if turnaround.TierUnlockable(w.unlockedTier+1, w.unlockedTier, len(actives), w.cash) {
		for _, req := range turnaround.TierRequirements() {
			if req.Tier == w.unlockedTier+1 {
				w.cash -= req.UnlockCost
				w.unlockedTier = req.Tier
				w.log.Info().Int("tier", req.Tier).Msg("turnaround tier unlocked")
			}
		}
	}
	if w.unlockedTier == 0 || w.runningTurnarounds() >= w.tunables.Turnarounds.FatigueThreshold {
		return
	}

	// Weakest active business first
	sort.Slice(actives, func(i, j int) bool { return actives[i].Quality < actives[j].Quality })
	for i := range actives {
		b := w.businesses[actives[i].ID]
		for _, p := range engine.ProgramsFor(b, w.unlockedTier) {
			if engine.CanStart(&p, b, w.unlockedTier, w.cash, w.turnarounds) != nil {
				continue
			}
			w.cash -= engine.CalculateCost(&p, b)
			w.turnarounds = append(w.turnarounds, engine.Start(&p, b, round, false))
			return
		}
	}
}

func (w *world) forgePlatforms(round int, manager *platform.Manager, ctx *sim.Context) {
	// Dissolve platforms that lost their diversity
	kept := w.platforms[:0]
	for i := range w.platforms {
		if manager.ShouldDissolve(&w.platforms[i], w.businesses) {
			for _, id := range w.platforms[i].BusinessIDs {
				if b, ok := w.businesses[id]; ok {
					b.IntegratedPlatformID = ""
				}
			}
			w.log.Info().Str("platform_id", w.platforms[i].ID).Msg("platform dissolved")
			continue
		}
		kept = append(kept, w.platforms[i])
	}
	w.platforms = kept

	for _, elig := range manager.EvaluateAll(w.active()) {
		if !elig.Eligible {
			continue
		}
		recipe, _ := manager.Recipe(elig.RecipeID)
		forming := make([]domain.Business, 0, len(elig.FormingIDs))
		for _, id := range elig.FormingIDs {
			forming = append(forming, *w.businesses[id])
		}
		cost := manager.ForgeCost(recipe, forming)
		if cost > w.cash {
			continue
		}
		w.cash -= cost
		p := manager.Forge(recipe, forming, round, ctx)
		for _, id := range p.BusinessIDs {
			w.businesses[id].IntegratedPlatformID = p.ID
		}
		w.platforms = append(w.platforms, p)
		w.forged++
		w.log.Info().
			Str("platform_id", p.ID).
			Str("recipe", recipe.ID).
			Int64("cost", cost).
			Msg("platform forged")
		return // at most one forge per round
	}
}

func (w *world) logSummary(runID string) {
	var ebitda int64
	for _, b := range w.active() {
		ebitda += b.EBITDA
	}
	w.log.Info().
		Str("run_id", runID).
		Int64("cash", w.cash).
		Int("acquired", w.acquired).
		Int("active", len(w.active())).
		Int64("portfolio_ebitda", ebitda).
		Int("platforms_forged", w.forged).
		Msg("simulation summary")
}
