// Package dealheat computes the competitive intensity of a deal and the
// price premium it commands over asking price.
package dealheat

import (
	"github.com/rs/zerolog"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// MacroEvent is the last macro event observed by the round orchestrator
type MacroEvent string

const (
	MacroNone       MacroEvent = ""
	MacroBullMarket MacroEvent = "bull_market"
	MacroRecession  MacroEvent = "recession"
	MacroCrisis     MacroEvent = "financial_crisis"
)

// Input carries everything the heat draw depends on
type Input struct {
	Quality         int
	Channel         domain.SourcingChannel
	Archetype       domain.SellerArchetype
	Round           int
	GameLength      int
	LastMacroEvent  MacroEvent
	CreditTightened bool
	SourcingTier    int // M&A sourcing capability 0-3
}

// Result is the drawn heat level and its price premium multiplier
type Result struct {
	Level   domain.HeatLevel `json:"level"`
	Premium float64          `json:"premium"`
}

// Engine draws heat levels and premiums
type Engine struct {
	cfg *config.HeatTunables
	log zerolog.Logger
}

// NewEngine creates a deal heat engine
func NewEngine(cfg *config.Tunables, log zerolog.Logger) *Engine {
	return &Engine{
		cfg: &cfg.Heat,
		log: log.With().Str("module", "dealheat").Logger(),
	}
}

// archetypeHeatShift is the fixed tier shift contributed by each seller
// archetype. Motivated sellers suppress competition, opportunistic and
// institutional sellers run processes that attract it.
func archetypeHeatShift(a domain.SellerArchetype) int {
	switch a {
	case domain.SellerRetiring:
		return -1
	case domain.SellerSuccession:
		return 0
	case domain.SellerDistressed:
		return -1
	case domain.SellerBurnout:
		return -1
	case domain.SellerOpportunistic:
		return 1
	case domain.SellerInstitutional:
		return 2
	}
	return 0
}

// channelHeatShift returns the shift for a sourcing channel. Proprietary
// and self-sourced deals see less competition, compounded by sourcing
// capability.
func channelHeatShift(channel domain.SourcingChannel, sourcingTier int) int {
	switch channel {
	case domain.ChannelProprietary:
		return -1 - sourcingTier/2
	case domain.ChannelSourced:
		if sourcingTier >= 2 {
			return -2
		}
		return -1
	case domain.ChannelBrokered:
		return 1
	}
	return 0
}

// Draw computes the heat level for a deal: a base tier from the fixed
// cumulative distribution, then integer shifts for quality, macro state,
// credit, the late-game window, channel and archetype. Negative shifts are
// summed and capped before the final clamp to [cold, contested].
func (e *Engine) Draw(in Input, ctx *sim.Context) Result {
	base := e.baseTier(ctx.Float64())

	positive, negative := 0, 0
	apply := func(shift int) {
		if shift > 0 {
			positive += shift
		} else {
			negative += shift
		}
	}

	if in.Quality >= 4 {
		apply(1)
	}
	if in.Quality <= 2 {
		apply(-1)
	}
	switch in.LastMacroEvent {
	case MacroBullMarket:
		apply(1)
	case MacroRecession, MacroCrisis:
		apply(-1)
	}
	if in.CreditTightened {
		apply(-1)
	}
	if in.GameLength > 0 && float64(in.Round) >= float64(in.GameLength)*e.cfg.LateGameFraction {
		apply(1)
	}
	apply(channelHeatShift(in.Channel, in.SourcingTier))
	apply(archetypeHeatShift(in.Archetype))

	if negative < -e.cfg.MaxNegativeShift {
		negative = -e.cfg.MaxNegativeShift
	}

	tier := formulas.ClampInt(int(base)+positive+negative, int(domain.HeatCold), int(domain.HeatContested))
	level := domain.HeatLevel(tier)
	premium := e.premium(level, ctx)

	e.log.Debug().
		Stringer("level", level).
		Float64("premium", premium).
		Int("positive", positive).
		Int("negative", negative).
		Msg("Drew deal heat")

	return Result{Level: level, Premium: premium}
}

func (e *Engine) baseTier(roll float64) domain.HeatLevel {
	for i, ceiling := range e.cfg.BaseCumulative {
		if roll < ceiling {
			return domain.HeatLevel(i)
		}
	}
	return domain.HeatContested
}

// premium maps a heat level to its price multiplier. Cold deals close at
// asking price; warmer tiers draw from fixed ascending ranges.
func (e *Engine) premium(level domain.HeatLevel, ctx *sim.Context) float64 {
	switch level {
	case domain.HeatWarm:
		return ctx.Range(e.cfg.WarmPremium.Min, e.cfg.WarmPremium.Max)
	case domain.HeatHot:
		return ctx.Range(e.cfg.HotPremium.Min, e.cfg.HotPremium.Max)
	case domain.HeatContested:
		return ctx.Range(e.cfg.ContestedPremium.Min, e.cfg.ContestedPremium.Max)
	}
	return 1.0
}
