// Package affordability computes a buyer's purchasing power and the
// probability distribution over the seven deal-size tiers that gates which
// deals the buyer gets shown.
package affordability

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// MarketState is the public-market input to the affordability model
type MarketState struct {
	PubliclyTraded    bool
	SharePrice        float64
	SharesOutstanding int64
}

// CreditConditions gates leverage availability and cost
type CreditConditions struct {
	Tightened bool
	NoNewDebt bool
}

// Result is the computed purchasing power breakdown. All fields are finite
// and non-negative.
type Result struct {
	Base          int64   `json:"base"`            // $K before stretch
	Total         int64   `json:"total"`           // $K stretched + IPO bonus
	StretchFactor float64 `json:"stretch_factor"`  // 0..StretchMax
	IPOBonus      int64   `json:"ipo_bonus"`       // $K additive
}

// Model computes purchasing power and tier weights
type Model struct {
	cfg *config.AffordabilityTunables
	log zerolog.Logger
}

// NewModel creates an affordability model
func NewModel(cfg *config.Tunables, log zerolog.Logger) *Model {
	return &Model{
		cfg: &cfg.Affordability,
		log: log.With().Str("module", "affordability").Logger(),
	}
}

// Compute derives purchasing power from cash, credit conditions and market
// state. The stretch factor is the square of a uniform draw scaled to
// StretchMax, giving a right-skewed distribution: most rounds see modest
// stretch, rare rounds a large one.
func (m *Model) Compute(cash int64, credit CreditConditions, market MarketState, ctx *sim.Context) Result {
	if cash < 0 {
		cash = 0
	}

	multiplier := m.cfg.LeverageMultiplier
	if credit.Tightened {
		multiplier = m.cfg.TightenedLeverageMultiplier
	}
	base := cash
	if !credit.NoNewDebt {
		base = formulas.RoundMoney(float64(cash) * multiplier)
	}

	u := ctx.Float64()
	stretch := u * u * m.cfg.StretchMax

	ipoBonus := int64(0)
	if market.PubliclyTraded && market.SharePrice > m.cfg.IPOSharePriceFloor {
		marketCap := market.SharePrice * float64(market.SharesOutstanding)
		ipoBonus = formulas.RoundMoney(marketCap * m.cfg.IPOBonusFraction)
		if ipoBonus < 0 {
			ipoBonus = 0
		}
	}

	total := formulas.RoundMoney(float64(base)*(1+stretch)) + ipoBonus

	m.log.Debug().
		Int64("cash", cash).
		Int64("base", base).
		Float64("stretch", stretch).
		Int64("ipo_bonus", ipoBonus).
		Int64("total", total).
		Msg("Computed affordability")

	return Result{Base: base, Total: total, StretchFactor: stretch, IPOBonus: ipoBonus}
}

// Weights returns the normalized weight per value tier for a buyer with the
// given stretched affordability and raw cash, always summing to 1.0.
//
// Bracket rules: weight 0 while the tier floor cost exceeds affordability,
// a small weight just above the floor, the largest weight in the sweet-spot
// band, then declining weights for tiers far below affordability. A
// concentration penalty shrinks any tier whose estimated equity check
// exceeds ConcentrationCashFraction of raw (non-stretched) cash. When every
// raw weight is zero the smallest tier takes 100%.
func (m *Model) Weights(totalAffordability, cash int64) []float64 {
	weights := make([]float64, domain.TierCount)
	for i := 0; i < domain.TierCount; i++ {
		floorCost := m.cfg.TierFloorCosts[i]
		weights[i] = m.bracketWeight(totalAffordability, floorCost)
		if weights[i] <= 0 {
			continue
		}
		equityCheck := float64(floorCost) * m.cfg.EquityCheckFraction
		if equityCheck > float64(cash)*m.cfg.ConcentrationCashFraction {
			weights[i] *= m.cfg.ConcentrationPenalty
		}
	}

	if !formulas.NormalizeWeights(weights) {
		weights[domain.TierMicro] = 1.0
	}
	return weights
}

func (m *Model) bracketWeight(affordability, floorCost int64) float64 {
	if floorCost <= 0 {
		return 0
	}
	ratio := float64(affordability) / float64(floorCost)
	for _, bracket := range m.cfg.WeightBrackets {
		if ratio < bracket.MaxRatio {
			return bracket.Weight
		}
	}
	return m.cfg.FarOutWeight
}

// PickTier selects a value tier from normalized weights with a single roll
// by cumulative subtraction.
func (m *Model) PickTier(weights []float64, roll float64) domain.ValueTier {
	return domain.ValueTier(formulas.WeightedIndex(weights, roll))
}

// TrophyEBITDA draws a trophy-tier EBITDA ($K): uniform within the base
// range, scaled up once affordability clears the activation threshold,
// capped at TrophyScaleCap times the base range maximum.
func (m *Model) TrophyEBITDA(totalAffordability int64, ctx *sim.Context) int64 {
	base := ctx.Range(m.cfg.TrophyEBITDABase.Min, m.cfg.TrophyEBITDABase.Max)

	scale := 1.0
	activation := m.cfg.TrophyActivation
	if activation > 0 && float64(totalAffordability) > activation {
		scale = 1 + math.Sqrt((float64(totalAffordability)-activation)/activation)*0.5
	}

	cap := m.cfg.TrophyEBITDABase.Max * m.cfg.TrophyScaleCap
	return formulas.RoundMoney(math.Min(base*scale, cap))
}
