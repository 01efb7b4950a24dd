// Package integration resolves whether an acquired or merged business
// assimilates into its platform: outcome, captured synergies and growth
// drag on failure.
package integration

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/catalog"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// Input describes one integration attempt
type Input struct {
	Acquired domain.Business
	Platform *domain.Business // nil for standalone absorption

	Merger         bool
	SharedServices bool
	Operator       domain.OperatorQuality

	// HighRevenueConcentration marks targets whose revenue depends on a
	// few clients, per the sector's concentration tier.
	HighRevenueConcentration bool
}

// GrowthDrag is the decaying growth-rate penalty applied after a failed
// integration. PerRound is the initial penalty; it decays by the Decay
// factor each subsequent round until negligible.
type GrowthDrag struct {
	PerRound float64 `json:"per_round"`
	Decay    float64 `json:"decay"`
}

// Result is the resolved integration
type Result struct {
	Outcome       domain.IntegrationOutcome `json:"outcome"`
	Probability   float64                   `json:"probability"`
	Affinity      domain.SubTypeAffinity    `json:"affinity"`
	SizeRatioTier domain.SizeRatioTier      `json:"size_ratio_tier"`
	Synergy       int64                     `json:"synergy"` // $K, negative on failure
	Drag          *GrowthDrag               `json:"drag,omitempty"`
}

// Resolver computes integration outcomes
type Resolver struct {
	cfg     *config.IntegrationTunables
	catalog catalog.Catalog
	log     zerolog.Logger
}

// NewResolver creates an integration resolver
func NewResolver(cfg *config.Tunables, cat catalog.Catalog, log zerolog.Logger) *Resolver {
	return &Resolver{
		cfg:     &cfg.Integration,
		catalog: cat,
		log:     log.With().Str("module", "integration").Logger(),
	}
}

// Affinity derives sub-type affinity between the acquired business and the
// platform. Cross-sector pairs are always distant; within a sector the
// catalog's affinity groups decide.
func (r *Resolver) Affinity(acquired, platform domain.Business) domain.SubTypeAffinity {
	if acquired.Sector != platform.Sector {
		return domain.AffinityDistant
	}
	sector, ok := r.catalog.Sector(acquired.Sector)
	if !ok {
		return domain.AffinityDistant
	}
	return sector.Affinity(acquired.SubType, platform.SubType)
}

// SizeRatioTier classifies the smaller business's EBITDA against the
// platform's. A non-positive platform EBITDA is degenerate and resolves to
// the overreach sentinel rather than dividing by zero.
func SizeRatioTier(acquired, platform int64) domain.SizeRatioTier {
	if platform <= 0 {
		return domain.SizeRatioOverreach
	}
	smaller := acquired
	if smaller > platform {
		smaller = platform
	}
	ratio := float64(smaller) / float64(platform)
	switch {
	case ratio <= 0.25:
		return domain.SizeRatioIdeal
	case ratio <= 0.50:
		return domain.SizeRatioStretch
	case ratio <= 0.75:
		return domain.SizeRatioStrained
	default:
		return domain.SizeRatioOverreach
	}
}

// Probability computes the adjusted success probability for an attempt.
// The size-ratio penalty can be partially offset by platform scale, shared
// services and mutual high quality, but the total offset is capped at half
// the base penalty so oversized combinations are never risk-free. Merger
// penalties run at roughly half the tuck-in magnitude.
func (r *Resolver) Probability(in Input) (float64, domain.SubTypeAffinity, domain.SizeRatioTier) {
	c := r.cfg
	p := c.BaseSuccess

	p += float64(in.Acquired.Quality-3) * c.QualityStep

	switch in.Operator {
	case domain.OperatorStrong:
		p += c.OperatorStrongBonus
	case domain.OperatorWeak:
		p -= c.OperatorWeakPenalty
	}

	affinity := domain.AffinityMatch
	sizeTier := domain.SizeRatioIdeal

	penaltyFactor := 1.0
	if in.Merger {
		penaltyFactor = c.MergerFactor
	}

	if in.Platform != nil {
		affinity = r.Affinity(in.Acquired, *in.Platform)
		sizeTier = SizeRatioTier(in.Acquired.EBITDA, in.Platform.EBITDA)

		if in.Acquired.Sector == in.Platform.Sector {
			p += c.SameSectorBonus
		}
		switch affinity {
		case domain.AffinityRelated:
			p -= c.RelatedPenalty * penaltyFactor
		case domain.AffinityDistant:
			p -= c.DistantPenalty * penaltyFactor
		}

		basePenalty := r.sizePenalty(sizeTier) * penaltyFactor
		if basePenalty > 0 {
			offset := float64(in.Platform.PlatformScale) * c.OffsetPerPlatformScale
			if in.SharedServices {
				offset += c.OffsetSharedServices
			}
			if in.Acquired.Quality >= 4 && in.Platform.Quality >= 4 {
				offset += c.OffsetMutualQuality
			}
			offset = math.Min(offset, basePenalty/2)
			p -= basePenalty - offset
		}
	}

	if in.SharedServices {
		p += c.SharedServicesBonus
	}
	if in.HighRevenueConcentration {
		p -= c.ConcentrationPenalty
	}

	return formulas.Clamp(p, c.MinProbability, c.MaxProbability), affinity, sizeTier
}

func (r *Resolver) sizePenalty(tier domain.SizeRatioTier) float64 {
	switch tier {
	case domain.SizeRatioStretch:
		return r.cfg.SizePenaltyStretch
	case domain.SizeRatioStrained:
		return r.cfg.SizePenaltyStrained
	case domain.SizeRatioOverreach:
		return r.cfg.SizePenaltyOverreach
	}
	return 0
}

// Resolve draws a roll from the context and resolves the attempt
func (r *Resolver) Resolve(in Input, ctx *sim.Context) Result {
	return r.ResolveWithRoll(in, ctx.Float64())
}

// ResolveWithRoll resolves the attempt with an injected roll for
// deterministic replay. The roll lands against thresholds p*0.6 and p*1.2:
// below the first is success, below the second partial, else failure.
func (r *Resolver) ResolveWithRoll(in Input, roll float64) Result {
	p, affinity, sizeTier := r.Probability(in)

	outcome := domain.IntegrationFailure
	switch {
	case roll < p*r.cfg.SuccessThresholdFactor:
		outcome = domain.IntegrationSuccess
	case roll < p*r.cfg.PartialThresholdFactor:
		outcome = domain.IntegrationPartial
	}

	res := Result{
		Outcome:       outcome,
		Probability:   p,
		Affinity:      affinity,
		SizeRatioTier: sizeTier,
		Synergy:       r.synergy(in, outcome, affinity, sizeTier),
	}
	if outcome == domain.IntegrationFailure {
		res.Drag = r.growthDrag(in)
	}

	r.log.Debug().
		Str("outcome", string(outcome)).
		Float64("probability", p).
		Str("affinity", string(affinity)).
		Str("size_tier", string(sizeTier)).
		Int64("synergy", res.Synergy).
		Msg("Resolved integration")

	return res
}

// synergy computes captured synergy value: an outcome-dependent fraction of
// the smaller business's EBITDA, discounted for weaker affinity and damped
// by the size-ratio multiplier. Mergers damp less aggressively.
func (r *Resolver) synergy(in Input, outcome domain.IntegrationOutcome, affinity domain.SubTypeAffinity, sizeTier domain.SizeRatioTier) int64 {
	c := r.cfg

	smaller := in.Acquired.EBITDA
	if in.Platform != nil && in.Platform.EBITDA > 0 && in.Platform.EBITDA < smaller {
		smaller = in.Platform.EBITDA
	}
	if smaller < 0 {
		smaller = 0
	}

	var fraction float64
	switch outcome {
	case domain.IntegrationSuccess:
		fraction = c.SynergySuccessFraction
	case domain.IntegrationPartial:
		fraction = c.SynergyPartialFraction
	case domain.IntegrationFailure:
		fraction = c.SynergyFailureFraction
	}

	switch affinity {
	case domain.AffinityRelated:
		fraction *= c.AffinityRelatedFactor
	case domain.AffinityDistant:
		fraction *= c.AffinityDistantFactor
	}

	fraction *= synergyMultiplier(sizeTier, in.Merger)

	return formulas.RoundMoney(float64(smaller) * fraction)
}

// synergyMultiplier damps synergy as the size mismatch grows. Mergers keep
// more of the value at every tier.
func synergyMultiplier(tier domain.SizeRatioTier, merger bool) float64 {
	var tuckIn, merged float64
	switch tier {
	case domain.SizeRatioIdeal:
		tuckIn, merged = 1.0, 1.0
	case domain.SizeRatioStretch:
		tuckIn, merged = 0.75, 0.85
	case domain.SizeRatioStrained:
		tuckIn, merged = 0.50, 0.65
	case domain.SizeRatioOverreach:
		tuckIn, merged = 0.25, 0.45
	}
	if merger {
		return merged
	}
	return tuckIn
}

// growthDrag builds the decaying growth penalty for a failed integration,
// proportional to how much of the platform the acquired business
// represents, bounded to the configured floor and cap, halved for mergers.
func (r *Resolver) growthDrag(in Input) *GrowthDrag {
	c := r.cfg

	ratio := 1.0
	if in.Platform != nil && in.Platform.EBITDA > 0 {
		ratio = float64(in.Acquired.EBITDA) / float64(in.Platform.EBITDA)
	}

	drag := formulas.Clamp(c.GrowthDragBase*ratio, c.GrowthDragFloor, c.GrowthDragCap)
	if in.Merger {
		drag /= 2
	}
	return &GrowthDrag{PerRound: drag, Decay: c.GrowthDragDecay}
}
