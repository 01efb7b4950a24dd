// Package turnaround runs rehabilitation programs that lift the quality
// rating of underperforming portfolio businesses. Programs come from a
// static catalog, gated by an unlock tier; resolution is a single draw
// against the program's success/partial/failure split, with a fatigue
// penalty when too many programs run at once.
package turnaround

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/catalog"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/config"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// Engine resolves turnaround programs against portfolio businesses
type Engine struct {
	cfg      *config.TurnaroundTunables
	catalog  catalog.Catalog
	programs map[string]domain.TurnaroundProgram
	order    []string
	log      zerolog.Logger
}

// NewEngine builds an engine over the default program catalog
func NewEngine(cfg *config.Tunables, cat catalog.Catalog, log zerolog.Logger) *Engine {
	e := &Engine{
		cfg:      &cfg.Turnarounds,
		catalog:  cat,
		programs: make(map[string]domain.TurnaroundProgram),
		log:      log.With().Str("module", "turnaround").Logger(),
	}
	for _, p := range DefaultPrograms() {
		e.programs[p.ID] = p
		e.order = append(e.order, p.ID)
	}
	return e
}

// Program looks up a catalog entry by id
func (e *Engine) Program(id string) (domain.TurnaroundProgram, bool) {
	p, ok := e.programs[id]
	return p, ok
}

// Programs returns the catalog in authored order
func (e *Engine) Programs() []domain.TurnaroundProgram {
	out := make([]domain.TurnaroundProgram, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.programs[id])
	}
	return out
}

// ProgramsFor returns the catalog entries a business currently qualifies
// for: matching source quality, within the unlocked tier.
func (e *Engine) ProgramsFor(b *domain.Business, unlockedTier int) []domain.TurnaroundProgram {
	var out []domain.TurnaroundProgram
	for _, id := range e.order {
		p := e.programs[id]
		if p.Tier <= unlockedTier && p.SourceQuality == b.Quality {
			out = append(out, p)
		}
	}
	return out
}

// TierUnlockable reports whether the given tier's unlock requirements are
// met. Tiers unlock in order; requirements are portfolio size and cash on
// hand, with the unlock fee paid separately by the caller.
func TierUnlockable(tier, currentTier, activeBusinesses int, cash int64) bool {
	if tier != currentTier+1 {
		return false
	}
	for _, req := range TierRequirements() {
		if req.Tier == tier {
			return activeBusinesses >= req.MinBusinesses && cash >= req.MinCash
		}
	}
	return false
}

// OrganicImprovementBonus is the added per-round chance of an unmanaged
// quality improvement granted by the highest unlocked tier.
func OrganicImprovementBonus(unlockedTier int) float64 {
	bonus := 0.0
	for _, req := range TierRequirements() {
		if req.Tier <= unlockedTier {
			bonus = req.OrganicBonus
		}
	}
	return bonus
}

// CalculateCost returns the upfront cost of starting a program on a
// business, a fraction of its EBITDA magnitude.
func (e *Engine) CalculateCost(p *domain.TurnaroundProgram, b *domain.Business) int64 {
	ebitda := b.EBITDA
	if ebitda < 0 {
		ebitda = -ebitda
	}
	return formulas.RoundMoney(float64(ebitda) * p.UpfrontCostFraction)
}

// CanStart validates every precondition for launching a program. The
// returned error names the first failing check.
func (e *Engine) CanStart(p *domain.TurnaroundProgram, b *domain.Business, unlockedTier int, cash int64, active []domain.ActiveTurnaround) error {
	if !b.IsActive() {
		return fmt.Errorf("business %d is %s", b.ID, b.Status)
	}
	if p.Tier > unlockedTier {
		return fmt.Errorf("program %s requires tier %d, unlocked %d", p.ID, p.Tier, unlockedTier)
	}
	if b.Quality != p.SourceQuality {
		return fmt.Errorf("program %s targets quality %d businesses, got %d", p.ID, p.SourceQuality, b.Quality)
	}
	if sector, ok := e.catalog.Sector(b.Sector); ok && sector.QualityCeiling > 0 {
		if b.Quality >= sector.QualityCeiling {
			return fmt.Errorf("business %d already sits at the %s quality ceiling %d", b.ID, sector.ID, sector.QualityCeiling)
		}
		if p.TargetQuality > sector.QualityCeiling {
			return fmt.Errorf("program %s targets quality %d, above the %s ceiling %d", p.ID, p.TargetQuality, sector.ID, sector.QualityCeiling)
		}
	}
	for i := range active {
		if active[i].BusinessID == b.ID && active[i].Running() {
			return fmt.Errorf("business %d already has a running turnaround", b.ID)
		}
	}
	if cost := e.CalculateCost(p, b); cash < cost {
		return fmt.Errorf("insufficient cash: need %d, have %d", cost, cash)
	}
	return nil
}

// Start launches a program on a business. Quick execution shortens the
// duration; the resolution odds are unchanged, the per-round cost is not.
func (e *Engine) Start(p *domain.TurnaroundProgram, b *domain.Business, round int, quick bool) domain.ActiveTurnaround {
	duration := p.StandardDuration
	if quick {
		duration = p.QuickDuration
	}
	e.log.Info().
		Str("program", p.ID).
		Int64("business_id", b.ID).
		Int("end_round", round+duration).
		Bool("quick", quick).
		Msg("turnaround started")
	return domain.ActiveTurnaround{
		BusinessID: b.ID,
		ProgramID:  p.ID,
		StartRound: round,
		EndRound:   round + duration,
		Quick:      quick,
		Status:     domain.TurnaroundActive,
	}
}

// Result describes a resolved turnaround. Business is the updated
// snapshot; the input business is never written to, the caller commits
// the snapshot when it chooses.
type Result struct {
	Outcome     domain.TurnaroundOutcome
	Business    domain.Business
	QualityFrom int
	QualityTo   int
	EBITDAFrom  int64
	EBITDATo    int64
	Fatigued    bool
	ExitPremium bool
}

// Resolve draws the outcome roll and resolves the program
func (e *Engine) Resolve(p *domain.TurnaroundProgram, b domain.Business, activeCount int, ctx *sim.Context) Result {
	return e.ResolveWithRoll(p, b, activeCount, ctx.Float64())
}

// ResolveWithRoll resolves a completed program with a pre-drawn roll in
// [0,1). Fatigue kicks in when the portfolio runs too many programs at
// once: the success band shrinks by the penalty and the lost mass lands
// in partial, so the failure odds are untouched.
func (e *Engine) ResolveWithRoll(p *domain.TurnaroundProgram, b domain.Business, activeCount int, roll float64) Result {
	successRate := p.SuccessRate
	fatigued := activeCount >= e.cfg.FatigueThreshold
	if fatigued {
		successRate -= e.cfg.FatiguePenalty
		if successRate < 0 {
			successRate = 0
		}
	}

	res := Result{
		QualityFrom: b.Quality,
		EBITDAFrom:  b.EBITDA,
		Fatigued:    fatigued,
	}

	switch {
	case roll < successRate:
		res.Outcome = domain.TurnaroundSuccess
		b.Quality = p.TargetQuality
		b.EBITDA = formulas.RoundMoney(float64(b.EBITDA) * (1 + p.SuccessBoost))
	case roll < p.SuccessRate+p.PartialRate:
		res.Outcome = domain.TurnaroundPartial
		if b.Quality < p.TargetQuality {
			b.Quality++
		}
		b.EBITDA = formulas.RoundMoney(float64(b.EBITDA) * (1 + p.PartialBoost))
	default:
		res.Outcome = domain.TurnaroundFailure
		b.EBITDA = formulas.RoundMoney(float64(b.EBITDA) * (1 - p.FailureDamage))
	}

	if b.Revenue > 0 {
		b.Margin = float64(b.EBITDA) / float64(b.Revenue)
	}
	b.EnforceInvariants()

	res.Business = b
	res.QualityTo = b.Quality
	res.EBITDATo = b.EBITDA
	res.ExitPremium = b.Quality-b.QualityAtAcquisition >= e.cfg.ExitPremiumLift

	e.log.Info().
		Str("program", p.ID).
		Int64("business_id", b.ID).
		Str("outcome", string(res.Outcome)).
		Int("quality_from", res.QualityFrom).
		Int("quality_to", res.QualityTo).
		Bool("fatigued", fatigued).
		Msg("turnaround resolved")
	return res
}
