// Package platform evaluates platform formation, applies bonus bundles to
// linked businesses and detects dissolution.
package platform

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// Manager owns the recipe catalog and platform bookkeeping rules
type Manager struct {
	recipes map[string]Recipe
	order   []string
	log     zerolog.Logger
}

// NewManager creates a platform manager over a recipe catalog
func NewManager(recipes []Recipe, log zerolog.Logger) *Manager {
	m := &Manager{
		recipes: make(map[string]Recipe, len(recipes)),
		log:     log.With().Str("module", "platform").Logger(),
	}
	for _, r := range recipes {
		if _, dup := m.recipes[r.ID]; dup {
			continue
		}
		m.recipes[r.ID] = r
		m.order = append(m.order, r.ID)
	}
	return m
}

// Recipe returns a recipe by id
func (m *Manager) Recipe(id string) (Recipe, bool) {
	r, ok := m.recipes[id]
	return r, ok
}

// Recipes returns the catalog in authored order
func (m *Manager) Recipes() []Recipe {
	out := make([]Recipe, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.recipes[id])
	}
	return out
}

// Eligibility is the evaluation of one recipe against a portfolio
type Eligibility struct {
	RecipeID         string  `json:"recipe_id"`
	Eligible         bool    `json:"eligible"`
	DistinctSubTypes int     `json:"distinct_sub_types"`
	SectorEBITDA     int64   `json:"sector_ebitda"`
	MissingSectors   []string `json:"missing_sectors,omitempty"`

	// FormingIDs are the businesses whose sub-types satisfied diversity;
	// forging charges its cost against their combined EBITDA.
	FormingIDs []int64 `json:"forming_ids,omitempty"`
}

func (r Recipe) coversSector(sector string) bool {
	for _, s := range r.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

func (r Recipe) subTypeEligible(subType string) bool {
	if len(r.EligibleSubTypes) == 0 {
		return true
	}
	for _, st := range r.EligibleSubTypes {
		if st == subType {
			return true
		}
	}
	return false
}

// Evaluate checks one recipe against the portfolio. Diversity counts
// distinct eligible sub-types among active or integrated businesses not
// already linked to a platform; the EBITDA gate sums every active business
// in the recipe's sectors, not just the matching sub-types. Cross-sector
// recipes additionally require every listed sector to be represented.
func (m *Manager) Evaluate(recipe Recipe, businesses []domain.Business) Eligibility {
	result := Eligibility{RecipeID: recipe.ID}

	subTypes := make(map[string][]int64)
	sectorsSeen := make(map[string]bool)
	var sectorEBITDA int64

	for _, b := range businesses {
		if !recipe.coversSector(b.Sector) {
			continue
		}
		if b.Status == domain.StatusActive {
			sectorEBITDA += b.EBITDA
			sectorsSeen[b.Sector] = true
		}
		eligibleStatus := b.Status == domain.StatusActive || b.Status == domain.StatusIntegrated
		if !eligibleStatus || b.IntegratedPlatformID != "" {
			continue
		}
		if recipe.subTypeEligible(b.SubType) {
			subTypes[b.SubType] = append(subTypes[b.SubType], b.ID)
		}
	}

	result.DistinctSubTypes = len(subTypes)
	result.SectorEBITDA = sectorEBITDA
	keys := make([]string, 0, len(subTypes))
	for st := range subTypes {
		keys = append(keys, st)
	}
	sort.Strings(keys)
	for _, st := range keys {
		result.FormingIDs = append(result.FormingIDs, subTypes[st]...)
	}

	if recipe.CrossSector() {
		for _, s := range recipe.Sectors {
			if !sectorsSeen[s] {
				result.MissingSectors = append(result.MissingSectors, s)
			}
		}
	}

	result.Eligible = result.DistinctSubTypes >= recipe.MinDistinctSubTypes &&
		sectorEBITDA >= recipe.ScaledThreshold() &&
		len(result.MissingSectors) == 0

	return result
}

// EvaluateAll returns the eligibility of every recipe in catalog order
func (m *Manager) EvaluateAll(businesses []domain.Business) []Eligibility {
	out := make([]Eligibility, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.Evaluate(m.recipes[id], businesses))
	}
	return out
}

// ForgeCost is the integration cost charged when a platform is forged:
// the recipe's cost fraction of the forming businesses' combined EBITDA.
// Absolute values keep the cost positive when constituents run negative.
func (m *Manager) ForgeCost(recipe Recipe, forming []domain.Business) int64 {
	var combined int64
	for _, b := range forming {
		ebitda := b.EBITDA
		if ebitda < 0 {
			ebitda = -ebitda
		}
		combined += ebitda
	}
	return formulas.RoundMoney(float64(combined) * recipe.CostFraction)
}

// Forge creates the platform record for an eligible recipe. The caller
// (round orchestrator) links the constituent businesses and deducts the
// forge cost. Platform ids come from the simulation context so identical
// seeds forge identical platforms.
func (m *Manager) Forge(recipe Recipe, forming []domain.Business, round int, ctx *sim.Context) domain.IntegratedPlatform {
	ids := make([]int64, 0, len(forming))
	for _, b := range forming {
		ids = append(ids, b.ID)
	}
	p := domain.IntegratedPlatform{
		ID:          fmt.Sprintf("platform-%d", ctx.NextID()),
		RecipeID:    recipe.ID,
		Name:        recipe.Name,
		Sectors:     append([]string(nil), recipe.Sectors...),
		BusinessIDs: ids,
		RoundForged: round,
		Bonuses:     recipe.Bonuses,
	}
	m.log.Info().
		Str("platform_id", p.ID).
		Str("recipe", recipe.ID).
		Int("constituents", len(ids)).
		Msg("Forged platform")
	return p
}

// BonusesFor returns the platform bonus bundle for a business, or nil when
// the business is not a linked member of the platform.
func (m *Manager) BonusesFor(p *domain.IntegratedPlatform, b *domain.Business) *domain.PlatformBonuses {
	if p == nil || b == nil {
		return nil
	}
	if b.IntegratedPlatformID != p.ID || !p.Contains(b.ID) {
		return nil
	}
	bonuses := p.Bonuses
	return &bonuses
}

// ShouldDissolve recomputes diversity over the platform's current
// constituents only: sold or merged members no longer count. Dissolve when
// distinct active sub-types fall below the recipe minimum, no active
// constituents remain, or the recipe id is unknown.
func (m *Manager) ShouldDissolve(p *domain.IntegratedPlatform, businesses map[int64]*domain.Business) bool {
	recipe, ok := m.recipes[p.RecipeID]
	if !ok {
		m.log.Warn().Str("recipe", p.RecipeID).Msg("Unknown recipe on dissolution check, dissolving")
		return true
	}

	subTypes := make(map[string]bool)
	active := 0
	for _, id := range p.BusinessIDs {
		b, exists := businesses[id]
		if !exists || b == nil {
			continue
		}
		if b.Status != domain.StatusActive && b.Status != domain.StatusIntegrated {
			continue
		}
		active++
		if recipe.subTypeEligible(b.SubType) {
			subTypes[b.SubType] = true
		}
	}

	if active == 0 {
		return true
	}
	return len(subTypes) < recipe.MinDistinctSubTypes
}
