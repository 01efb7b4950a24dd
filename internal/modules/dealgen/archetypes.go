package dealgen

import (
	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
	"github.com/peterkang34/holdco-tycoon-sub000/internal/sim"
	"github.com/peterkang34/holdco-tycoon-sub000/pkg/formulas"
)

// archetypeProfile is the numeric effect table for a seller archetype.
// Discount competes with tuck-in and proprietary discounts (largest wins);
// premium applies on top of the winning discount. OperatorShift adjusts the
// apparent operator quality seen by the integration resolver.
type archetypeProfile struct {
	Archetype     domain.SellerArchetype
	Weight        float64
	Discount      float64
	Premium       float64
	OperatorShift int
	MultipleCap   bool // distressed sellers cap the implied multiple
}

// archetypeTable is the closed set of seller archetypes with their weights
// and price effects. New archetypes are additive rows, not new branches.
var archetypeTable = []archetypeProfile{
	{Archetype: domain.SellerRetiring, Weight: 28, Discount: 0.10},
	{Archetype: domain.SellerSuccession, Weight: 18, Discount: 0.05, OperatorShift: 1},
	{Archetype: domain.SellerDistressed, Weight: 12, Discount: 0.20, OperatorShift: -1, MultipleCap: true},
	{Archetype: domain.SellerBurnout, Weight: 16, Discount: 0.15, OperatorShift: -1},
	{Archetype: domain.SellerOpportunistic, Weight: 16, Premium: 0.10},
	{Archetype: domain.SellerInstitutional, Weight: 10, Premium: 0.05, OperatorShift: 1},
}

// drawArchetype picks a seller archetype by weighted draw
func drawArchetype(ctx *sim.Context) archetypeProfile {
	weights := make([]float64, len(archetypeTable))
	for i, p := range archetypeTable {
		weights[i] = p.Weight
	}
	formulas.NormalizeWeights(weights)
	return archetypeTable[formulas.WeightedIndex(weights, ctx.Float64())]
}

// profileFor returns the profile of a known archetype, defaulting to the
// neutral succession profile for unknown values.
func profileFor(a domain.SellerArchetype) archetypeProfile {
	for _, p := range archetypeTable {
		if p.Archetype == a {
			return p
		}
	}
	return archetypeProfile{Archetype: domain.SellerSuccession}
}

// operatorQuality converts the profile's operator shift into the quality
// classification the integration resolver consumes.
func (p archetypeProfile) operatorQuality() domain.OperatorQuality {
	switch {
	case p.OperatorShift > 0:
		return domain.OperatorStrong
	case p.OperatorShift < 0:
		return domain.OperatorWeak
	}
	return domain.OperatorNeutral
}

// OperatorQualityFor exposes the archetype's apparent operator quality to
// callers that resolve integrations from a deal.
func OperatorQualityFor(a domain.SellerArchetype) domain.OperatorQuality {
	return profileFor(a).operatorQuality()
}
