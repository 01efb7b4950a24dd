package domain

// PlatformBonuses is the bundle granted to every business linked to an
// integrated platform while the link holds.
type PlatformBonuses struct {
	MarginBoost        float64 `json:"margin_boost"`
	GrowthBoost        float64 `json:"growth_boost"`
	MultipleExpansion  float64 `json:"multiple_expansion"`
	RecessionReduction float64 `json:"recession_reduction"`
}

// IntegratedPlatform is a forged group of businesses sharing a recipe's
// bonus bundle. Dissolved when constituent diversity drops below the
// recipe's minimum distinct sub-type count.
type IntegratedPlatform struct {
	ID          string          `json:"id"`
	RecipeID    string          `json:"recipe_id"`
	Name        string          `json:"name"`
	Sectors     []string        `json:"sectors"`
	BusinessIDs []int64         `json:"business_ids"`
	RoundForged int             `json:"round_forged"`
	Bonuses     PlatformBonuses `json:"bonuses"`
}

// Contains reports whether a business id is a constituent of the platform
func (p *IntegratedPlatform) Contains(businessID int64) bool {
	for _, id := range p.BusinessIDs {
		if id == businessID {
			return true
		}
	}
	return false
}
