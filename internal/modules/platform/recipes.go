package platform

import "github.com/peterkang34/holdco-tycoon-sub000/internal/domain"

// Recipe describes one forgeable platform: which sectors and sub-types
// qualify, how much combined EBITDA the sector base needs, and the bonus
// bundle constituents enjoy while linked.
type Recipe struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Sectors lists one sector for within-sector recipes, several for
	// cross-sector recipes (each of which must be represented).
	Sectors []string `json:"sectors"`

	// EligibleSubTypes limits which sub-types count toward diversity;
	// empty means every sub-type of the listed sectors qualifies.
	EligibleSubTypes []string `json:"eligible_sub_types"`

	MinDistinctSubTypes int `json:"min_distinct_sub_types"`

	// EBITDAThreshold ($K) is scaled by DifficultyMultiplier before the
	// eligibility comparison.
	EBITDAThreshold      int64   `json:"ebitda_threshold"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`

	CostFraction float64 `json:"cost_fraction"`

	Bonuses domain.PlatformBonuses `json:"bonuses"`
}

// CrossSector reports whether the recipe spans multiple sectors
func (r Recipe) CrossSector() bool {
	return len(r.Sectors) > 1
}

// ScaledThreshold returns the difficulty-adjusted EBITDA requirement
func (r Recipe) ScaledThreshold() int64 {
	m := r.DifficultyMultiplier
	if m <= 0 {
		m = 1
	}
	return int64(float64(r.EBITDAThreshold) * m)
}

// DefaultRecipes returns the authored platform recipe catalog
func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			ID:                   "trades_rollup",
			Name:                 "Skilled Trades Roll-Up",
			Sectors:              []string{"home_services"},
			EligibleSubTypes:     []string{"hvac", "plumbing", "electrical"},
			MinDistinctSubTypes:  2,
			EBITDAThreshold:      3_000,
			DifficultyMultiplier: 1.0,
			CostFraction:         0.05,
			Bonuses: domain.PlatformBonuses{
				MarginBoost:        0.02,
				GrowthBoost:        0.01,
				MultipleExpansion:  0.5,
				RecessionReduction: 0.15,
			},
		},
		{
			ID:                   "clinic_network",
			Name:                 "Multi-Site Clinic Network",
			Sectors:              []string{"healthcare_services"},
			EligibleSubTypes:     []string{"dental", "dermatology", "physical_therapy", "veterinary"},
			MinDistinctSubTypes:  2,
			EBITDAThreshold:      4_000,
			DifficultyMultiplier: 1.1,
			CostFraction:         0.06,
			Bonuses: domain.PlatformBonuses{
				MarginBoost:        0.025,
				GrowthBoost:        0.015,
				MultipleExpansion:  0.75,
				RecessionReduction: 0.20,
			},
		},
		{
			ID:                   "precision_industrial",
			Name:                 "Precision Industrial Group",
			Sectors:              []string{"industrial_mfg"},
			MinDistinctSubTypes:  3,
			EBITDAThreshold:      6_000,
			DifficultyMultiplier: 1.2,
			CostFraction:         0.07,
			Bonuses: domain.PlatformBonuses{
				MarginBoost:        0.03,
				GrowthBoost:        0.01,
				MultipleExpansion:  0.75,
				RecessionReduction: 0.10,
			},
		},
		{
			ID:                   "supply_chain_vertical",
			Name:                 "Integrated Supply Chain",
			Sectors:              []string{"industrial_mfg", "distribution"},
			MinDistinctSubTypes:  3,
			EBITDAThreshold:      10_000,
			DifficultyMultiplier: 1.4,
			CostFraction:         0.08,
			Bonuses: domain.PlatformBonuses{
				MarginBoost:        0.035,
				GrowthBoost:        0.02,
				MultipleExpansion:  1.0,
				RecessionReduction: 0.25,
			},
		},
		{
			ID:                   "tech_enabled_services",
			Name:                 "Tech-Enabled Services Platform",
			Sectors:              []string{"home_services", "business_software"},
			MinDistinctSubTypes:  3,
			EBITDAThreshold:      8_000,
			DifficultyMultiplier: 1.3,
			CostFraction:         0.08,
			Bonuses: domain.PlatformBonuses{
				MarginBoost:        0.03,
				GrowthBoost:        0.03,
				MultipleExpansion:  1.25,
				RecessionReduction: 0.15,
			},
		},
	}
}
