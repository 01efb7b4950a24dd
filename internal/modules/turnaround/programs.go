package turnaround

import "github.com/peterkang34/holdco-tycoon-sub000/internal/domain"

// DefaultPrograms returns the authored rehabilitation program catalog.
// Per entry: success + partial + failure rates sum to exactly 1.0,
// target quality exceeds source quality, and the quick duration never
// exceeds the standard one. Tests enforce these as catalog invariants.
func DefaultPrograms() []domain.TurnaroundProgram {
	return []domain.TurnaroundProgram{
		{
			ID:                  "operational_stabilization",
			Name:                "Operational Stabilization",
			Tier:                1,
			SourceQuality:       1,
			TargetQuality:       2,
			StandardDuration:    2,
			QuickDuration:       1,
			SuccessRate:         0.65,
			PartialRate:         0.25,
			FailureRate:         0.10,
			SuccessBoost:        0.15,
			PartialBoost:        0.05,
			FailureDamage:       0.10,
			UpfrontCostFraction: 0.12,
			AnnualCost:          50,
		},
		{
			ID:                  "cost_restructuring",
			Name:                "Cost Restructuring",
			Tier:                1,
			SourceQuality:       2,
			TargetQuality:       3,
			StandardDuration:    2,
			QuickDuration:       1,
			SuccessRate:         0.60,
			PartialRate:         0.28,
			FailureRate:         0.12,
			SuccessBoost:        0.18,
			PartialBoost:        0.06,
			FailureDamage:       0.12,
			UpfrontCostFraction: 0.15,
			AnnualCost:          75,
		},
		{
			ID:                  "commercial_excellence",
			Name:                "Commercial Excellence",
			Tier:                2,
			SourceQuality:       2,
			TargetQuality:       4,
			StandardDuration:    3,
			QuickDuration:       2,
			SuccessRate:         0.50,
			PartialRate:         0.30,
			FailureRate:         0.20,
			SuccessBoost:        0.25,
			PartialBoost:        0.08,
			FailureDamage:       0.15,
			UpfrontCostFraction: 0.20,
			AnnualCost:          120,
		},
		{
			ID:                  "management_upgrade",
			Name:                "Management Upgrade",
			Tier:                2,
			SourceQuality:       3,
			TargetQuality:       4,
			StandardDuration:    2,
			QuickDuration:       2,
			SuccessRate:         0.62,
			PartialRate:         0.26,
			FailureRate:         0.12,
			SuccessBoost:        0.20,
			PartialBoost:        0.07,
			FailureDamage:       0.08,
			UpfrontCostFraction: 0.18,
			AnnualCost:          150,
		},
		{
			ID:                  "full_transformation",
			Name:                "Full Transformation",
			Tier:                3,
			SourceQuality:       3,
			TargetQuality:       5,
			StandardDuration:    4,
			QuickDuration:       3,
			SuccessRate:         0.45,
			PartialRate:         0.30,
			FailureRate:         0.25,
			SuccessBoost:        0.35,
			PartialBoost:        0.10,
			FailureDamage:       0.20,
			UpfrontCostFraction: 0.25,
			AnnualCost:          250,
		},
		{
			ID:                  "flagship_buildout",
			Name:                "Flagship Buildout",
			Tier:                3,
			SourceQuality:       4,
			TargetQuality:       5,
			StandardDuration:    3,
			QuickDuration:       2,
			SuccessRate:         0.55,
			PartialRate:         0.30,
			FailureRate:         0.15,
			SuccessBoost:        0.22,
			PartialBoost:        0.08,
			FailureDamage:       0.10,
			UpfrontCostFraction: 0.22,
			AnnualCost:          300,
		},
	}
}

// TierRequirement gates unlocking a turnaround tier
type TierRequirement struct {
	Tier          int     `json:"tier"`
	MinBusinesses int     `json:"min_businesses"`
	MinCash       int64   `json:"min_cash"` // $K
	UnlockCost    int64   `json:"unlock_cost"`
	OrganicBonus  float64 `json:"organic_bonus"` // added quality-improvement chance
}

// TierRequirements returns the unlock ladder for tiers 1-3
func TierRequirements() []TierRequirement {
	return []TierRequirement{
		{Tier: 1, MinBusinesses: 2, MinCash: 500, UnlockCost: 250, OrganicBonus: 0.02},
		{Tier: 2, MinBusinesses: 4, MinCash: 2_000, UnlockCost: 750, OrganicBonus: 0.04},
		{Tier: 3, MinBusinesses: 6, MinCash: 5_000, UnlockCost: 2_000, OrganicBonus: 0.06},
	}
}
