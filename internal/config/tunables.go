package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tunables holds every numeric knob of the engine. The values carry over
// from the original balance sheet unchanged; several (weight brackets,
// concentration thresholds) are hand-tuned without a documented derivation
// and must be preserved bit-for-bit rather than re-derived.
type Tunables struct {
	Affordability AffordabilityTunables `yaml:"affordability"`
	Heat          HeatTunables          `yaml:"heat"`
	Deals         DealTunables          `yaml:"deals"`
	Integration   IntegrationTunables   `yaml:"integration"`
	Turnarounds   TurnaroundTunables    `yaml:"turnarounds"`
}

// WeightBracket maps an affordability-to-floor ratio ceiling to a raw
// tier weight. Brackets are evaluated in order; the first bracket whose
// MaxRatio exceeds the ratio wins.
type WeightBracket struct {
	MaxRatio float64 `yaml:"max_ratio"`
	Weight   float64 `yaml:"weight"`
}

// Band is an inclusive float range
type Band struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// AffordabilityTunables parameterize purchasing power and tier weighting
type AffordabilityTunables struct {
	LeverageMultiplier          float64 `yaml:"leverage_multiplier"`
	TightenedLeverageMultiplier float64 `yaml:"tightened_leverage_multiplier"`
	StretchMax                  float64 `yaml:"stretch_max"`
	IPOBonusFraction            float64 `yaml:"ipo_bonus_fraction"`
	IPOSharePriceFloor          float64 `yaml:"ipo_share_price_floor"`

	// Floor cost per value tier, micro through trophy, in $K.
	TierFloorCosts []int64 `yaml:"tier_floor_costs"`

	// Hand-tuned weight brackets; the trailing weight applies beyond the
	// last bracket. Preserved bit-for-bit from the source.
	WeightBrackets []WeightBracket `yaml:"weight_brackets"`
	FarOutWeight   float64         `yaml:"far_out_weight"`

	EquityCheckFraction       float64 `yaml:"equity_check_fraction"`
	ConcentrationCashFraction float64 `yaml:"concentration_cash_fraction"`
	ConcentrationPenalty      float64 `yaml:"concentration_penalty"`

	TrophyEBITDABase Band    `yaml:"trophy_ebitda_base"` // $K
	TrophyActivation float64 `yaml:"trophy_activation"`  // $K affordability
	TrophyScaleCap   float64 `yaml:"trophy_scale_cap"`   // multiple of base max
}

// HeatTunables parameterize the deal heat engine
type HeatTunables struct {
	// Cumulative base distribution over cold/warm/hot/contested.
	BaseCumulative []float64 `yaml:"base_cumulative"`

	WarmPremium      Band `yaml:"warm_premium"`
	HotPremium       Band `yaml:"hot_premium"`
	ContestedPremium Band `yaml:"contested_premium"`

	MaxNegativeShift int     `yaml:"max_negative_shift"`
	LateGameFraction float64 `yaml:"late_game_fraction"`
}

// DealTunables parameterize generation and pipeline maintenance
type DealTunables struct {
	PipelineMin      int `yaml:"pipeline_min"`
	PipelineMax      int `yaml:"pipeline_max"`
	InitialFreshness int `yaml:"initial_freshness"`

	TuckInMaxEBITDA   int64   `yaml:"tuck_in_max_ebitda"`   // $K
	PlatformMinEBITDA int64   `yaml:"platform_min_ebitda"`  // $K
	MidPlatformWeight float64 `yaml:"mid_platform_weight"`  // platform share, mid band
	BigPlatformWeight float64 `yaml:"big_platform_weight"`  // platform share, large band

	TuckInDiscount      Band    `yaml:"tuck_in_discount"`
	ProprietaryDiscount float64 `yaml:"proprietary_discount"`

	QualityWeights []float64 `yaml:"quality_weights"` // quality 1..5

	RecessionDiscount Band `yaml:"recession_discount"`
	CrisisDiscount    Band `yaml:"crisis_discount"`
	DistressedQualityCap int `yaml:"distressed_quality_cap"`

	// Size-tier premium curve over EBITDA ($K): monotonic, capped.
	SizePremiumEBITDA  []float64 `yaml:"size_premium_ebitda"`
	SizePremiumValues  []float64 `yaml:"size_premium_values"`
}

// IntegrationTunables parameterize the integration resolver
type IntegrationTunables struct {
	BaseSuccess          float64 `yaml:"base_success"`
	QualityStep          float64 `yaml:"quality_step"`
	OperatorStrongBonus  float64 `yaml:"operator_strong_bonus"`
	OperatorWeakPenalty  float64 `yaml:"operator_weak_penalty"`
	SameSectorBonus      float64 `yaml:"same_sector_bonus"`
	RelatedPenalty       float64 `yaml:"related_penalty"`
	DistantPenalty       float64 `yaml:"distant_penalty"`
	SharedServicesBonus  float64 `yaml:"shared_services_bonus"`
	ConcentrationPenalty float64 `yaml:"concentration_penalty"`

	SizePenaltyStretch   float64 `yaml:"size_penalty_stretch"`
	SizePenaltyStrained  float64 `yaml:"size_penalty_strained"`
	SizePenaltyOverreach float64 `yaml:"size_penalty_overreach"`

	OffsetPerPlatformScale float64 `yaml:"offset_per_platform_scale"`
	OffsetSharedServices   float64 `yaml:"offset_shared_services"`
	OffsetMutualQuality    float64 `yaml:"offset_mutual_quality"`

	MergerFactor float64 `yaml:"merger_factor"`

	MinProbability float64 `yaml:"min_probability"`
	MaxProbability float64 `yaml:"max_probability"`

	SuccessThresholdFactor float64 `yaml:"success_threshold_factor"`
	PartialThresholdFactor float64 `yaml:"partial_threshold_factor"`

	SynergySuccessFraction float64 `yaml:"synergy_success_fraction"`
	SynergyPartialFraction float64 `yaml:"synergy_partial_fraction"`
	SynergyFailureFraction float64 `yaml:"synergy_failure_fraction"`

	AffinityRelatedFactor float64 `yaml:"affinity_related_factor"`
	AffinityDistantFactor float64 `yaml:"affinity_distant_factor"`

	GrowthDragBase  float64 `yaml:"growth_drag_base"`
	GrowthDragFloor float64 `yaml:"growth_drag_floor"`
	GrowthDragCap   float64 `yaml:"growth_drag_cap"`
	GrowthDragDecay float64 `yaml:"growth_drag_decay"`
}

// TurnaroundTunables parameterize the turnaround engine
type TurnaroundTunables struct {
	FatigueThreshold int     `yaml:"fatigue_threshold"`
	FatiguePenalty   float64 `yaml:"fatigue_penalty"`
	ExitPremiumLift  int     `yaml:"exit_premium_lift"` // sustained quality tiers
}

// DefaultTunables returns the frozen default knob values
func DefaultTunables() *Tunables {
	return &Tunables{
		Affordability: AffordabilityTunables{
			LeverageMultiplier:          4.0,
			TightenedLeverageMultiplier: 2.5,
			StretchMax:                  0.5,
			IPOBonusFraction:            0.10,
			IPOSharePriceFloor:          5.0,
			TierFloorCosts:              []int64{500, 2_000, 5_000, 12_000, 30_000, 75_000, 150_000},
			WeightBrackets: []WeightBracket{
				{MaxRatio: 1.0, Weight: 0},
				{MaxRatio: 1.25, Weight: 8},
				{MaxRatio: 3.0, Weight: 40},
				{MaxRatio: 6.0, Weight: 18},
				{MaxRatio: 12.0, Weight: 7},
			},
			FarOutWeight:              3,
			EquityCheckFraction:       0.40,
			ConcentrationCashFraction: 0.35,
			ConcentrationPenalty:      0.3,
			TrophyEBITDABase:          Band{Min: 8_000, Max: 15_000},
			TrophyActivation:          150_000,
			TrophyScaleCap:            3.0,
		},
		Heat: HeatTunables{
			BaseCumulative:   []float64{0.35, 0.70, 0.90, 1.0},
			WarmPremium:      Band{Min: 1.02, Max: 1.08},
			HotPremium:       Band{Min: 1.08, Max: 1.18},
			ContestedPremium: Band{Min: 1.18, Max: 1.35},
			MaxNegativeShift: 3,
			LateGameFraction: 0.75,
		},
		Deals: DealTunables{
			PipelineMin:          4,
			PipelineMax:          8,
			InitialFreshness:     3,
			TuckInMaxEBITDA:      1_000,
			PlatformMinEBITDA:    5_000,
			MidPlatformWeight:    0.35,
			BigPlatformWeight:    0.65,
			TuckInDiscount:       Band{Min: 0.05, Max: 0.25},
			ProprietaryDiscount:  0.08,
			QualityWeights:       []float64{10, 25, 35, 22, 8},
			RecessionDiscount:    Band{Min: 0.15, Max: 0.25},
			CrisisDiscount:       Band{Min: 0.30, Max: 0.50},
			DistressedQualityCap: 3,
			SizePremiumEBITDA:    []float64{0, 1_000, 2_000, 5_000, 10_000, 20_000, 30_000},
			SizePremiumValues:    []float64{0, 0.25, 0.5, 1.25, 2.0, 3.0, 3.5},
		},
		Integration: IntegrationTunables{
			BaseSuccess:          0.70,
			QualityStep:          0.05,
			OperatorStrongBonus:  0.05,
			OperatorWeakPenalty:  0.07,
			SameSectorBonus:      0.08,
			RelatedPenalty:       0.05,
			DistantPenalty:       0.12,
			SharedServicesBonus:  0.06,
			ConcentrationPenalty: 0.05,

			SizePenaltyStretch:   0.08,
			SizePenaltyStrained:  0.16,
			SizePenaltyOverreach: 0.28,

			OffsetPerPlatformScale: 0.02,
			OffsetSharedServices:   0.03,
			OffsetMutualQuality:    0.04,

			MergerFactor: 0.5,

			MinProbability: 0.05,
			MaxProbability: 0.95,

			SuccessThresholdFactor: 0.6,
			PartialThresholdFactor: 1.2,

			SynergySuccessFraction: 0.20,
			SynergyPartialFraction: 0.06,
			SynergyFailureFraction: -0.05,

			AffinityRelatedFactor: 0.75,
			AffinityDistantFactor: 0.45,

			GrowthDragBase:  0.03,
			GrowthDragFloor: 0.005,
			GrowthDragCap:   0.04,
			GrowthDragDecay: 0.5,
		},
		Turnarounds: TurnaroundTunables{
			FatigueThreshold: 4,
			FatiguePenalty:   0.10,
			ExitPremiumLift:  2,
		},
	}
}

// LoadTunables returns the defaults, overridden by a YAML file when path is
// non-empty. Unknown keys in the file are rejected.
func LoadTunables(path string) (*Tunables, error) {
	t := DefaultTunables()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tunables file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil {
		return nil, fmt.Errorf("failed to decode tunables file: %w", err)
	}
	return t, nil
}
