package catalog

// DefaultSectors returns the built-in sector definitions. The sqlite store
// seeds itself from these on first open; tunables never alter them.
func DefaultSectors() []Sector {
	return []Sector{
		{
			ID:            "home_services",
			Name:          "Home Services",
			MarginRange:   Range{Min: 0.10, Max: 0.22},
			MultipleRange: Range{Min: 3.0, Max: 5.5},
			GrowthRange:   Range{Min: 0.02, Max: 0.10},
			RevenueRange:  MoneyRange{Min: 1_500, Max: 40_000},
			SubTypes:      []string{"hvac", "plumbing", "electrical", "roofing", "landscaping"},
			AffinityGroups: map[string][]string{
				"mechanical_trades": {"hvac", "plumbing", "electrical"},
				"exterior":          {"roofing", "landscaping"},
			},
			SubTypeModifiers: map[string]SubTypeModifiers{
				"hvac":        {MarginShift: 0.02, MultipleShift: 0.25},
				"landscaping": {MarginShift: -0.02, GrowthShift: 0.01},
			},
			QualityCeiling:      4,
			CapexRate:           0.03,
			ClientConcentration: ConcentrationLow,
		},
		{
			ID:            "industrial_mfg",
			Name:          "Industrial Manufacturing",
			MarginRange:   Range{Min: 0.08, Max: 0.18},
			MultipleRange: Range{Min: 4.0, Max: 6.5},
			GrowthRange:   Range{Min: 0.00, Max: 0.06},
			RevenueRange:  MoneyRange{Min: 5_000, Max: 120_000},
			SubTypes:      []string{"precision_machining", "metal_fabrication", "injection_molding", "industrial_coatings"},
			AffinityGroups: map[string][]string{
				"metalwork": {"precision_machining", "metal_fabrication"},
				"process":   {"injection_molding", "industrial_coatings"},
			},
			SubTypeModifiers: map[string]SubTypeModifiers{
				"precision_machining": {MarginShift: 0.03, MultipleShift: 0.5},
			},
			QualityCeiling:      4,
			CapexRate:           0.07,
			ClientConcentration: ConcentrationHigh,
		},
		{
			ID:            "distribution",
			Name:          "Specialty Distribution",
			MarginRange:   Range{Min: 0.05, Max: 0.12},
			MultipleRange: Range{Min: 4.5, Max: 7.0},
			GrowthRange:   Range{Min: 0.01, Max: 0.08},
			RevenueRange:  MoneyRange{Min: 8_000, Max: 200_000},
			SubTypes:      []string{"industrial_supply", "medical_supply", "food_service", "electronics_components"},
			AffinityGroups: map[string][]string{
				"b2b_supply": {"industrial_supply", "electronics_components"},
				"regulated":  {"medical_supply", "food_service"},
			},
			SubTypeModifiers: map[string]SubTypeModifiers{
				"medical_supply": {MarginShift: 0.02, MultipleShift: 0.5, GrowthShift: 0.02},
			},
			QualityCeiling:      4,
			CapexRate:           0.02,
			ClientConcentration: ConcentrationMedium,
		},
		{
			ID:            "healthcare_services",
			Name:          "Healthcare Services",
			MarginRange:   Range{Min: 0.12, Max: 0.25},
			MultipleRange: Range{Min: 5.0, Max: 8.5},
			GrowthRange:   Range{Min: 0.03, Max: 0.12},
			RevenueRange:  MoneyRange{Min: 2_000, Max: 80_000},
			SubTypes:      []string{"dental", "dermatology", "physical_therapy", "home_health", "veterinary"},
			AffinityGroups: map[string][]string{
				"clinic_based":  {"dental", "dermatology", "physical_therapy", "veterinary"},
				"field_service": {"home_health"},
			},
			SubTypeModifiers: map[string]SubTypeModifiers{
				"veterinary":  {MultipleShift: 0.75, GrowthShift: 0.02},
				"home_health": {MarginShift: -0.03},
			},
			QualityCeiling:      5,
			CapexRate:           0.04,
			ClientConcentration: ConcentrationLow,
		},
		{
			ID:            "consumer_brands",
			Name:          "Consumer Brands",
			MarginRange:   Range{Min: 0.08, Max: 0.20},
			MultipleRange: Range{Min: 3.5, Max: 7.5},
			GrowthRange:   Range{Min: -0.02, Max: 0.18},
			RevenueRange:  MoneyRange{Min: 3_000, Max: 150_000},
			SubTypes:      []string{"food_beverage", "personal_care", "outdoor_recreation", "pet_products"},
			AffinityGroups: map[string][]string{
				"cpg":       {"food_beverage", "personal_care"},
				"lifestyle": {"outdoor_recreation", "pet_products"},
			},
			SubTypeModifiers: map[string]SubTypeModifiers{
				"pet_products": {GrowthShift: 0.03, MultipleShift: 0.5},
			},
			QualityCeiling:      5,
			CapexRate:           0.03,
			ClientConcentration: ConcentrationHigh,
		},
		{
			ID:            "business_software",
			Name:          "Business Software",
			MarginRange:   Range{Min: 0.15, Max: 0.35},
			MultipleRange: Range{Min: 6.0, Max: 11.0},
			GrowthRange:   Range{Min: 0.05, Max: 0.25},
			RevenueRange:  MoneyRange{Min: 1_000, Max: 60_000},
			SubTypes:      []string{"vertical_saas", "practice_management", "field_service_software", "compliance_tools"},
			AffinityGroups: map[string][]string{
				"workflow":    {"vertical_saas", "practice_management", "field_service_software"},
				"back_office": {"compliance_tools"},
			},
			SubTypeModifiers: map[string]SubTypeModifiers{
				"vertical_saas": {GrowthShift: 0.04, MultipleShift: 1.0},
			},
			QualityCeiling:      5,
			CapexRate:           0.01,
			ClientConcentration: ConcentrationMedium,
		},
	}
}

// Default returns the built-in in-memory catalog
func Default() *MemoryCatalog {
	return NewMemoryCatalog(DefaultSectors())
}
