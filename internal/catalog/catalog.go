// Package catalog implements the Sector Catalog collaborator: per-sector
// financial ranges, sub-types and their operational affinity groups.
// Consumed read-only by every engine module.
package catalog

import "github.com/peterkang34/holdco-tycoon-sub000/internal/domain"

// Range is an inclusive float band
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MoneyRange is an inclusive band in whole thousands
type MoneyRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// ConcentrationTier classifies typical client concentration in a sector
type ConcentrationTier string

const (
	ConcentrationLow    ConcentrationTier = "low"
	ConcentrationMedium ConcentrationTier = "medium"
	ConcentrationHigh   ConcentrationTier = "high"
)

// SubTypeModifiers shifts sector baselines for a specific sub-type
type SubTypeModifiers struct {
	MarginShift   float64 `json:"margin_shift"`
	GrowthShift   float64 `json:"growth_shift"`
	MultipleShift float64 `json:"multiple_shift"`
}

// Sector describes one acquirable sector
type Sector struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	MarginRange   Range      `json:"margin_range"`
	MultipleRange Range      `json:"multiple_range"`
	GrowthRange   Range      `json:"growth_range"`
	RevenueRange  MoneyRange `json:"revenue_range"`

	SubTypes         []string                    `json:"sub_types"`
	AffinityGroups   map[string][]string         `json:"affinity_groups"`
	SubTypeModifiers map[string]SubTypeModifiers `json:"sub_type_modifiers"`

	// QualityCeiling is the highest quality rating attainable in the
	// sector; turnaround programs cannot lift a business past it.
	QualityCeiling int `json:"quality_ceiling"`

	CapexRate           float64           `json:"capex_rate"`
	ClientConcentration ConcentrationTier `json:"client_concentration"`
}

// MultipleMidpoint returns the middle of the sector's acquisition
// multiple range, used as the distressed-seller price cap.
func (s Sector) MultipleMidpoint() float64 {
	return (s.MultipleRange.Min + s.MultipleRange.Max) / 2
}

// Modifiers returns the financial modifiers for a sub-type, zero when the
// sub-type carries none.
func (s Sector) Modifiers(subType string) SubTypeModifiers {
	return s.SubTypeModifiers[subType]
}

// HasSubType reports whether a sub-type is valid for the sector
func (s Sector) HasSubType(subType string) bool {
	for _, st := range s.SubTypes {
		if st == subType {
			return true
		}
	}
	return false
}

// Affinity classifies how operationally close two sub-types are within the
// sector: identical sub-types match, members of the same affinity group are
// related, everything else is distant.
func (s Sector) Affinity(a, b string) domain.SubTypeAffinity {
	if a == b {
		return domain.AffinityMatch
	}
	for _, members := range s.AffinityGroups {
		foundA, foundB := false, false
		for _, m := range members {
			if m == a {
				foundA = true
			}
			if m == b {
				foundB = true
			}
		}
		if foundA && foundB {
			return domain.AffinityRelated
		}
	}
	return domain.AffinityDistant
}

// Catalog is the read-only sector lookup consumed by the engine
type Catalog interface {
	Sector(id string) (Sector, bool)
	Sectors() []Sector
	SectorIDs() []string
}

// MemoryCatalog is an immutable in-memory Catalog
type MemoryCatalog struct {
	sectors map[string]Sector
	order   []string
}

// NewMemoryCatalog builds a catalog from sector definitions, preserving
// the given order.
func NewMemoryCatalog(sectors []Sector) *MemoryCatalog {
	c := &MemoryCatalog{sectors: make(map[string]Sector, len(sectors))}
	for _, s := range sectors {
		if _, dup := c.sectors[s.ID]; dup {
			continue
		}
		c.sectors[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c
}

// Sector returns a sector definition by id
func (c *MemoryCatalog) Sector(id string) (Sector, bool) {
	s, ok := c.sectors[id]
	return s, ok
}

// Sectors returns all sector definitions in catalog order
func (c *MemoryCatalog) Sectors() []Sector {
	out := make([]Sector, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.sectors[id])
	}
	return out
}

// SectorIDs returns all sector ids in catalog order
func (c *MemoryCatalog) SectorIDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
