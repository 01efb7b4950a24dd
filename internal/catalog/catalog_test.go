package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkang34/holdco-tycoon-sub000/internal/domain"
)

func TestAffinity(t *testing.T) {
	cat := Default()
	sector, ok := cat.Sector("home_services")
	require.True(t, ok)

	tests := []struct {
		name     string
		a, b     string
		expected domain.SubTypeAffinity
	}{
		{name: "identical sub-types match", a: "hvac", b: "hvac", expected: domain.AffinityMatch},
		{name: "same affinity group is related", a: "hvac", b: "plumbing", expected: domain.AffinityRelated},
		{name: "different groups are distant", a: "hvac", b: "roofing", expected: domain.AffinityDistant},
		{name: "unknown sub-type is distant", a: "hvac", b: "bakery", expected: domain.AffinityDistant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sector.Affinity(tt.a, tt.b))
		})
	}
}

func TestMultipleMidpoint(t *testing.T) {
	s := Sector{MultipleRange: Range{Min: 3.0, Max: 5.5}}
	assert.InDelta(t, 4.25, s.MultipleMidpoint(), 1e-9)
}

func TestDefaultSectorsConsistency(t *testing.T) {
	sectors := DefaultSectors()
	require.NotEmpty(t, sectors)

	for _, s := range sectors {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.SubTypes, "sector %s has no sub-types", s.ID)

		assert.LessOrEqual(t, s.MarginRange.Min, s.MarginRange.Max, "sector %s", s.ID)
		assert.LessOrEqual(t, s.MultipleRange.Min, s.MultipleRange.Max, "sector %s", s.ID)
		assert.LessOrEqual(t, s.GrowthRange.Min, s.GrowthRange.Max, "sector %s", s.ID)
		assert.LessOrEqual(t, s.RevenueRange.Min, s.RevenueRange.Max, "sector %s", s.ID)

		assert.GreaterOrEqual(t, s.QualityCeiling, 3, "sector %s", s.ID)
		assert.LessOrEqual(t, s.QualityCeiling, domain.MaxQuality, "sector %s", s.ID)

		// Affinity groups and modifiers only reference declared sub-types.
		for group, members := range s.AffinityGroups {
			for _, m := range members {
				assert.True(t, s.HasSubType(m), "sector %s group %s references unknown sub-type %s", s.ID, group, m)
			}
		}
		for st := range s.SubTypeModifiers {
			assert.True(t, s.HasSubType(st), "sector %s modifies unknown sub-type %s", s.ID, st)
		}
	}
}

func TestMemoryCatalogOrder(t *testing.T) {
	cat := Default()
	ids := cat.SectorIDs()
	require.Len(t, ids, len(DefaultSectors()))
	assert.Equal(t, "home_services", ids[0])

	// Order survives round-tripping through Sectors.
	sectors := cat.Sectors()
	for i, s := range sectors {
		assert.Equal(t, ids[i], s.ID)
	}
}

func TestMemoryCatalogDuplicateIDs(t *testing.T) {
	cat := NewMemoryCatalog([]Sector{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
	})
	require.Len(t, cat.SectorIDs(), 1)
	s, ok := cat.Sector("a")
	require.True(t, ok)
	assert.Equal(t, "first", s.Name)
}

func TestSectorLookupMiss(t *testing.T) {
	cat := Default()
	_, ok := cat.Sector("does_not_exist")
	assert.False(t, ok)
}
