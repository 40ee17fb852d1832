package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

func TestSeedSizes(t *testing.T) {
	assert.Len(t, SeedServices(), 7)
	assert.Len(t, SeedExtras(), 8)
	assert.Len(t, SeedRegions(), 9)
	assert.Len(t, SeedSuburbs(), 17)
	assert.Len(t, SeedCleaners(), 10)
}

func TestSeedServices(t *testing.T) {
	services := SeedServices()

	assert.Equal(t, "standard-house-cleaning", services[0].Slug)
	require.NotNil(t, services[0].PerBedroomPrice)
	assert.Equal(t, "60", services[0].PerBedroomPrice.String())
	assert.Nil(t, services[2].PerBedroomPrice, "office cleaning is not priced per room")
	assert.Equal(t, "move-in-move-out-cleaning", services[5].Slug)
}

func TestSeedSuburbsCarryRegion(t *testing.T) {
	for _, s := range SeedSuburbs() {
		assert.Equal(t, s.RegionID, s.Region.ID)
		assert.NotEmpty(t, s.Region.Name)
	}
}

func TestSeedReturnsFreshSlices(t *testing.T) {
	first := SeedExtras()
	first[0].Name = "changed"
	assert.Equal(t, "Window Cleaning", SeedExtras()[0].Name)
}

func TestResult(t *testing.T) {
	cause := errors.New("mongo unreachable")
	r := Fallback(SeedSuburbs(), cause)

	assert.True(t, r.Degraded())
	assert.ErrorIs(t, r.Cause, cause)

	gauteng := r.Filter(func(s entity.Suburb) bool { return s.Region.Name == "Gauteng" })
	assert.Len(t, gauteng.Items, 4)
	assert.Equal(t, SourceFallback, gauteng.Source)

	found, ok := r.First(func(s entity.Suburb) bool { return s.Name == "Umhlanga" })
	require.True(t, ok)
	assert.Equal(t, "KwaZulu-Natal", found.Region.Name)

	_, ok = r.First(func(s entity.Suburb) bool { return s.Name == "Atlantis" })
	assert.False(t, ok)

	live := Live[entity.Region](nil)
	assert.False(t, live.Degraded())
	assert.NotNil(t, live.Items)
	assert.Equal(t, SourceCache, Cached([]int{1}).Source)
}
