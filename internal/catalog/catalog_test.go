package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	products := c.All()
	require.Len(t, products, 8)

	p, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Styling Pomade", p.Name)
	assert.Equal(t, 19.99, p.EffectivePrice())

	p, ok = c.Get(1)
	require.True(t, ok)
	assert.Equal(t, 28.99, p.EffectivePrice())

	_, ok = c.Get(99)
	assert.False(t, ok)
}

func TestSearchByCategory(t *testing.T) {
	c := Default()

	shampoos := c.Search(Query{Category: "shampoo"})
	require.Len(t, shampoos, 2)
	for _, p := range shampoos {
		assert.Equal(t, "shampoo", p.Category)
	}

	// "all" and empty behave the same.
	assert.Len(t, c.Search(Query{Category: "all"}), 8)
	assert.Len(t, c.Search(Query{}), 8)
}

func TestSearchByTerm(t *testing.T) {
	c := Default()

	// Matches name, case-insensitive.
	got := c.Search(Query{Search: "repair"})
	require.Len(t, got, 2)

	// Matches brand.
	got = c.Search(Query{Search: "aveda"})
	require.Len(t, got, 1)
	assert.Equal(t, "Styling Pomade", got[0].Name)

	// Category and term combine.
	got = c.Search(Query{Category: "treatment", Search: "repair"})
	require.Len(t, got, 1)
	assert.Equal(t, "Deep Repair Mask", got[0].Name)
}

func TestSortOrders(t *testing.T) {
	c := Default()

	featured := c.Search(Query{Sort: SortFeatured})
	require.Len(t, featured, 8)
	assert.True(t, featured[0].Bestseller)
	assert.True(t, featured[1].Bestseller)
	assert.True(t, featured[2].Bestseller)
	assert.False(t, featured[3].Bestseller)

	newest := c.Search(Query{Sort: SortNewest})
	assert.True(t, newest[0].IsNew)
	assert.True(t, newest[1].IsNew)
	assert.False(t, newest[2].IsNew)

	low := c.Search(Query{Sort: SortPriceLow})
	// Sale price wins: Styling Pomade at 19.99 comes first.
	assert.Equal(t, "Styling Pomade", low[0].Name)
	for i := 1; i < len(low); i++ {
		assert.LessOrEqual(t, low[i-1].EffectivePrice(), low[i].EffectivePrice())
	}

	high := c.Search(Query{Sort: SortPriceHigh})
	assert.Equal(t, "Hair Oil Treatment", high[0].Name)
}
