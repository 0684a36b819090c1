// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

func recommendationPool() []types.Paper {
	return []types.Paper{
		{ID: "c1", Title: "Venue One", Conference: "NeurIPS.2025"},
		{ID: "c2", Title: "Venue Two", Conference: "ICLR.2026"},
		{ID: "c3", Title: "Venue Three", Conference: "ICML.2025"},
		{ID: "a1", Title: "Feed One"},
		{ID: "a2", Title: "Feed Two"},
	}
}

func TestSelectRandomFiltersBySource(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	picked := SelectRandom(recommendationPool(), 2, FromConferences, rng)
	assert.Len(t, picked, 2)
	for _, p := range picked {
		assert.NotEmpty(t, p.Conference)
	}

	picked = SelectRandom(recommendationPool(), 5, FromArxiv, rng)
	assert.Len(t, picked, 2)
	for _, p := range picked {
		assert.Empty(t, p.Conference)
	}
}

func TestSelectRandomBothTakesEverything(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	picked := SelectRandom(recommendationPool(), 10, FromBoth, rng)
	assert.ElementsMatch(t, recommendationPool(), picked)
}

func TestSelectRandomWithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	picked := SelectRandom(recommendationPool(), 3, FromConferences, rng)
	assert.Len(t, picked, 3)

	seen := map[string]bool{}
	for _, p := range picked {
		assert.False(t, seen[p.ID], p.ID)
		seen[p.ID] = true
	}
}

func TestSelectRandomIsReproducible(t *testing.T) {
	first := SelectRandom(recommendationPool(), 2, FromConferences, rand.New(rand.NewSource(42)))
	second := SelectRandom(recommendationPool(), 2, FromConferences, rand.New(rand.NewSource(42)))
	assert.Equal(t, first, second)
}

func TestSelectRandomEdgeCases(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Empty(t, SelectRandom(nil, 3, FromBoth, rng))
	assert.Empty(t, SelectRandom(recommendationPool(), 0, FromBoth, rng))
	assert.Empty(t, SelectRandom(recommendationPool(), -1, FromBoth, rng))

	// No conference papers in the pool leaves nothing to recommend.
	feedsOnly := []types.Paper{{ID: "a1"}, {ID: "a2"}}
	assert.Empty(t, SelectRandom(feedsOnly, 1, FromConferences, rng))
}

func TestSelectRandomDoesNotMutateInput(t *testing.T) {
	papers := recommendationPool()
	SelectRandom(papers, 5, FromBoth, rand.New(rand.NewSource(9)))
	assert.Equal(t, recommendationPool(), papers)
}
