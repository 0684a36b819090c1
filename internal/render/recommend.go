// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"math/rand"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// Recommendation pools. Anything else selects from all papers.
const (
	FromConferences = "conferences"
	FromArxiv       = "arxiv"
	FromBoth        = "both"
)

// SelectRandom picks up to count papers from the pool named by source,
// without replacement. Papers with a conference label count as
// conference papers; everything else as arXiv. The rng makes selection
// reproducible in tests; pass nil to use the package-global source.
func SelectRandom(papers []types.Paper, count int, source string, rng *rand.Rand) []types.Paper {
	var pool []types.Paper
	switch source {
	case FromConferences:
		for _, p := range papers {
			if p.Conference != "" {
				pool = append(pool, p)
			}
		}
	case FromArxiv:
		for _, p := range papers {
			if p.Conference == "" {
				pool = append(pool, p)
			}
		}
	default:
		pool = append(pool, papers...)
	}

	if len(pool) == 0 || count <= 0 {
		return nil
	}
	if count > len(pool) {
		count = len(pool)
	}

	shuffle := func(n int, swap func(i, j int)) {
		if rng != nil {
			rng.Shuffle(n, swap)
			return
		}
		rand.Shuffle(n, swap)
	}
	shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:count]
}
