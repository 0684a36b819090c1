// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import "github.com/MJy1023/PaperPostman/pkg/types"

// Deduplicate drops papers whose identity key (upstream ID, else
// trimmed lowercased title) was already seen. The first occurrence
// wins. Papers with neither an ID nor a title share the empty key, so
// only the first of them survives.
func Deduplicate(papers []types.Paper) []types.Paper {
	seen := make(map[string]struct{}, len(papers))
	var deduped []types.Paper
	for _, p := range papers {
		key := p.IdentityKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, p)
	}
	return deduped
}
