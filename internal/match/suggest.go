package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the folded similarity a candidate needs to be suggested.
const MinSimilarity = 0.5

// Suggest returns up to limit candidates closest to name, best first.
// Candidates are compared in folded form; a candidate equal to name is
// never suggested. Ties keep candidate order.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}

	folded := Fold(name)

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(folded, Fold(c)); s >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
