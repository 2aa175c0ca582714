package schema

import (
	"github.com/sahilm/fuzzy"
)

// Suggest returns the known key closest to an unknown one, or "" when nothing
// is close. A key is close when either name is a fuzzy subsequence of the
// other, which covers dropped letters (updat_interval) and extra letters
// (update_intervall).
func Suggest(unknown string, known []string) string {
	if len(known) == 0 || unknown == "" {
		return ""
	}

	if matches := fuzzy.Find(unknown, known); len(matches) > 0 {
		return matches[0].Str
	}

	best := ""
	bestScore := 0
	for _, candidate := range known {
		matches := fuzzy.Find(candidate, []string{unknown})
		if len(matches) == 0 {
			continue
		}
		// Short candidates match inside almost anything.
		if len(candidate)*2 < len(unknown) {
			continue
		}
		if best == "" || matches[0].Score > bestScore {
			best = candidate
			bestScore = matches[0].Score
		}
	}
	return best
}
