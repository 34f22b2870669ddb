package synergy

import (
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// SelectPrimary picks the synergy the hypothesis should focus on. Each
// candidate scores one point per overlapping variable mentioned in its
// description (case-insensitive substring) plus half a point per supporting
// claim from either paper. Ties keep the earliest candidate. The false
// return means no candidates exist and the caller must treat the run as
// degenerate.
func SelectPrimary(candidates []model.SynergyCandidate, overlappingVariables []string) (model.SynergyCandidate, bool) {
	if len(candidates) == 0 {
		return model.SynergyCandidate{}, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	best := candidates[0]
	bestScore := -1.0

	for _, cand := range candidates {
		desc := strings.ToLower(cand.Description)

		score := 0.0
		for _, v := range overlappingVariables {
			if strings.Contains(desc, strings.ToLower(v)) {
				score++
			}
		}
		score += 0.5 * float64(len(cand.PaperASupport)+len(cand.PaperBSupport))

		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	return best, true
}
