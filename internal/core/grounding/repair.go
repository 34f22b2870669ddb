package grounding

import (
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// Repair strips every ungrounded reference from the hypothesis so that the
// result always passes Validate against the same refs. Invalid claim ids and
// variables are dropped from their lists; an invalid primary_synergy_id is
// replaced with the first known synergy id, or cleared when none exist.
// Running Repair on an already-valid card returns it unchanged.
func Repair(card model.HypothesisRecord, refs *Refs) model.HypothesisRecord {
	card.SourceSupport.PaperAClaimIDs = keepMembers(card.SourceSupport.PaperAClaimIDs, refs.ClaimIDs, false)
	card.SourceSupport.PaperBClaimIDs = keepMembers(card.SourceSupport.PaperBClaimIDs, refs.ClaimIDs, false)
	card.SourceSupport.VariablesUsed = keepMembers(card.SourceSupport.VariablesUsed, refs.Variables, true)

	if card.PrimarySynergyID != "" && !refs.SynergyIDs[card.PrimarySynergyID] {
		card.PrimarySynergyID = ""
		for _, s := range refs.analysis.PotentialSynergies {
			card.PrimarySynergyID = s.ID
			break
		}
	}
	return card
}

func keepMembers(values []string, set map[string]bool, foldCase bool) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		key := v
		if foldCase {
			key = strings.ToLower(v)
		}
		if set[key] {
			kept = append(kept, v)
		}
	}
	return kept
}
