package model

// SynergyCandidate is an externally generated cross-document relationship,
// supported by claim ids from both papers. Read-only once produced.
type SynergyCandidate struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	PaperASupport []string `json:"paper_A_support"`
	PaperBSupport []string `json:"paper_B_support"`
}

// SynergyAnalysis is the cross-document comparison result used to enhance
// the knowledge graph and to pick the primary synergy.
type SynergyAnalysis struct {
	OverlappingVariables []string           `json:"overlapping_variables"`
	PotentialSynergies   []SynergyCandidate `json:"potential_synergies"`
	PotentialConflicts   []SynergyCandidate `json:"potential_conflicts"`
}

func (a *SynergyAnalysis) SynergyIDs() []string {
	ids := make([]string, 0, len(a.PotentialSynergies))
	for _, s := range a.PotentialSynergies {
		ids = append(ids, s.ID)
	}
	return ids
}
