package grounding

import (
	"fmt"
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// Refs are the reference sets a hypothesis is checked against: every
// claim-type node id in the graph, the case-insensitive union of both
// documents' variable names, and the known synergy ids.
type Refs struct {
	ClaimIDs   map[string]bool
	Variables  map[string]bool
	SynergyIDs map[string]bool

	analysis model.SynergyAnalysis
}

func NewRefs(g *model.KnowledgeGraph, paperA, paperB model.DocumentRecord, analysis model.SynergyAnalysis) *Refs {
	refs := &Refs{
		ClaimIDs:   make(map[string]bool),
		Variables:  make(map[string]bool),
		SynergyIDs: make(map[string]bool),
		analysis:   analysis,
	}
	for _, id := range g.ClaimIDs() {
		refs.ClaimIDs[id] = true
	}
	for _, v := range paperA.Variables {
		refs.Variables[strings.ToLower(v)] = true
	}
	for _, v := range paperB.Variables {
		refs.Variables[strings.ToLower(v)] = true
	}
	for _, id := range analysis.SynergyIDs() {
		refs.SynergyIDs[id] = true
	}
	return refs
}

// Validate checks that everything the hypothesis references resolves to a
// real graph or vocabulary entry. Each violated category contributes one
// error naming the offending values. All violations in these categories are
// removable-list-member violations, so Fixable is true.
func Validate(card model.HypothesisRecord, refs *Refs) model.ValidationResult {
	var errs []string

	if invalid := missingFrom(card.SourceSupport.PaperAClaimIDs, refs.ClaimIDs, false); len(invalid) > 0 {
		errs = append(errs, fmt.Sprintf("Invalid Paper A claim IDs: [%s]", strings.Join(invalid, ", ")))
	}
	if invalid := missingFrom(card.SourceSupport.PaperBClaimIDs, refs.ClaimIDs, false); len(invalid) > 0 {
		errs = append(errs, fmt.Sprintf("Invalid Paper B claim IDs: [%s]", strings.Join(invalid, ", ")))
	}
	if invalid := missingFrom(card.SourceSupport.VariablesUsed, refs.Variables, true); len(invalid) > 0 {
		errs = append(errs, fmt.Sprintf("Invalid variables (not in input documents): [%s]", strings.Join(invalid, ", ")))
	}
	if card.PrimarySynergyID != "" && !refs.SynergyIDs[card.PrimarySynergyID] {
		errs = append(errs, fmt.Sprintf("Invalid primary_synergy_id: %s", card.PrimarySynergyID))
	}

	return model.ValidationResult{
		Valid:   len(errs) == 0,
		Errors:  errs,
		Fixable: true,
	}
}

func missingFrom(values []string, set map[string]bool, foldCase bool) []string {
	var invalid []string
	for _, v := range values {
		key := v
		if foldCase {
			key = strings.ToLower(v)
		}
		if !set[key] {
			invalid = append(invalid, v)
		}
	}
	return invalid
}
