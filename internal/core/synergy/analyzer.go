package synergy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tracelab/trace/internal/config"
	"github.com/tracelab/trace/internal/core/common"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/llm"
)

type Analyzer struct {
	LLM     llm.Client
	Prompts config.AnalysisPrompts
}

func NewAnalyzer(llmClient llm.Client, prompts config.AnalysisPrompts) *Analyzer {
	return &Analyzer{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Analyze compares two structured documents and returns overlapping
// variables, potential synergies and potential conflicts. Candidates must
// cite claim ids from both papers; the prompt enforces that, the grounding
// validator catches the rest.
func (a *Analyzer) Analyze(ctx context.Context, paperA, paperB model.DocumentRecord) (model.SynergyAnalysis, error) {
	var zero model.SynergyAnalysis

	aJSON, err := json.MarshalIndent(paperA, "", "  ")
	if err != nil {
		return zero, fmt.Errorf("failed to serialize paper A: %w", err)
	}
	bJSON, err := json.MarshalIndent(paperB, "", "  ")
	if err != nil {
		return zero, fmt.Errorf("failed to serialize paper B: %w", err)
	}

	prompt := fmt.Sprintf("%s\n\n%s", a.Prompts.System, fmt.Sprintf(a.Prompts.Synergy, aJSON, bJSON))

	response, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		return zero, fmt.Errorf("failed to generate synergy analysis: %w", err)
	}

	analysis, err := common.ParseOrReformat[model.SynergyAnalysis](ctx, a.LLM, response)
	if err != nil {
		return zero, fmt.Errorf("failed to parse synergy analysis: %w", err)
	}

	if analysis.OverlappingVariables == nil {
		analysis.OverlappingVariables = []string{}
	}
	if analysis.PotentialSynergies == nil {
		analysis.PotentialSynergies = []model.SynergyCandidate{}
	}
	if analysis.PotentialConflicts == nil {
		analysis.PotentialConflicts = []model.SynergyCandidate{}
	}

	return analysis, nil
}
