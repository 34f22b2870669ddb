package hypothesis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tracelab/trace/internal/config"
	"github.com/tracelab/trace/internal/core/common"
	"github.com/tracelab/trace/internal/core/grounding"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/llm"
)

// maxRetries bounds regeneration after a failed grounding check. The initial
// attempt plus retries means at most three generation calls per hypothesis.
const maxRetries = 2

// Generator produces a grounded hypothesis card from the analyzed pair of
// documents. A card that fails validation is regenerated with the validation
// errors folded into the prompt; when retries are exhausted the last card is
// deterministically repaired instead.
type Generator struct {
	LLM     llm.Client
	Prompts config.HypothesisPrompts
}

// Inputs bundles everything the generation loop grounds against.
type Inputs struct {
	PaperA   model.DocumentRecord
	PaperB   model.DocumentRecord
	Graph    *model.KnowledgeGraph
	Analysis model.SynergyAnalysis
	Primary  model.SynergyCandidate
}

func (g *Generator) Generate(ctx context.Context, in Inputs) (model.HypothesisRecord, model.ValidationResult, error) {
	refs := grounding.NewRefs(in.Graph, in.PaperA, in.PaperB, in.Analysis)

	base, err := g.basePrompt(in)
	if err != nil {
		return model.HypothesisRecord{}, model.ValidationResult{}, err
	}
	prompt := base

	var card model.HypothesisRecord
	var result model.ValidationResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		response, err := g.LLM.Generate(ctx, prompt)
		if err != nil {
			return model.HypothesisRecord{}, model.ValidationResult{}, fmt.Errorf("hypothesis generation failed: %w", err)
		}

		card, err = common.ParseOrReformat[model.HypothesisRecord](ctx, g.LLM, response)
		if err != nil {
			return model.HypothesisRecord{}, model.ValidationResult{}, fmt.Errorf("hypothesis generation failed: %w", err)
		}
		card = fillDefaults(card, in.Primary)

		result = grounding.Validate(card, refs)
		if result.Valid {
			return card, result, nil
		}
		prompt = retryPrompt(base, result.Errors, refs)
	}

	// Retries exhausted. Grounding violations are all list-member removals,
	// so repair always converges; anything else is downgraded and flagged.
	if result.Fixable {
		card = grounding.Repair(card, refs)
		result = grounding.Validate(card, refs)
		return card, result, nil
	}
	card.Confidence = model.ConfidenceLow
	card.RiskNotes = append(card.RiskNotes, "hypothesis failed grounding validation and could not be repaired")
	return card, result, nil
}

func (g *Generator) basePrompt(in Inputs) (string, error) {
	primaryJSON, err := json.MarshalIndent(in.Primary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize primary synergy: %w", err)
	}
	aJSON, err := json.MarshalIndent(in.PaperA, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize document A: %w", err)
	}
	bJSON, err := json.MarshalIndent(in.PaperB, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize document B: %w", err)
	}
	return g.Prompts.System + "\n\n" + fmt.Sprintf(g.Prompts.Baseline, primaryJSON, aJSON, bJSON), nil
}

// retryPrompt extends the base prompt with the previous attempt's validation
// errors and the exact identifier vocabulary the card may reference. Lists
// are sorted so the same failure always produces the same prompt.
func retryPrompt(base string, errs []string, refs *grounding.Refs) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nYour previous attempt referenced identifiers that do not exist:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	b.WriteString("\nUse ONLY these identifiers:\n")
	b.WriteString("Valid claim IDs: " + strings.Join(sortedKeys(refs.ClaimIDs), ", ") + "\n")
	b.WriteString("Valid variables: " + strings.Join(sortedKeys(refs.Variables), ", ") + "\n")
	b.WriteString("Valid synergy IDs: " + strings.Join(sortedKeys(refs.SynergyIDs), ", ") + "\n")
	return b.String()
}

// fillDefaults assigns a fresh hypothesis id and normalizes fields the model
// tends to leave out. Every generation attempt gets its own id.
func fillDefaults(card model.HypothesisRecord, primary model.SynergyCandidate) model.HypothesisRecord {
	card.HypothesisID = newHypothesisID()
	if card.PrimarySynergyID == "" {
		card.PrimarySynergyID = primary.ID
	}
	switch card.Confidence {
	case model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh:
	default:
		card.Confidence = model.ConfidenceMedium
	}
	if card.RiskNotes == nil {
		card.RiskNotes = []string{}
	}
	return card
}

func newHypothesisID() string {
	return "trace_hyp_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
