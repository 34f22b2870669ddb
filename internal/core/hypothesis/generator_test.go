package hypothesis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracelab/trace/internal/config"
	"github.com/tracelab/trace/internal/core/model"
)

func testInputs() Inputs {
	return Inputs{
		PaperA: model.DocumentRecord{Variables: []string{"temperature"}},
		PaperB: model.DocumentRecord{Variables: []string{"temperature", "voltage"}},
		Graph: &model.KnowledgeGraph{
			Nodes: []model.GraphNode{
				{ID: "A_claim_1", Type: model.NodeClaim, Source: model.OriginA},
				{ID: "B_claim_1", Type: model.NodeClaim, Source: model.OriginB},
			},
		},
		Analysis: model.SynergyAnalysis{
			PotentialSynergies: []model.SynergyCandidate{
				{ID: "syn_1", Description: "shared temperature dependence"},
			},
		},
		Primary: model.SynergyCandidate{ID: "syn_1", Description: "shared temperature dependence"},
	}
}

func testPrompts() config.HypothesisPrompts {
	return config.HypothesisPrompts{
		System:   "You generate falsifiable hypotheses.",
		Baseline: "Synergy:\n%s\n\nPaper A:\n%s\n\nPaper B:\n%s",
	}
}

func cardJSON(t *testing.T, card model.HypothesisRecord) string {
	t.Helper()
	data, err := json.Marshal(card)
	require.NoError(t, err)
	return string(data)
}

func groundedCard() model.HypothesisRecord {
	return model.HypothesisRecord{
		PrimarySynergyID: "syn_1",
		Hypothesis:       "If temperature rises, voltage drops.",
		Rationale:        "Both papers observe temperature effects.",
		SourceSupport: model.SourceSupport{
			PaperAClaimIDs: []string{"A_claim_1"},
			PaperBClaimIDs: []string{"B_claim_1"},
			VariablesUsed:  []string{"temperature", "voltage"},
		},
		Confidence: model.ConfidenceHigh,
	}
}

func TestGenerateFirstAttemptValid(t *testing.T) {
	mock := &MockLLMClient{ResponseQueue: []string{cardJSON(t, groundedCard())}}
	g := &Generator{LLM: mock, Prompts: testPrompts()}

	card, result, err := g.Generate(context.Background(), testInputs())

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Len(t, mock.Prompts, 1)
	assert.True(t, strings.HasPrefix(card.HypothesisID, "trace_hyp_"))
	assert.Len(t, card.HypothesisID, len("trace_hyp_")+8)
	assert.Equal(t, model.ConfidenceHigh, card.Confidence)
}

func TestGenerateRetriesWithValidationFeedback(t *testing.T) {
	bad := groundedCard()
	bad.SourceSupport.PaperAClaimIDs = []string{"A_claim_1", "A_claim_99"}

	mock := &MockLLMClient{ResponseQueue: []string{
		cardJSON(t, bad),
		cardJSON(t, groundedCard()),
	}}
	g := &Generator{LLM: mock, Prompts: testPrompts()}

	card, result, err := g.Generate(context.Background(), testInputs())

	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.Len(t, mock.Prompts, 2)
	// The retry prompt is the first prompt with the feedback appended.
	assert.True(t, strings.HasPrefix(mock.Prompts[1], mock.Prompts[0]))
	assert.Contains(t, mock.Prompts[1], "A_claim_99")
	assert.Contains(t, mock.Prompts[1], "Valid claim IDs: A_claim_1, B_claim_1")
	assert.Contains(t, mock.Prompts[1], "Valid synergy IDs: syn_1")
	assert.Equal(t, []string{"A_claim_1"}, card.SourceSupport.PaperAClaimIDs)
}

func TestGenerateRepairsAfterRetriesExhausted(t *testing.T) {
	bad := groundedCard()
	bad.SourceSupport.PaperAClaimIDs = []string{"A_claim_1", "A_claim_99"}
	bad.SourceSupport.VariablesUsed = []string{"temperature", "pressure"}

	mock := &MockLLMClient{ResponseQueue: []string{cardJSON(t, bad)}}
	g := &Generator{LLM: mock, Prompts: testPrompts()}

	card, result, err := g.Generate(context.Background(), testInputs())

	require.NoError(t, err)
	// Initial attempt plus two retries, never more.
	assert.Len(t, mock.Prompts, 3)
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"A_claim_1"}, card.SourceSupport.PaperAClaimIDs)
	assert.Equal(t, []string{"temperature"}, card.SourceSupport.VariablesUsed)
}

func TestGenerateTransportErrorIsFatal(t *testing.T) {
	mock := &MockLLMClient{Err: errors.New("connection refused")}
	g := &Generator{LLM: mock, Prompts: testPrompts()}

	_, _, err := g.Generate(context.Background(), testInputs())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hypothesis generation failed")
	assert.Len(t, mock.Prompts, 1)
}

func TestGenerateFillsDefaults(t *testing.T) {
	card := groundedCard()
	card.PrimarySynergyID = ""
	card.Confidence = "very high"

	mock := &MockLLMClient{ResponseQueue: []string{cardJSON(t, card)}}
	g := &Generator{LLM: mock, Prompts: testPrompts()}

	got, result, err := g.Generate(context.Background(), testInputs())

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "syn_1", got.PrimarySynergyID)
	assert.Equal(t, model.ConfidenceMedium, got.Confidence)
	assert.NotNil(t, got.RiskNotes)
}

func TestGenerateFreshIDPerAttempt(t *testing.T) {
	mock := &MockLLMClient{ResponseQueue: []string{
		cardJSON(t, groundedCard()),
		cardJSON(t, groundedCard()),
	}}
	g := &Generator{LLM: mock, Prompts: testPrompts()}

	first, _, err := g.Generate(context.Background(), testInputs())
	require.NoError(t, err)
	second, _, err := g.Generate(context.Background(), testInputs())
	require.NoError(t, err)

	assert.NotEqual(t, first.HypothesisID, second.HypothesisID)
}
