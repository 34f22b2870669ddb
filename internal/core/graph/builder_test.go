package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracelab/trace/internal/core/model"
)

func validDoc(claims, variables []string) model.DocumentRecord {
	return model.DocumentRecord{
		Claims:              claims,
		Methods:             []string{},
		Evidence:            []string{},
		ExplicitLimitations: []string{},
		ImplicitLimitations: []string{},
		Variables:           variables,
	}
}

func TestBuildTwoDocuments(t *testing.T) {
	paperA := validDoc([]string{"c1", "c2"}, []string{"temperature"})
	paperB := validDoc([]string{"c3"}, []string{"temperature", "voltage"})

	g, err := Build(paperA, paperB)
	require.NoError(t, err)

	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"A_claim_1", "A_claim_2", "A_var_1", "B_claim_1", "B_var_1", "B_var_2"}, ids)

	// 2 claims × 1 variable in A, 1 claim × 2 variables in B.
	assert.Len(t, g.Edges, 4)
	for _, e := range g.Edges {
		assert.Equal(t, model.RelationUsesVariable, e.Relation)
	}
}

func TestBuildScenarioEdgeCount(t *testing.T) {
	// A has one variable so only 2 of the edges come from A; B contributes 2
	// for its single claim. With one shared variable name the pre-enhancement
	// graph still keeps per-document variable nodes separate.
	paperA := validDoc([]string{"c1", "c2"}, []string{"temperature"})
	paperB := validDoc([]string{"c3"}, []string{"temperature"})

	g, err := Build(paperA, paperB)
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 5)
	assert.Len(t, g.Edges, 3)
}

func TestBuildDeterministic(t *testing.T) {
	paperA := validDoc([]string{"c1"}, []string{"x", "y"})
	paperB := validDoc([]string{"c2"}, []string{"z"})

	g1, err := Build(paperA, paperB)
	require.NoError(t, err)
	g2, err := Build(paperA, paperB)
	require.NoError(t, err)

	assert.Equal(t, g1, g2)
}

func TestBuildMissingFields(t *testing.T) {
	paperA := model.DocumentRecord{Claims: []string{"c1"}, Variables: []string{"x"}}
	paperB := validDoc([]string{"c2"}, []string{"y"})

	_, err := Build(paperA, paperB)

	var missing *model.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "Paper A", missing.Document)
	assert.Equal(t, []string{"methods", "evidence", "explicit_limitations", "implicit_limitations"}, missing.Fields)
}

func TestBuildMissingFieldsBothDocuments(t *testing.T) {
	paperA := model.DocumentRecord{Claims: []string{"c1"}, Variables: []string{"x"}}
	paperB := model.DocumentRecord{Methods: []string{"m1"}}

	_, err := Build(paperA, paperB)

	require.Error(t, err)
	// Every absent field of both documents is named.
	assert.Contains(t, err.Error(), "Paper A missing required fields: [methods, evidence, explicit_limitations, implicit_limitations]")
	assert.Contains(t, err.Error(), "Paper B missing required fields: [claims, evidence, explicit_limitations, implicit_limitations, variables]")

	var missing *model.MissingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestOverlapNodeID(t *testing.T) {
	assert.Equal(t, "var_state_of_health", OverlapNodeID("State of Health"))
	assert.Equal(t, "var_temperature", OverlapNodeID("temperature"))
}
