package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// Build constructs the cross-document knowledge graph from two validated
// documents. Node ids are deterministic ({A|B}_claim_{i}, {A|B}_var_{i},
// 1-based, list order preserved). Every claim is linked to every variable of
// the same document with a uses_variable edge; the source data carries no
// finer claim-variable linkage, so the dense bipartite association is
// intentional.
func Build(paperA, paperB model.DocumentRecord) (*model.KnowledgeGraph, error) {
	// Validate both documents so the failure names every absent field, not
	// just Paper A's.
	errA := paperA.Validate("Paper A")
	errB := paperB.Validate("Paper B")
	if errA != nil || errB != nil {
		return nil, errors.Join(errA, errB)
	}

	g := &model.KnowledgeGraph{}
	addDocument(g, model.OriginA, paperA)
	addDocument(g, model.OriginB, paperB)
	return g, nil
}

func addDocument(g *model.KnowledgeGraph, origin model.Origin, doc model.DocumentRecord) {
	for i, claim := range doc.Claims {
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:     fmt.Sprintf("%s_claim_%d", origin, i+1),
			Type:   model.NodeClaim,
			Source: origin,
			Text:   claim,
		})
	}
	for i, v := range doc.Variables {
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:     fmt.Sprintf("%s_var_%d", origin, i+1),
			Type:   model.NodeVariable,
			Source: origin,
			Text:   v,
		})
	}
	for i := range doc.Claims {
		for j := range doc.Variables {
			g.Edges = append(g.Edges, model.GraphEdge{
				Source:   fmt.Sprintf("%s_claim_%d", origin, i+1),
				Target:   fmt.Sprintf("%s_var_%d", origin, j+1),
				Relation: model.RelationUsesVariable,
			})
		}
	}
}

// OverlapNodeID derives the node id for an overlapping variable name:
// lowercase, spaces replaced with underscores.
func OverlapNodeID(name string) string {
	return "var_" + strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
