package graph

import (
	"github.com/tracelab/trace/internal/core/model"
)

// Enhance augments the graph with the synergy analysis result: one node per
// overlapping variable and one edge per support pair of each synergy and
// conflict. A candidate with N paper-A and M paper-B support ids yields
// exactly N×M edges. Existing nodes and edges are never removed.
func Enhance(g *model.KnowledgeGraph, analysis model.SynergyAnalysis) {
	for _, name := range analysis.OverlappingVariables {
		id := OverlapNodeID(name)
		if g.HasNode(id) {
			continue
		}
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:     id,
			Type:   model.NodeVariable,
			Source: model.OriginBoth,
			Text:   name,
		})
	}

	for _, syn := range analysis.PotentialSynergies {
		for _, a := range syn.PaperASupport {
			for _, b := range syn.PaperBSupport {
				g.Edges = append(g.Edges, model.GraphEdge{
					Source:    a,
					Target:    b,
					Relation:  model.RelationPotentialSynergy,
					SynergyID: syn.ID,
				})
			}
		}
	}

	for _, conf := range analysis.PotentialConflicts {
		for _, a := range conf.PaperASupport {
			for _, b := range conf.PaperBSupport {
				g.Edges = append(g.Edges, model.GraphEdge{
					Source:     a,
					Target:     b,
					Relation:   model.RelationPotentialConflict,
					ConflictID: conf.ID,
				})
			}
		}
	}
}
