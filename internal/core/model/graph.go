package model

type NodeType string

const (
	NodeClaim    NodeType = "claim"
	NodeVariable NodeType = "variable"
)

type Origin string

const (
	OriginA    Origin = "A"
	OriginB    Origin = "B"
	OriginBoth Origin = "both"
)

type Relation string

const (
	RelationUsesVariable      Relation = "uses_variable"
	RelationPotentialSynergy  Relation = "potential_synergy"
	RelationPotentialConflict Relation = "potential_conflict"
)

type GraphNode struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	Source Origin   `json:"source"`
	Text   string   `json:"text"`
}

type GraphEdge struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Relation   Relation `json:"relation"`
	SynergyID  string   `json:"synergy_id,omitempty"`
	ConflictID string   `json:"conflict_id,omitempty"`
}

// KnowledgeGraph links claims and variables across two documents. Nodes are
// unique by id; edges may repeat. Enhancement appends, never removes.
type KnowledgeGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

func (g *KnowledgeGraph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// ClaimIDs returns the ids of all claim-type nodes in insertion order.
func (g *KnowledgeGraph) ClaimIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Type == NodeClaim {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
