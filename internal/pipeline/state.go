package pipeline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tracelab/trace/internal/core/model"
)

// State is the shared blackboard the pipeline nodes populate. Nodes read it
// concurrently but their writes are staged and committed by the runner one
// node at a time, so no locking is needed here.
type State struct {
	SessionID string

	PaperAText  string
	PaperATitle string
	PaperBText  string
	PaperBTitle string

	PaperA model.DocumentRecord
	PaperB model.DocumentRecord

	Graph    *model.KnowledgeGraph
	Analysis model.SynergyAnalysis
	Primary  model.SynergyCandidate

	Hypothesis model.HypothesisRecord
	Validation model.ValidationResult
	Mint       model.MintResult

	// Error and ErrorPhase are set once by the first failing node; every
	// downstream node then passes through without running.
	Error      string
	ErrorPhase string
}

func NewState(paperAText, paperATitle, paperBText, paperBTitle string) *State {
	return &State{
		SessionID:   strings.ReplaceAll(uuid.New().String(), "-", "")[:12],
		PaperAText:  paperAText,
		PaperATitle: paperATitle,
		PaperBText:  paperBText,
		PaperBTitle: paperBTitle,
	}
}

func (s *State) Failed() bool {
	return s.Error != ""
}
