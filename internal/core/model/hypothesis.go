package model

const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

type SourceSupport struct {
	PaperAClaimIDs []string `json:"paper_A_claim_ids"`
	PaperBClaimIDs []string `json:"paper_B_claim_ids"`
	VariablesUsed  []string `json:"variables_used"`
}

type ProposedExperiment struct {
	Description       string   `json:"description"`
	Measurements      []string `json:"measurements"`
	ExpectedDirection string   `json:"expected_direction"`
}

// HypothesisRecord is the generated hypothesis card. It is mutable during
// validation and repair, and frozen once handed to the attestation layer.
type HypothesisRecord struct {
	HypothesisID       string             `json:"hypothesis_id"`
	PrimarySynergyID   string             `json:"primary_synergy_id"`
	Hypothesis         string             `json:"hypothesis"`
	Rationale          string             `json:"rationale"`
	SourceSupport      SourceSupport      `json:"source_support"`
	ProposedExperiment ProposedExperiment `json:"proposed_experiment"`
	Confidence         string             `json:"confidence"`
	RiskNotes          []string           `json:"risk_notes"`
}

// ValidationResult is the outcome of semantic grounding checks. Errors are
// human-readable, one per violated category. Fixable means every violation
// can be resolved by removing list members.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors"`
	Fixable bool     `json:"fixable"`
}

// AttestationRecord is the derived, read-only minting metadata for one
// hypothesis. TxID is filled in after the ledger write.
type AttestationRecord struct {
	CanonicalJSON string `json:"canonical_json"`
	ContentHash   string `json:"content_hash"`
	CreatedAt     string `json:"created_at"`
	Version       string `json:"version"`
	Author        string `json:"author"`
	TxID          string `json:"tx_id,omitempty"`
}

// MintResult is the user-visible summary returned after a successful mint.
type MintResult struct {
	HypothesisID string `json:"hypothesis_id"`
	ContentHash  string `json:"content_hash"`
	TxID         string `json:"tx_id"`
	CreatedAt    string `json:"created_at"`
	Version      string `json:"version"`
}
