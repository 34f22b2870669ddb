package attest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tracelab/trace/internal/core/model"
)

const attestationVersion = "1.0"

// Registry persists hypotheses and their attestations keyed by hypothesis id.
type Registry interface {
	Save(ctx context.Context, card model.HypothesisRecord, att model.AttestationRecord) error
}

// Ledger records an attestation receipt and returns an opaque transaction id.
type Ledger interface {
	WriteReceipt(ctx context.Context, hypothesisID, contentHash, author string) (string, error)
}

// Minter freezes a validated hypothesis into an attestation: canonical JSON,
// content hash, minting metadata, registry entry, and a ledger receipt.
type Minter struct {
	Registry Registry
	Ledger   Ledger
	Author   string

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewMinter(registry Registry, ledger Ledger, author string) *Minter {
	return &Minter{
		Registry: registry,
		Ledger:   ledger,
		Author:   author,
		now:      time.Now,
	}
}

func (m *Minter) Mint(ctx context.Context, card model.HypothesisRecord) (model.MintResult, error) {
	if err := checkRequired(card); err != nil {
		return model.MintResult{}, err
	}

	canonical, err := Canonicalize(card)
	if err != nil {
		return model.MintResult{}, err
	}

	att := model.AttestationRecord{
		CanonicalJSON: canonical,
		ContentHash:   ContentHash(canonical),
		CreatedAt:     m.now().UTC().Format(time.RFC3339),
		Version:       attestationVersion,
		Author:        m.Author,
	}

	if err := m.Registry.Save(ctx, card, att); err != nil {
		return model.MintResult{}, fmt.Errorf("failed to store hypothesis %s: %w", card.HypothesisID, err)
	}

	if m.Ledger != nil {
		txID, err := m.Ledger.WriteReceipt(ctx, card.HypothesisID, att.ContentHash, m.Author)
		if err != nil {
			return model.MintResult{}, fmt.Errorf("ledger receipt failed for %s: %w", card.HypothesisID, err)
		}
		att.TxID = txID
		if err := m.Registry.Save(ctx, card, att); err != nil {
			return model.MintResult{}, fmt.Errorf("failed to store receipt for %s: %w", card.HypothesisID, err)
		}
	}

	return model.MintResult{
		HypothesisID: card.HypothesisID,
		ContentHash:  att.ContentHash,
		TxID:         att.TxID,
		CreatedAt:    att.CreatedAt,
		Version:      att.Version,
	}, nil
}

func checkRequired(card model.HypothesisRecord) error {
	var missing []string
	if strings.TrimSpace(card.HypothesisID) == "" {
		missing = append(missing, "hypothesis_id")
	}
	if strings.TrimSpace(card.Hypothesis) == "" {
		missing = append(missing, "hypothesis")
	}
	if strings.TrimSpace(card.Rationale) == "" {
		missing = append(missing, "rationale")
	}
	if strings.TrimSpace(card.Confidence) == "" {
		missing = append(missing, "confidence")
	}
	if card.SourceSupport.PaperAClaimIDs == nil &&
		card.SourceSupport.PaperBClaimIDs == nil &&
		card.SourceSupport.VariablesUsed == nil {
		missing = append(missing, "source_support")
	}
	// primary_synergy_id is intentionally not required: it is legitimately
	// empty when the analysis found no synergies.
	if strings.TrimSpace(card.ProposedExperiment.Description) == "" &&
		card.ProposedExperiment.Measurements == nil &&
		strings.TrimSpace(card.ProposedExperiment.ExpectedDirection) == "" {
		missing = append(missing, "proposed_experiment")
	}
	if len(missing) > 0 {
		return fmt.Errorf("hypothesis is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
