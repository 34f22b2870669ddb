package ledger

import "context"

// Receipt is a stored attestation receipt.
type Receipt struct {
	HypothesisID string `json:"hypothesis_id"`
	ContentHash  string `json:"content_hash"`
	Author       string `json:"author"`
	CreatedAt    string `json:"created_at"`
	TxID         string `json:"tx_id"`
}

// Writer records attestation receipts in a ledger and returns an opaque
// transaction id per write.
type Writer interface {
	WriteReceipt(ctx context.Context, hypothesisID, contentHash, author string) (string, error)
	GetReceipt(ctx context.Context, hypothesisID string) (Receipt, error)
	Close(ctx context.Context) error
}
