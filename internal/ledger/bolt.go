package ledger

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// BoltLedger persists receipts as Attestation nodes in a Bolt-protocol graph
// database.
type BoltLedger struct {
	Driver neo4j.DriverWithContext
}

func NewBoltLedger(uri, username, password string) (*BoltLedger, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to attestation ledger")
	return &BoltLedger{Driver: driver}, nil
}

func (l *BoltLedger) Close(ctx context.Context) error {
	return l.Driver.Close(ctx)
}

// WriteReceipt records the receipt under a fresh transaction id. Writing
// again for the same hypothesis updates the existing node.
func (l *BoltLedger) WriteReceipt(ctx context.Context, hypothesisID, contentHash, author string) (string, error) {
	txID := "tx_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	_, err := neo4j.ExecuteQuery(ctx, l.Driver, WriteReceiptQuery, map[string]interface{}{
		"hypothesis_id": hypothesisID,
		"content_hash":  contentHash,
		"author":        author,
		"created_at":    time.Now().UTC().Format(time.RFC3339),
		"tx_id":         txID,
	}, neo4j.EagerResultTransformer)
	if err != nil {
		return "", fmt.Errorf("failed to write receipt for %s: %w", hypothesisID, err)
	}

	return txID, nil
}

func (l *BoltLedger) GetReceipt(ctx context.Context, hypothesisID string) (Receipt, error) {
	result, err := neo4j.ExecuteQuery(ctx, l.Driver, GetReceiptQuery, map[string]interface{}{
		"hypothesis_id": hypothesisID,
	}, neo4j.EagerResultTransformer)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to read receipt for %s: %w", hypothesisID, err)
	}
	if len(result.Records) == 0 {
		return Receipt{}, fmt.Errorf("no receipt for %s", hypothesisID)
	}

	record := result.Records[0]
	return Receipt{
		HypothesisID: stringValue(record, "hypothesis_id"),
		ContentHash:  stringValue(record, "content_hash"),
		Author:       stringValue(record, "author"),
		CreatedAt:    stringValue(record, "created_at"),
		TxID:         stringValue(record, "tx_id"),
	}, nil
}

func (l *BoltLedger) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Attestation(hypothesis_id);",
		"CREATE INDEX ON :Attestation(content_hash);",
	}

	for _, q := range queries {
		_, err := neo4j.ExecuteQuery(ctx, l.Driver, q, nil, neo4j.EagerResultTransformer)
		if err != nil {
			log.Printf("Warning: failed to create index '%s': %v", q, err)
			// Continue, as index might already exist
		}
	}

	return nil
}

func stringValue(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
