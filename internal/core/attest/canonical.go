package attest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// allowedFields is the exact hash surface of a hypothesis. Anything outside
// this list, including minting metadata added later, never reaches the hash.
var allowedFields = []string{
	"hypothesis_id",
	"primary_synergy_id",
	"hypothesis",
	"rationale",
	"source_support",
	"proposed_experiment",
	"confidence",
	"risk_notes",
}

// Canonicalize renders the hypothesis as the byte-stable JSON string the
// content hash is computed over: allow-listed fields only, mapping keys
// byte-sorted at every depth, sequence order untouched, no insignificant
// whitespace, non-ASCII left unescaped.
func Canonicalize(card model.HypothesisRecord) (string, error) {
	data, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("failed to serialize hypothesis: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("failed to rebuild hypothesis value tree: %w", err)
	}
	return CanonicalizeMap(m)
}

// CanonicalizeMap is the map form of Canonicalize, for callers that carry the
// record as a generic value tree.
func CanonicalizeMap(m map[string]any) (string, error) {
	projected := make(map[string]any, len(allowedFields))
	for _, field := range allowedFields {
		if v, ok := m[field]; ok {
			projected[field] = v
		}
	}

	var b strings.Builder
	if err := writeCanonical(&b, projected); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeCanonical(b *strings.Builder, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeScalar(b, k); err != nil {
				return err
			}
			b.WriteByte(':')
			if err := writeCanonical(b, val[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		return nil
	case []any:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeCanonical(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	default:
		return writeScalar(b, val)
	}
}

// writeScalar encodes a leaf value without the HTML escaping json.Marshal
// would apply, keeping non-ASCII text byte-for-byte.
func writeScalar(b *strings.Builder, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode canonical value: %w", err)
	}
	b.WriteString(strings.TrimSuffix(buf.String(), "\n"))
	return nil
}
