package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracelab/trace/internal/core/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func card(id, synergyID, confidence string, variables ...string) model.HypothesisRecord {
	return model.HypothesisRecord{
		HypothesisID:     id,
		PrimarySynergyID: synergyID,
		Hypothesis:       "test hypothesis",
		SourceSupport:    model.SourceSupport{VariablesUsed: variables},
		Confidence:       confidence,
	}
}

func TestSaveAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved := card("trace_hyp_aaaa1111", "syn_1", model.ConfidenceHigh, "temperature")
	att := model.AttestationRecord{ContentHash: "0xabc", Author: "trace-pipeline"}
	require.NoError(t, store.Save(ctx, saved, att))

	entry, err := store.Get(ctx, "trace_hyp_aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, saved, entry.Hypothesis)
	assert.Equal(t, "0xabc", entry.Attestation.ContentHash)
}

func TestGetNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Get(context.Background(), "trace_hyp_missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReplacesExisting(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	c := card("trace_hyp_aaaa1111", "syn_1", model.ConfidenceHigh)
	require.NoError(t, store.Save(ctx, c, model.AttestationRecord{ContentHash: "0xabc"}))
	require.NoError(t, store.Save(ctx, c, model.AttestationRecord{ContentHash: "0xabc", TxID: "tx_42"}))

	entry, err := store.Get(ctx, "trace_hyp_aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, "tx_42", entry.Attestation.TxID)
}

func TestSaveRequiresID(t *testing.T) {
	store := testStore(t)

	err := store.Save(context.Background(), model.HypothesisRecord{}, model.AttestationRecord{})

	assert.Error(t, err)
}

func TestListWithFilters(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, card("trace_hyp_aaaa1111", "syn_1", model.ConfidenceHigh, "temperature", "voltage"), model.AttestationRecord{}))
	require.NoError(t, store.Save(ctx, card("trace_hyp_bbbb2222", "syn_1", model.ConfidenceLow, "pressure"), model.AttestationRecord{}))
	require.NoError(t, store.Save(ctx, card("trace_hyp_cccc3333", "syn_2", model.ConfidenceHigh, "Temperature"), model.AttestationRecord{}))

	all, err := store.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "trace_hyp_aaaa1111", all[0].Hypothesis.HypothesisID)

	bySynergy, err := store.List(ctx, Filter{PrimarySynergyID: "syn_1"})
	require.NoError(t, err)
	assert.Len(t, bySynergy, 2)

	byConfidence, err := store.List(ctx, Filter{Confidence: model.ConfidenceLow})
	require.NoError(t, err)
	require.Len(t, byConfidence, 1)
	assert.Equal(t, "trace_hyp_bbbb2222", byConfidence[0].Hypothesis.HypothesisID)

	byVariable, err := store.List(ctx, Filter{Variable: "TEMPERATURE"})
	require.NoError(t, err)
	assert.Len(t, byVariable, 2)

	combined, err := store.List(ctx, Filter{PrimarySynergyID: "syn_1", Variable: "voltage"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "trace_hyp_aaaa1111", combined[0].Hypothesis.HypothesisID)
}

func TestListEmptyStore(t *testing.T) {
	store := testStore(t)

	entries, err := store.List(context.Background(), Filter{})

	require.NoError(t, err)
	assert.Empty(t, entries)
}
