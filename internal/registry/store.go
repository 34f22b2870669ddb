package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/tracelab/trace/internal/core/model"
)

var ErrNotFound = errors.New("hypothesis not found")

const keyPrefix = "hyp/"

// Entry is the stored unit: the hypothesis card plus its attestation.
type Entry struct {
	Hypothesis  model.HypothesisRecord  `json:"hypothesis"`
	Attestation model.AttestationRecord `json:"attestation"`
}

// Filter narrows List results. Empty fields match everything. Variable is
// matched case-insensitively against variables_used.
type Filter struct {
	Variable         string
	PrimarySynergyID string
	Confidence       string
}

// Store is an embedded key-value registry of minted hypotheses, keyed by
// hypothesis id. Safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens a persistent registry at path, creating the directory if
// needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("registry path is required")
	}
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create registry directory %s: %w", path, err)
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a non-persistent registry. Intended for tests.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory registry: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores or replaces the entry for the card's hypothesis id.
func (s *Store) Save(ctx context.Context, card model.HypothesisRecord, att model.AttestationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if card.HypothesisID == "" {
		return errors.New("cannot save a hypothesis without an id")
	}

	data, err := json.Marshal(Entry{Hypothesis: card, Attestation: att})
	if err != nil {
		return fmt.Errorf("failed to serialize entry %s: %w", card.HypothesisID, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+card.HypothesisID), data)
	})
}

func (s *Store) Get(ctx context.Context, hypothesisID string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	var entry Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + hypothesisID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, hypothesisID)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns all entries matching the filter, ordered by hypothesis id.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := []Entry{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			if f.matches(entry.Hypothesis) {
				entries = append(entries, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Hypothesis.HypothesisID < entries[j].Hypothesis.HypothesisID
	})
	return entries, nil
}

func (f Filter) matches(card model.HypothesisRecord) bool {
	if f.PrimarySynergyID != "" && card.PrimarySynergyID != f.PrimarySynergyID {
		return false
	}
	if f.Confidence != "" && card.Confidence != f.Confidence {
		return false
	}
	if f.Variable != "" {
		found := false
		for _, v := range card.SourceSupport.VariablesUsed {
			if strings.EqualFold(v, f.Variable) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
