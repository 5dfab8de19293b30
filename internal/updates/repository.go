package updates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/githerd/githerd/pkg/badgerfx"
	"github.com/google/uuid"
)

const (
	prefix = "cycle:"

	prefixByID   = prefix + "id:"
	prefixByTime = prefix + "time:"
)

// Repository persists update cycles in BadgerDB.
type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores a new cycle record.
func (r *Repository) Create(_ context.Context, draft *CycleDraft) (*Cycle, error) {
	model := newCycleModel(draft)

	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cycle: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if setErr := txn.Set(r.getKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to store cycle: %w", setErr)
		}

		if crErr := r.createIndexes(txn, model); crErr != nil {
			return fmt.Errorf("failed to create cycle indexes: %w", crErr)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}

	return newCycle(model), nil
}

// GetByID retrieves a cycle by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Cycle, error) {
	var cycle *cycleModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err == nil {
			cycle = found
		}

		return err
	})

	return newCycle(cycle), err
}

// List retrieves cycles in reverse chronological order, at most limit of
// them; limit <= 0 means no limit.
func (r *Repository) List(_ context.Context, limit int) ([]Cycle, error) {
	var cycles []Cycle

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchSize = 10

		it := txn.NewIterator(opts)
		defer it.Close()

		timePrefix := []byte(prefixByTime)
		seek := append([]byte(prefixByTime), badgerfx.SeekEnd)
		for it.Seek(seek); it.ValidForPrefix(timePrefix); it.Next() {
			if limit > 0 && len(cycles) >= limit {
				break
			}

			item := it.Item()

			if err := item.Value(func(val []byte) error {
				var cycleID uuid.UUID
				if err := json.Unmarshal(val, &cycleID); err != nil {
					return fmt.Errorf("failed to unmarshal cycle ID: %w", err)
				}

				cycle, err := r.getByID(txn, cycleID)
				if err != nil {
					return err
				}

				cycles = append(cycles, *newCycle(cycle))

				return nil
			}); err != nil {
				return fmt.Errorf("failed to read cycle index: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return cycles, fmt.Errorf("failed to list cycles: %w", err)
	}

	return cycles, nil
}

// Latest retrieves the most recent cycle.
func (r *Repository) Latest(ctx context.Context) (*Cycle, error) {
	cycles, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}

	if len(cycles) == 0 {
		return nil, ErrNotFound
	}

	return &cycles[0], nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*cycleModel, error) {
	item, err := txn.Get(r.getKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle: %w", err)
	}

	var cycle cycleModel
	if valErr := item.Value(func(val []byte) error { return json.Unmarshal(val, &cycle) }); valErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cycle: %w", valErr)
	}

	return &cycle, nil
}

// getKey generates the key for storing a cycle.
func (r *Repository) getKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

// createIndexes creates the time index `cycle:time:<unix_nano>`.
func (r *Repository) createIndexes(txn *badger.Txn, cycle *cycleModel) error {
	timeKey := []byte(prefixByTime + strconv.FormatInt(cycle.CreatedAt.UnixNano(), 10))
	timeData, err := json.Marshal(cycle.ID)
	if err != nil {
		return fmt.Errorf("failed to marshal cycle ID: %w", err)
	}
	if setErr := txn.Set(timeKey, timeData); setErr != nil {
		return fmt.Errorf("failed to set time index: %w", setErr)
	}

	return nil
}
