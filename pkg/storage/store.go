// Package storage provides Pebble-based persistence for the swap ledger:
// the identity->account map, the id->order map, and the order counter.
// The store is a dumb map layer; lifecycle legality and conservation are
// enforced by the engine, which serializes all access.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/hwanjo/swapdesk/pkg/swap"
)

type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the Pebble database at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble db at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Account loads an account. Returns nil if the account does not exist,
// which the ledger treats as balance 0.
func (s *Store) Account(addr swap.Identity) (*swap.Account, error) {
	data, closer, err := s.db.Get(accountKey(addr))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	defer closer.Close()

	var acc swap.Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &acc, nil
}

// Order loads an order by id. Returns nil if absent.
func (s *Store) Order(id uint64) (*swap.Order, error) {
	data, closer, err := s.db.Get(orderKey(id))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	defer closer.Close()

	var ord swap.Order
	if err := json.Unmarshal(data, &ord); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &ord, nil
}

// NextOrderID atomically reads, increments and persists the order counter,
// returning the new value. Ids are strictly increasing and never reused.
// Callers must serialize invocations (the engine holds its operation lock).
// A write failure here is a fatal storage error, not a business error.
func (s *Store) NextOrderID() (uint64, error) {
	var current uint64
	data, closer, err := s.db.Get(orderSeqKey())
	switch err {
	case nil:
		current = binary.BigEndian.Uint64(data)
		closer.Close()
	case pebble.ErrNotFound:
		// counter starts at 0, first id is 1
	default:
		return 0, fmt.Errorf("get order counter: %w", err)
	}

	next := current + 1
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], next)
	if err := s.db.Set(orderSeqKey(), buf[:], pebble.Sync); err != nil {
		return 0, fmt.Errorf("persist order counter: %w", err)
	}
	return next, nil
}

// Batch stages writes to multiple records so a single engine operation
// commits all-or-nothing (debit + order insert on create, two account
// writes + status write-back on execute).
type Batch struct {
	batch *pebble.Batch
}

func (s *Store) NewBatch() *Batch {
	return &Batch{batch: s.db.NewBatch()}
}

// PutAccount stages an account write.
func (b *Batch) PutAccount(acc *swap.Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	return b.batch.Set(accountKey(acc.Address), data, nil)
}

// PutOrder stages an order write. Overwriting an existing id is only
// legal as the engine's own status write-back.
func (b *Batch) PutOrder(ord *swap.Order) error {
	data, err := json.Marshal(ord)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	return b.batch.Set(orderKey(ord.ID), data, nil)
}

// Commit writes the batch durably and atomically.
func (b *Batch) Commit() error {
	return b.batch.Commit(pebble.Sync)
}

// Close discards the batch without committing.
func (b *Batch) Close() error {
	return b.batch.Close()
}
