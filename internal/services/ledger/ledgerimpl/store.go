package ledgerimpl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-pkgz/lgr"

	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
)

const (
	prefixEntry = "entry:"
	prefixSpend = "spend:"
	keyGrace    = "grace"
	seqEntry    = "seq:entry"
	seqSpend    = "seq:spend"
)

// Store is the Badger-backed durable home for the three logical ledger
// tables: credit_entries, credit_spending, and the one-row credit_grace
// cell. All mutations go through db.Update (single logical transaction);
// reads use db.View.
type Store struct {
	db          *badger.DB
	logger      lgr.L
	entrySeq    *badger.Sequence
	spendSeq    *badger.Sequence
}

// NewStore attaches to an already-open Badger database and
// primes the id sequences used for monotone entry/spend ids.
func NewStore(db *badger.DB, logger lgr.L) (*Store, error) {
	entrySeq, err := db.GetSequence([]byte(seqEntry), 100)
	if err != nil {
		return nil, fmt.Errorf("acquire entry sequence: %w", err)
	}
	spendSeq, err := db.GetSequence([]byte(seqSpend), 100)
	if err != nil {
		return nil, fmt.Errorf("acquire spend sequence: %w", err)
	}
	return &Store{db: db, logger: logger, entrySeq: entrySeq, spendSeq: spendSeq}, nil
}

// Close releases the id sequences. It does not close the underlying
// *badger.DB, which is owned by the caller (mirrors storage.Client.Close
// in the infra layer owning the actual file handle).
func (s *Store) Close() error {
	if err := s.entrySeq.Release(); err != nil {
		return err
	}
	return s.spendSeq.Release()
}

func entryKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixEntry, id))
}

func spendKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixSpend, id))
}

// NextEntryID reserves the next monotone entry id.
func (s *Store) NextEntryID() (uint64, error) {
	return s.entrySeq.Next()
}

// NextSpendID reserves the next monotone spend id.
func (s *Store) NextSpendID() (uint64, error) {
	return s.spendSeq.Next()
}

// InsertEntry appends a new credit entry row, then reads the resulting
// balance and lazily clears the grace cell in the same pass if it is now
// positive. Two sequential db.Update calls (insert, then maybe-clear): no
// concurrent writer can observe an inconsistent balance between them under
// the single-writer discipline this ledger is used under.
func (s *Store) InsertEntry(ctx context.Context, e ledger.CreditEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal credit entry: %w", err)
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(e.ID), data)
	}); err != nil {
		return fmt.Errorf("%w: insert entry: %v", ledger.ErrStorage, err)
	}

	balance, err := s.balanceTxn(nil)
	if err != nil {
		return fmt.Errorf("%w: read balance after insert: %v", ledger.ErrStorage, err)
	}
	if balance > 0 {
		if err := s.clearGrace(); err != nil {
			return fmt.Errorf("%w: clear grace cell: %v", ledger.ErrStorage, err)
		}
	}
	return nil
}

// InsertSpend appends a spend row and, within the same transaction, re-reads
// the balance and sets the grace cell if it has just gone non-positive. This
// single transaction body is the ledger's core atomicity obligation: the
// balance read and the grace-start write can never race with another
// commit.
func (s *Store) InsertSpend(ctx context.Context, sp ledger.SpendingEntry) error {
	data, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("marshal spending entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(spendKey(sp.ID), data); err != nil {
			return err
		}

		balance, err := s.balanceTxn(txn)
		if err != nil {
			return err
		}

		if balance <= 0 {
			cell, err := s.graceTxn(txn)
			if err != nil {
				return err
			}
			if cell.GraceStart == nil {
				gs := sp.Timestamp
				cell.GraceStart = &gs
				cellData, err := json.Marshal(cell)
				if err != nil {
					return err
				}
				if err := txn.Set([]byte(keyGrace), cellData); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: insert spend: %v", ledger.ErrStorage, err)
	}
	return nil
}

func (s *Store) clearGrace() error {
	return s.db.Update(func(txn *badger.Txn) error {
		cell := ledger.GraceCell{GraceStart: nil}
		data, err := json.Marshal(cell)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyGrace), data)
	})
}

// Grace returns the current grace cell.
func (s *Store) Grace(ctx context.Context) (ledger.GraceCell, error) {
	var cell ledger.GraceCell
	err := s.db.View(func(txn *badger.Txn) error {
		c, err := s.graceTxn(txn)
		if err != nil {
			return err
		}
		cell = c
		return nil
	})
	if err != nil {
		return ledger.GraceCell{}, fmt.Errorf("%w: read grace cell: %v", ledger.ErrStorage, err)
	}
	return cell, nil
}

func (s *Store) graceTxn(txn *badger.Txn) (ledger.GraceCell, error) {
	item, err := txn.Get([]byte(keyGrace))
	if err == badger.ErrKeyNotFound {
		return ledger.GraceCell{GraceStart: nil}, nil
	}
	if err != nil {
		return ledger.GraceCell{}, err
	}
	var cell ledger.GraceCell
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &cell)
	})
	return cell, err
}

// AllEntries returns every credit entry in ascending id order.
func (s *Store) AllEntries(ctx context.Context) ([]ledger.CreditEntry, error) {
	var entries []ledger.CreditEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixEntry)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefixEntry)); it.ValidForPrefix([]byte(prefixEntry)); it.Next() {
			item := it.Item()
			var e ledger.CreditEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ledger.ErrStorage, err)
	}
	return entries, nil
}

// AllSpends returns every spending entry in ascending id order.
func (s *Store) AllSpends(ctx context.Context) ([]ledger.SpendingEntry, error) {
	var spends []ledger.SpendingEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixSpend)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefixSpend)); it.ValidForPrefix([]byte(prefixSpend)); it.Next() {
			item := it.Item()
			var sp ledger.SpendingEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &sp)
			}); err != nil {
				return err
			}
			spends = append(spends, sp)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list spends: %v", ledger.ErrStorage, err)
	}
	return spends, nil
}

// balanceTxn sums credits minus spends, reading within txn if provided
// (so the spend transaction observes its own just-written row), or via a
// fresh view when txn is nil.
func (s *Store) balanceTxn(txn *badger.Txn) (float64, error) {
	sumEntries := func(txn *badger.Txn) (float64, error) {
		var total float64
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixEntry)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek([]byte(prefixEntry)); it.ValidForPrefix([]byte(prefixEntry)); it.Next() {
			var e ledger.CreditEntry
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &e) }); err != nil {
				return 0, err
			}
			total += e.Credits
		}
		return total, nil
	}
	sumSpends := func(txn *badger.Txn) (float64, error) {
		var total float64
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixSpend)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek([]byte(prefixSpend)); it.ValidForPrefix([]byte(prefixSpend)); it.Next() {
			var sp ledger.SpendingEntry
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &sp) }); err != nil {
				return 0, err
			}
			total += sp.Amount
		}
		return total, nil
	}

	if txn != nil {
		earned, err := sumEntries(txn)
		if err != nil {
			return 0, err
		}
		spent, err := sumSpends(txn)
		if err != nil {
			return 0, err
		}
		return earned - spent, nil
	}

	var balance float64
	err := s.db.View(func(txn *badger.Txn) error {
		earned, err := sumEntries(txn)
		if err != nil {
			return err
		}
		spent, err := sumSpends(txn)
		if err != nil {
			return err
		}
		balance = earned - spent
		return nil
	})
	return balance, err
}

// Balance sums all credits minus all spends.
func (s *Store) Balance(ctx context.Context) (float64, error) {
	b, err := s.balanceTxn(nil)
	if err != nil {
		return 0, fmt.Errorf("%w: compute balance: %v", ledger.ErrStorage, err)
	}
	return b, nil
}
