package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by BadgerStore.Get for unknown run IDs.
var ErrNotFound = errors.New("store: run not found")

const runPrefix = "run/"

// BadgerStore keeps records in a Badger database keyed by run ID.
type BadgerStore struct {
	db *badger.DB
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBadgerStore opens or creates a store in dir. An empty dir opens an
// in-memory store.
func OpenBadgerStore(dir string, log *slog.Logger) (*BadgerStore, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}
	if log != nil {
		opts = opts.WithLogger(&badgerLogger{logger: log})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func runKey(id string) []byte {
	return []byte(runPrefix + id)
}

// Write stores a record under its run ID.
func (s *BadgerStore) Write(rec Record) error {
	return s.WriteBatch([]Record{rec})
}

// WriteBatch stores several records in one transaction.
func (s *BadgerStore) WriteBatch(recs []Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, rec := range recs {
			if rec.RunID == "" {
				return errors.New("store: record has no run ID")
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := txn.Set(runKey(rec.RunID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get loads the record for a run ID.
func (s *BadgerStore) Get(id string) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	return rec, err
}

// List returns the IDs of every stored run in key order.
func (s *BadgerStore) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(runPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(runPrefix):]))
		}
		return nil
	})
	return ids, err
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
