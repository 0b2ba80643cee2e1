// Package store keeps a journal of committed mutation batches in a bbolt
// database.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.arbor.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

const bucketBatches = "batches"

// ErrNoBatch is returned by Journal.Batch when there is no batch with the
// requested sequence number.
var ErrNoBatch = errors.New("no such batch")

// Journal is a bbolt database of mutation batches, keyed by sequence number.
type Journal struct {
	db *bolt.DB
}

// Batch is a journaled batch.
type Batch struct {
	Seq     uint64
	Records []Record
}

// Open opens the journal at path, creating it if it doesn't exist.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketBatches))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initialize %s: %w", path, err)
	}
	logger.Println("opened", path)
	return &Journal{db}, nil
}

// Close closes the journal.
func (j *Journal) Close() error { return j.db.Close() }

// Append adds a batch to the journal and returns its sequence number.
// Sequence numbers start from 1.
func (j *Journal) Append(records []Record) (uint64, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("store: encode batch: %w", err)
	}
	var seq uint64
	err = j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketBatches))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	if err != nil {
		return 0, fmt.Errorf("store: append batch: %w", err)
	}
	return seq, nil
}

// Batch returns the records of the batch with the given sequence number.
func (j *Journal) Batch(seq uint64) ([]Record, error) {
	var records []Record
	err := j.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketBatches)).Get(marshalSeq(seq))
		if v == nil {
			return ErrNoBatch
		}
		return json.Unmarshal(v, &records)
	})
	if err != nil {
		return nil, fmt.Errorf("store: batch %d: %w", seq, err)
	}
	return records, nil
}

// Batches returns all batches in the order they were appended.
func (j *Journal) Batches() ([]Batch, error) {
	var batches []Batch
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketBatches)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var records []Record
			if err := json.Unmarshal(v, &records); err != nil {
				return fmt.Errorf("batch %d: %w", unmarshalSeq(k), err)
			}
			batches = append(batches, Batch{unmarshalSeq(k), records})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list batches: %w", err)
	}
	return batches, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
