// Package storage persists index tuples in pebble, keyed by KSUID.
//
// Each value is a codec record: the tuple bytes behind a checksum and a
// write timestamp. Tuples are not placed on pages.
package storage

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/indextuple/pkg/codec"
	"github.com/ssargent/indextuple/pkg/itup"
)

// ErrNotFound is returned when no tuple is stored under an ID.
var ErrNotFound = errors.New("storage: tuple not found")

// TupleStore is a pebble database of tuples.
type TupleStore struct {
	db    *pebble.DB
	codec *codec.RecordCodec
}

// Open opens or creates a store in dir.
func Open(dir string) (*TupleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening tuple store in %s", dir)
	}
	return &TupleStore{db: db, codec: codec.NewRecordCodec()}, nil
}

// Put validates and stores t under a new ID.
func (s *TupleStore) Put(t itup.Tuple) (ksuid.KSUID, error) {
	rec, err := s.codec.Encode(t)
	if err != nil {
		return ksuid.Nil, err
	}
	id := ksuid.New()
	if err := s.db.Set(id.Bytes(), rec, pebble.Sync); err != nil {
		return ksuid.Nil, errors.Wrapf(err, "storing tuple %s", id)
	}
	return id, nil
}

// Get returns a copy of the tuple stored under id. Pebble owns the value
// only until the closer runs, so the caller receives its own buffer.
func (s *TupleStore) Get(id ksuid.KSUID) (itup.Tuple, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading tuple %s", id)
	}
	defer closer.Close()

	rec, err := s.decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "tuple %s", id)
	}
	return itup.Copy(rec.Tuple)
}

func (s *TupleStore) decode(data []byte) (*codec.Record, error) {
	rec, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the tuple stored under id.
func (s *TupleStore) Delete(id ksuid.KSUID) error {
	return s.db.Delete(id.Bytes(), pebble.Sync)
}

// Scan calls fn for every stored tuple in ID order. KSUIDs sort by
// creation second, not exactly by creation order. The tuple passed to fn
// is only valid during the call.
func (s *TupleStore) Scan(fn func(id ksuid.KSUID, t itup.Tuple) error) error {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return errors.Wrap(err, "creating iterator")
	}
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			_ = iter.Close()
			return errors.Wrapf(err, "bad key %x", iter.Key())
		}
		rec, err := s.decode(iter.Value())
		if err != nil {
			_ = iter.Close()
			return errors.Wrapf(err, "tuple %s", id)
		}
		if err := fn(id, rec.Tuple); err != nil {
			_ = iter.Close()
			return err
		}
	}
	return iter.Close()
}

// Close closes the underlying database.
func (s *TupleStore) Close() error {
	return s.db.Close()
}
