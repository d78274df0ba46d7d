package index

import (
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"strings"
)

func (s *Store) Get(slug string) (EntryRecord, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return EntryRecord{}, ErrNotFound
	}
	var e EntryRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bEntries)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	return e, err
}

// List returns the recorded entries in the order they appeared on the index
// page.
func (s *Store) List() ([]EntryRecord, error) {
	var out []EntryRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		orderB := tx.Bucket(bOrder)
		entriesB := tx.Bucket(bEntries)
		if orderB == nil || entriesB == nil {
			return nil
		}
		return orderB.ForEach(func(_, slug []byte) error {
			v := entriesB.Get(slug)
			if v == nil {
				return nil
			}
			var e EntryRecord
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	return out, err
}

// LastBuild returns the most recently recorded build.
func (s *Store) LastBuild() (BuildRecord, error) {
	var rec BuildRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuilds)
		if b == nil {
			return ErrNotFound
		}
		_, v := b.Cursor().Last()
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	return rec, err
}

// Builds returns up to limit builds, newest first. limit <= 0 means all.
func (s *Store) Builds(limit int) ([]BuildRecord, error) {
	var out []BuildRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuilds)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var rec BuildRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}
