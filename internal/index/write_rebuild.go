package index

import (
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"strings"
	"time"
)

// EntryRecord is what the store remembers about one rendered entry.
type EntryRecord struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	OutPath    string    `json:"outPath"`
	Href       string    `json:"href"`
	Timestamp  time.Time `json:"timestamp"`
	SourcePath string    `json:"sourcePath"`
	SourceHash string    `json:"sourceHash"`
	OutputHash string    `json:"outputHash"`
}

type BuildRecord struct {
	ID         string        `json:"id"`
	FinishedAt time.Time     `json:"finishedAt"`
	Elapsed    time.Duration `json:"elapsed"`
	Entries    int           `json:"entries"`
	OutputDir  string        `json:"outputDir"`
}

// Record replaces the stored listing with entries, in the given order, and
// appends build to the build history.
func (s *Store) Record(build BuildRecord, entries []EntryRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bEntries)
		_ = tx.DeleteBucket(bOrder)

		entriesB, err := tx.CreateBucket(bEntries)
		if err != nil {
			return err
		}
		orderB, err := tx.CreateBucket(bOrder)
		if err != nil {
			return err
		}
		buildsB, err := tx.CreateBucketIfNotExists(bBuilds)
		if err != nil {
			return err
		}

		for i, e := range entries {
			if strings.TrimSpace(e.Slug) == "" {
				continue
			}
			eb, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := entriesB.Put([]byte(e.Slug), eb); err != nil {
				return err
			}
			if err := orderB.Put(positionKey(i), []byte(e.Slug)); err != nil {
				return err
			}
		}

		bb, err := json.Marshal(build)
		if err != nil {
			return err
		}
		return buildsB.Put(buildKey(build.FinishedAt, build.ID), bb)
	})
}
