package leads

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store is a bbolt-backed audit log of accepted submissions, one bucket per
// form.
type Store struct {
	db *bolt.DB
}

func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Add(sub *Submission) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(sub.Form))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(sub.ID), raw)
	})
}

func (s *Store) All(form string) ([]*Submission, error) {
	subs := []*Submission{}

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(form))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(_, v []byte) error {
			sub := &Submission{}
			if err := json.Unmarshal(v, sub); err != nil {
				return err
			}
			subs = append(subs, sub)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
