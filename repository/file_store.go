package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/QuaKeyz/reselling-store/models"
)

// storeDocument is the on-disk layout of the flat-file store: one JSON
// document holding the whole catalog and ledger.
type storeDocument struct {
	Products []models.Product `json:"products"`
	Orders   []models.Order   `json:"orders"`
}

func (d storeDocument) clone() storeDocument {
	out := storeDocument{
		Products: make([]models.Product, len(d.Products)),
		Orders:   make([]models.Order, len(d.Orders)),
	}
	copy(out.Products, d.Products)
	for i, o := range d.Orders {
		items := make([]models.OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
		if o.PaidAt != nil {
			t := *o.PaidAt
			o.PaidAt = &t
		}
		out.Orders[i] = o
	}
	return out
}

// FileStore is the flat-file backing shared by the file ledger and file
// product repository. A single RWMutex is the global serialization point:
// every mutation runs read-modify-write-persist under the write lock, so no
// two writes ever interleave. Writes go to a temp file in the same directory,
// are fsynced, then renamed over the live file; readers of the file never
// observe a torn document.
type FileStore struct {
	path string

	mu  sync.RWMutex
	doc storeDocument
}

// OpenFileStore loads the document at path, creating an empty store if the
// file does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("parse store %s: %w", path, err)
		}
	}
	return s, nil
}

// update runs fn against a copy of the current document, persists the result
// durably, and only then makes it visible to readers. If anything fails the
// in-memory and on-disk state are both left exactly as they were.
func (s *FileStore) update(fn func(doc *storeDocument) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// view runs fn against a snapshot of the current document under the read
// lock. Reads run concurrently with each other.
func (s *FileStore) view(fn func(doc storeDocument)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

func (s *FileStore) persist(doc storeDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
