package repository

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

// NewMemoryStore keeps collections in process memory; state is lost on restart.
func NewMemoryStore() CollectionStore {
	return &memoryStore{
		collections: make(map[string][]byte),
	}
}

func (s *memoryStore) Load(ctx context.Context, collection string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	payload, ok := s.collections[collection]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return false, wrapf(err, "decode collection %s", collection)
	}

	return true, nil
}

func (s *memoryStore) Save(ctx context.Context, writes ...Write) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payloads, err := encodeWrites(writes)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, payload := range payloads {
		s.collections[name] = payload
	}

	return nil
}
