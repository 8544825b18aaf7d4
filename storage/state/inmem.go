package statestore

import (
	"sync"

	"github.com/learnx/learnx/core"
)

// InMemStore backs tests.
type InMemStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

var _ core.KVStore = (*InMemStore)(nil)

func NewInMemStore() *InMemStore {
	return &InMemStore{data: make(map[string]map[string]string)}
}

func (s *InMemStore) Get(namespace, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		return "", false, nil
	}
	val, ok := ns[key]
	return val, ok, nil
}

func (s *InMemStore) Set(namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]string)
		s.data[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (s *InMemStore) Delete(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ns, ok := s.data[namespace]; ok {
		delete(ns, key)
	}
	return nil
}
