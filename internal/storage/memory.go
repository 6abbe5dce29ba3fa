package storage

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemory - хранилище в памяти процесса. Для тестов и локальной разработки.
func NewMemory() KeyValueStore {
	return &memoryStore{data: make(map[string]map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, namespace, slot string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[namespace][slot]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *memoryStore) Set(_ context.Context, namespace, slot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]string)
		s.data[namespace] = ns
	}
	ns[slot] = value
	return nil
}

func (s *memoryStore) Del(_ context.Context, namespace string, slots ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[namespace]
	if !ok {
		return nil
	}
	for _, slot := range slots {
		delete(ns, slot)
	}
	if len(ns) == 0 {
		delete(s.data, namespace)
	}
	return nil
}

func (s *memoryStore) Close() error { return nil }
