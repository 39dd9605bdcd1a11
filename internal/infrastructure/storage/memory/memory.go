// Package memory is an in-process port.ObjectStore for tests and local runs.
package memory

import (
	"context"
	"sync"

	"go-wedding/internal/infrastructure/storage/port"
)

type Object struct {
	Body        []byte
	ContentType string
}

type Store struct {
	mu      sync.Mutex
	objects map[string]Object
	baseURL string

	// PutErr and DeleteErr, when set, are returned by the matching call.
	PutErr    error
	DeleteErr error
}

func New(baseURL string) *Store {
	return &Store{objects: make(map[string]Object), baseURL: baseURL}
}

var _ port.ObjectStore = (*Store)(nil)

func (s *Store) Put(_ context.Context, key string, body []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return "", s.PutErr
	}
	cp := append([]byte(nil), body...)
	s.objects[key] = Object{Body: cp, ContentType: contentType}
	return s.URL(key), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[key]
	if !ok {
		return nil, port.ErrNotFound
	}
	return append([]byte(nil), o.Body...), nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + "/" + key
}

// Object returns a stored object, for assertions.
func (s *Store) Object(key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[key]
	return o, ok
}

// Keys lists stored keys, for assertions.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	return out
}
