package cache

import (
	"container/list"
	"sync"
	"time"
)

// Entry is a single cached value with its absolute expiry
type Entry struct {
	Key       string
	Value     any
	ExpiresAt time.Time
}

// Store is an in-memory Cache. Expiry is checked on Get; there is no
// background sweep. With a capacity bound, the least recently used entry
// is evicted when a Put would exceed it.
type Store struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	maxEntries int        // 0 = unbounded
	now        func() time.Time
}

type Option func(*Store)

// WithMaxEntries bounds the number of live entries; n <= 0 disables the bound
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get implements Reader
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*Entry)
	if s.now().After(e.ExpiresAt) {
		s.remove(el)
		return nil, false
	}
	s.order.MoveToFront(el)
	return e.Value, true
}

// Put implements Writer
func (s *Store) Put(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(ttl)
	if el, ok := s.entries[key]; ok {
		e := el.Value.(*Entry)
		e.Value, e.ExpiresAt = value, expiresAt
		s.order.MoveToFront(el)
		return
	}

	s.entries[key] = s.order.PushFront(&Entry{Key: key, Value: value, ExpiresAt: expiresAt})
	for s.maxEntries > 0 && s.order.Len() > s.maxEntries {
		s.remove(s.order.Back())
	}
}

// Len returns the number of stored entries, including expired ones not yet read
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *Store) remove(el *list.Element) {
	s.order.Remove(el)
	delete(s.entries, el.Value.(*Entry).Key)
}
