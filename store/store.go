// Package store is the host side of the document engine: keyed document
// lookup, per-key write serialization, keyspace notification, and
// whole-store persistence. The engine itself performs no locking; every
// engine invocation for a key runs under that key's exclusive lock here.
package store

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/signadot/jsonkv/codec"
	"github.com/signadot/jsonkv/debug"
	"github.com/signadot/jsonkv/doc"
	"github.com/signadot/jsonkv/ir"
)

var ErrNoKey = errors.New("no such key")

// Handle identifies the registered document type. Registration happens
// once at host startup; engine entry points take the handle explicitly
// rather than consulting global state.
type Handle struct {
	typeName string
	version  int
}

func Register() *Handle {
	return &Handle{typeName: "json-doc", version: codec.CurrentVersion}
}

func (h *Handle) TypeName() string { return h.typeName }
func (h *Handle) Version() int     { return h.version }

// NotifyFunc observes keyspace changes ("json.set", "json.del", ...).
type NotifyFunc func(event, key string)

type Option func(*Store)

func WithNotify(f NotifyFunc) Option {
	return func(s *Store) { s.notify = f }
}

type Store struct {
	handle *Handle
	notify NotifyFunc

	mu   sync.Mutex
	keys map[string]*entry
}

type entry struct {
	mu  sync.Mutex
	doc *doc.Document
}

func New(h *Handle, opts ...Option) *Store {
	s := &Store{
		handle: h,
		keys:   map[string]*entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Handle() *Handle { return s.handle }

// Create binds key to a new document rooted at root, replacing any
// existing binding.
func (s *Store) Create(key string, root *ir.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if debug.Store() {
		debug.Logf("create %q: %s\n", key, debug.Doc{Node: root})
	}
	s.keys[key] = &entry{doc: doc.New(root)}
}

// Delete removes key, reporting whether it existed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	delete(s.keys, key)
	return ok
}

func (s *Store) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.keys))
}

func (s *Store) get(key string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.keys[key]
	return e, ok
}

// Update runs fn on key's document under its exclusive lock. The
// engine's atomicity discipline plus this serialization means fn's
// callers never observe a half-mutated tree.
func (s *Store) Update(key string, fn func(*doc.Document) error) error {
	e, ok := s.get(key)
	if !ok {
		return ErrNoKey
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.doc)
}

// View runs fn on key's document. Reads take the same per-key lock;
// the execution model is single-invocation-at-a-time per key.
func (s *Store) View(key string, fn func(*doc.Document) error) error {
	return s.Update(key, fn)
}

// Notify forwards a keyspace event to the registered observer.
func (s *Store) Notify(event, key string) {
	if s.notify == nil {
		return
	}
	s.notify(event, key)
}
