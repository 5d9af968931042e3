package qrz

import (
	"os"
	"sync"
)

// KeyCache persists the current session key as a single opaque string on
// durable storage, so the key survives across runs.
type KeyCache struct {
	Path string
}

// Load reads the cached key. ok is false when no prior session exists.
func (c KeyCache) Load() (key string, ok bool, err error) {
	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (c KeyCache) Store(key string) error {
	return os.WriteFile(c.Path, []byte(key), 0o600)
}

// Session owns the session key lifecycle: load from the durable cache,
// install a freshly issued key after login, and detect key rotation on
// subsequent responses. Session keys are dynamically managed by the server
// and have no guaranteed lifetime, so there is no local expiry tracking.
//
// At most one key is current at a time. The mutex serializes all reads and
// writes of the key and its durable cache: a rotated key observed out of
// order would invalidate subsequent requests.
type Session struct {
	mu    sync.Mutex
	cache KeyCache
	key   string
}

func NewSession(cache KeyCache) *Session {
	return &Session{cache: cache}
}

// Resume loads a previously issued key from the durable cache, reporting
// false when no prior session exists.
func (s *Session) Resume() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok, err := s.cache.Load()
	if err != nil || !ok {
		return false, err
	}
	s.key = key
	return true, nil
}

// Key returns the current session key, empty until authenticated.
func (s *Session) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Authenticate installs the key carried by a classified login response and
// persists it. A login response without a key is fatal for the run and is
// reported as ErrNoSessionKey.
func (s *Session) Authenticate(cls Classification) error {
	if cls.Key == "" {
		return ErrNoSessionKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cache.Store(cls.Key); err != nil {
		return err
	}
	s.key = cls.Key
	return nil
}

// OnResponse applies the key rotation rule: when a classified response
// declares a key that differs from the one last used, the durable cache is
// overwritten and the new key becomes current. A response carrying the same
// key, or none at all, leaves both untouched.
func (s *Session) OnResponse(cls Classification) (key string, rotated bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cls.Key == "" || cls.Key == s.key {
		return s.key, false, nil
	}
	if err := s.cache.Store(cls.Key); err != nil {
		return s.key, false, err
	}
	s.key = cls.Key
	return s.key, true, nil
}
