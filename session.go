package folio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// KV is a string key/value store. Implementations must be safe for use from
// multiple goroutines.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryKV is an in-memory KV. The zero value is ready to use.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

// Get implements KV.
func (kv *MemoryKV) Get(key string) (string, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok
}

// Set implements KV.
func (kv *MemoryKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.m == nil {
		kv.m = make(map[string]string)
	}
	kv.m[key] = value
	return nil
}

// Delete implements KV.
func (kv *MemoryKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
	return nil
}

// FileKV is a KV persisted as a flat YAML mapping. Every write rewrites the
// file.
type FileKV struct {
	path string
	mu   sync.Mutex
	m    map[string]string
}

// OpenFileKV loads path, or starts empty when it does not exist.
func OpenFileKV(path string) (*FileKV, error) {
	kv := &FileKV{path: path, m: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &kv.m); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	if kv.m == nil {
		kv.m = make(map[string]string)
	}
	return kv, nil
}

// Get implements KV.
func (kv *FileKV) Get(key string) (string, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok
}

// Set implements KV.
func (kv *FileKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return kv.flush()
}

// Delete implements KV.
func (kv *FileKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
	return kv.flush()
}

func (kv *FileKV) flush() error {
	data, err := yaml.Marshal(kv.m)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(kv.path), 0o755); err != nil {
		return fmt.Errorf("write state %s: %w", kv.path, err)
	}
	if err := os.WriteFile(kv.path, data, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", kv.path, err)
	}
	return nil
}

// Preferences are user-agent settings read at boot.
type Preferences struct {
	ReducedMotion bool
}

const (
	loaderShownKey = "loader-shown"
	themeKey       = "theme"
)

// Session is the explicit context shared by the page and the intro
// sequencer: the session-scoped loader marker, the persisted theme and the
// user's motion preference.
type Session struct {
	ID    uuid.UUID
	Prefs Preferences

	session KV // cleared when the browsing session ends
	local   KV // survives sessions
}

// NewSession creates a session context. Nil stores default to fresh
// in-memory stores.
func NewSession(session, local KV, prefs Preferences) *Session {
	if session == nil {
		session = &MemoryKV{}
	}
	if local == nil {
		local = &MemoryKV{}
	}
	return &Session{ID: uuid.New(), Prefs: prefs, session: session, local: local}
}

// NewBrowsingSession starts a browsing session over the persistent store
// local. The loader marker lives in memory for this session only; the theme
// is read from and written to local.
func NewBrowsingSession(local KV, prefs Preferences) *Session {
	return NewSession(&MemoryKV{}, local, prefs)
}

// LoaderShown reports whether the intro has already played this session.
func (s *Session) LoaderShown() bool {
	v, ok := s.session.Get(loaderShownKey)
	return ok && v == "1"
}

// MarkLoaderShown records that the intro has played this session.
func (s *Session) MarkLoaderShown() error {
	return s.session.Set(loaderShownKey, "1")
}

// ReducedMotion reports the user's reduced-motion preference.
func (s *Session) ReducedMotion() bool {
	return s.Prefs.ReducedMotion
}

// Theme returns the persisted theme, dark by default.
func (s *Session) Theme() string {
	if v, ok := s.local.Get(themeKey); ok && (v == ThemeDark || v == ThemeLight) {
		return v
	}
	return ThemeDark
}

// SetTheme persists theme.
func (s *Session) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.local.Set(themeKey, theme)
}
