package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

// File names inside the content directory.
const (
	fileProfile    = "profile.json"
	fileMetrics    = "metrics.json"
	fileSkills     = "skills.json"
	fileServices   = "services.json"
	fileProjects   = "projects.json"
	fileExperience = "experience.json"
	fileContact    = "contact.json"
	fileTechStack  = "tech_stack.json"
	fileAboutMe    = "about_me.md"
	fileAboutLogo  = "about_logo.md"
)

// ErrNotFound is returned when a content file does not exist.
var ErrNotFound = errors.New("content not found")

// Store loads records from a content directory and caches them until the
// underlying file changes.
type Store struct {
	dir    string
	md     goldmark.Markdown
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]any
}

// NewStore creates a store reading from dir.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:    dir,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger: logger,
		cache:  make(map[string]any),
	}
}

// Dir returns the content directory.
func (s *Store) Dir() string {
	return s.dir
}

// Profile loads profile.json.
func (s *Store) Profile() (Profile, error) { return loadJSON[Profile](s, fileProfile) }

// Metrics loads metrics.json.
func (s *Store) Metrics() ([]Metric, error) { return loadJSON[[]Metric](s, fileMetrics) }

// Skills loads skills.json.
func (s *Store) Skills() (Skills, error) { return loadJSON[Skills](s, fileSkills) }

// Services loads services.json.
func (s *Store) Services() ([]Service, error) { return loadJSON[[]Service](s, fileServices) }

// Projects loads projects.json.
func (s *Store) Projects() ([]Project, error) { return loadJSON[[]Project](s, fileProjects) }

// Experience loads experience.json.
func (s *Store) Experience() ([]Experience, error) { return loadJSON[[]Experience](s, fileExperience) }

// Contact loads contact.json.
func (s *Store) Contact() (Contact, error) { return loadJSON[Contact](s, fileContact) }

// TechStack loads tech_stack.json.
func (s *Store) TechStack() (TechStack, error) { return loadJSON[TechStack](s, fileTechStack) }

// About renders about_me.md and about_logo.md to HTML.
func (s *Store) About() (About, error) {
	me, err := s.markdown(fileAboutMe)
	if err != nil {
		return About{}, err
	}
	logo, err := s.markdown(fileAboutLogo)
	if err != nil {
		return About{}, err
	}
	return About{AboutMe: me, AboutLogo: logo}, nil
}

// AboutText returns about_me.md as trimmed markdown source.
func (s *Store) AboutText() (string, error) {
	data, err := s.read(fileAboutMe)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(data)), nil
}

// Invalidate drops the cached copy of one file.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

// InvalidateAll drops every cached file.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// Watch invalidates cached files when they change on disk. It is
// non-blocking; the returned channel closes once the watcher has stopped
// after ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch content: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch content %s: %w", s.dir, err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				name := filepath.Base(ev.Name)
				s.Invalidate(name)
				s.logger.Debug("content changed", zap.String("file", name), zap.String("op", ev.Op.String()))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("content watcher", zap.Error(err))
			}
		}
	}()
	return done, nil
}

func (s *Store) cached(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.cache[name]
	return v, ok
}

func (s *Store) store(name string, v any) {
	s.mu.Lock()
	s.cache[name] = v
	s.mu.Unlock()
}

func (s *Store) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func loadJSON[T any](s *Store, name string) (T, error) {
	if v, ok := s.cached(name); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	var out T
	data, err := s.read(name)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", name, err)
	}
	s.store(name, out)
	return out, nil
}

func (s *Store) markdown(name string) (string, error) {
	if v, ok := s.cached(name); ok {
		if html, ok := v.(string); ok {
			return html, nil
		}
	}
	data, err := s.read(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := s.md.Convert(bytes.TrimSpace(data), &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	html := strings.TrimSpace(buf.String())
	s.store(name, html)
	return html, nil
}
