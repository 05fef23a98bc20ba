// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt loads, caches, and fills the instruction templates used to
// prompt a downstream generator.
//
// Template problems never abort a run: Load and Fill report them as errors,
// while LoadContent, FillTemplate, and GetTemplate log them and fall back to
// an empty string or the unfilled template.
package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

var (
	// ErrUnsupportedFormat is returned for files other than .md and .txt.
	ErrUnsupportedFormat = errors.New("unsupported template format")

	// ErrNotFound is returned when the template file does not exist.
	ErrNotFound = errors.New("template not found")

	// ErrInvalidEncoding is returned for template files that are not UTF-8.
	ErrInvalidEncoding = errors.New("template is not valid UTF-8")
)

// templateExts lists the accepted template file extensions. The match is
// case-sensitive.
var templateExts = []string{".md", ".txt"}

// templateCache maps a template basename to its raw content. Entries are
// never evicted or invalidated.
type templateCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func (c *templateCache) get(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	content, ok := c.entries[name]
	return content, ok
}

// add stores content unless name is already cached, and returns the cached
// value. The first load of a basename wins.
func (c *templateCache) add(name, content string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[name]; ok {
		return existing
	}
	c.entries[name] = content
	return content
}

func (c *templateCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *templateCache) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store loads templates from disk and caches them by basename for its
// lifetime. A cached basename is served without touching the filesystem,
// even if the file changed or was deleted, and same-named files in
// different directories share one entry. Build a new Store to pick up
// changes. A Store is safe for concurrent use.
type Store struct {
	cache  templateCache
	logger zerolog.Logger
}

// NewStore creates an empty Store that reports recoverable problems to logger.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		cache:  templateCache{entries: make(map[string]string)},
		logger: logger,
	}
}

// Load returns the raw content of the template at path. The cache is
// consulted before any validation. Otherwise the extension must be .md or
// .txt (ErrUnsupportedFormat) and the file must exist (ErrNotFound). Read
// failures, including content that is not UTF-8, are returned wrapped and
// nothing is cached.
func (s *Store) Load(path string) (string, error) {
	name := cacheKey(path)
	if content, ok := s.cache.get(name); ok {
		return content, nil
	}

	if !hasTemplateExt(path) {
		return "", fmt.Errorf("%w: %s (use .md or .txt)", ErrUnsupportedFormat, path)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("stat template %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading template %s: %w", path, ErrInvalidEncoding)
	}

	return s.cache.add(name, string(data)), nil
}

// LoadContent is Load with errors logged and replaced by "".
func (s *Store) LoadContent(path string) string {
	content, err := s.Load(path)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("path", path).Msg("template skipped")
		} else {
			s.logger.Error().Err(err).Str("path", path).Msg("loading template")
		}
		return ""
	}
	return content
}

// GetTemplate loads the template at path and flattens it to a single line.
// It does not fill placeholders.
func (s *Store) GetTemplate(path string) string {
	return Flatten(s.LoadContent(path))
}

// FillTemplate is Fill with errors logged. On any error the original
// template is returned unchanged.
func (s *Store) FillTemplate(template string, data map[string]any) string {
	filled, err := Fill(template, data)
	if err != nil {
		var missing *MissingKeyError
		if errors.As(err, &missing) {
			s.logger.Warn().Str("key", missing.Key).Msg("missing template variable")
		} else {
			s.logger.Error().Err(err).Msg("formatting template")
		}
		return template
	}
	return filled
}

// Preload loads every .md and .txt file directly inside dir and returns how
// many were loaded. Other files and subdirectories are ignored. Per-file
// failures are joined into the returned error; the other files still load.
func (s *Store) Preload(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	var loaded int
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !hasTemplateExt(entry.Name()) {
			continue
		}
		if _, err := s.Load(filepath.Join(dir, entry.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		loaded++
	}
	return loaded, errors.Join(errs...)
}

// Lookup returns the cached content for a template basename.
func (s *Store) Lookup(name string) (string, bool) {
	return s.cache.get(name)
}

// Names returns the cached template basenames in sorted order.
func (s *Store) Names() []string {
	return s.cache.names()
}

// Len returns the number of cached templates.
func (s *Store) Len() int {
	return s.cache.len()
}

// cacheKey returns the file name without its extension. A leading dot does
// not start an extension, so ".md" keys as ".md".
func cacheKey(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

func hasTemplateExt(path string) bool {
	for _, ext := range templateExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
