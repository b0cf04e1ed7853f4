// Package config persists the launcher settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	KeyMatchPath = "match_path"
	KeyFuzzy     = "fuzzy"

	envPrefix = "JBP"
)

var (
	// ErrUnknownKey indicates a key the store does not manage
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue indicates a value that cannot be parsed for its key
	ErrInvalidValue = errors.New("invalid config value")
)

// Settings is the on-disk shape of the config file.
type Settings struct {
	MatchPath bool `yaml:"match_path" json:"match_path"`
	Fuzzy     bool `yaml:"fuzzy" json:"fuzzy"`
}

// Store reads settings through viper (file, JBP_* env overrides, defaults)
// and writes them back atomically. Only persisted holds what goes back to
// disk, so env overrides never leak into the file.
type Store struct {
	filePath  string
	v         *viper.Viper
	persisted Settings
	mu        sync.RWMutex
}

// Load opens the config file at filePath. A missing file is not an error.
func Load(filePath string) (*Store, error) {
	v := newFileViper(filePath)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := readConfig(v, filePath); err != nil {
		return nil, err
	}

	file := newFileViper(filePath)
	if err := readConfig(file, filePath); err != nil {
		return nil, err
	}

	return &Store{
		filePath:  filePath,
		v:         v,
		persisted: Settings{MatchPath: file.GetBool(KeyMatchPath), Fuzzy: file.GetBool(KeyFuzzy)},
	}, nil
}

func newFileViper(filePath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("yaml")
	v.SetDefault(KeyMatchPath, false)
	v.SetDefault(KeyFuzzy, false)
	return v
}

// readConfig reads the file into v. A missing file is not an error.
func readConfig(v *viper.Viper, filePath string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load config %s: %w", filePath, err)
		}
	}
	return nil
}

func (s *Store) Path() string { return s.filePath }

func (s *Store) MatchPath() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetBool(KeyMatchPath)
}

func (s *Store) Fuzzy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetBool(KeyFuzzy)
}

func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settingsNoLock()
}

func (s *Store) settingsNoLock() Settings {
	return Settings{
		MatchPath: s.v.GetBool(KeyMatchPath),
		Fuzzy:     s.v.GetBool(KeyFuzzy),
	}
}

// SetMatchPath updates match_path and persists it immediately.
func (s *Store) SetMatchPath(value bool) error {
	return s.SetBool(KeyMatchPath, value)
}

// SetFuzzy updates fuzzy and persists it immediately.
func (s *Store) SetFuzzy(value bool) error {
	return s.SetBool(KeyFuzzy, value)
}

// SetBool updates a boolean key and persists. On save failure the
// in-memory change is rolled back.
func (s *Store) SetBool(key string, value bool) error {
	if !isKnown(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevPersisted := s.v.GetBool(key), s.persisted
	switch key {
	case KeyMatchPath:
		s.persisted.MatchPath = value
	case KeyFuzzy:
		s.persisted.Fuzzy = value
	}
	s.v.Set(key, value)
	if err := s.saveNoLock(); err != nil {
		s.v.Set(key, prev)
		s.persisted = prevPersisted
		return fmt.Errorf("persist failed: %w", err)
	}
	return nil
}

// Get returns the value of key as a string.
func (s *Store) Get(key string) (string, error) {
	if !isKnown(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strconv.FormatBool(s.v.GetBool(key)), nil
}

// Set parses raw for key and persists it.
func (s *Store) Set(key, raw string) error {
	if !isKnown(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}
	return s.SetBool(key, value)
}

// Keys lists the managed keys in sorted order.
func Keys() []string {
	keys := []string{KeyMatchPath, KeyFuzzy}
	sort.Strings(keys)
	return keys
}

func isKnown(key string) bool {
	return key == KeyMatchPath || key == KeyFuzzy
}

// saveNoLock writes the persisted settings (caller must hold lock)
func (s *Store) saveNoLock() error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(s.persisted)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	f, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to fsync config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}

	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}
