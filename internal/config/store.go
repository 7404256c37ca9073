package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/tyemirov/ai/internal/terminal"
)

var (
	// ErrNoModelConfigured indicates that no model name was supplied by any source.
	ErrNoModelConfigured = errors.New("no model configured: pass --model, set OLLAMA_MODEL with --config, or export OLLAMA_MODEL")
	// ErrNoAPIBaseConfigured indicates that no inference server address was supplied by any source.
	ErrNoAPIBaseConfigured = errors.New("no API base configured: set OLLAMA_API_BASE with --config or export OLLAMA_API_BASE")
)

// Setting is a single key and value pair in display order.
type Setting struct {
	Key   string
	Value string
}

// Store layers the compiled-in defaults beneath the persisted settings.
// It is built once at startup and is read-only afterwards.
type Store struct {
	path      string
	defaults  Settings
	persisted Settings
	layers    *viper.Viper
}

// NewStore loads the settings file at path and layers it over the compiled-in defaults.
func NewStore(path string) (*Store, error) {
	persisted, loadError := Load(path)
	if loadError != nil {
		return nil, loadError
	}
	store := NewStoreFromSettings(persisted)
	store.path = path
	return store, nil
}

// NewStoreFromSettings layers already-loaded settings over the compiled-in defaults.
func NewStoreFromSettings(persisted Settings) *Store {
	defaults := Defaults()
	layers := viper.New()
	for key, value := range defaults {
		layers.SetDefault(key, value)
	}
	fileLayer := make(map[string]interface{}, len(persisted))
	normalized := make(Settings, len(persisted))
	for key, value := range persisted {
		normalizedKey := NormalizeKey(key)
		fileLayer[normalizedKey] = value
		normalized[normalizedKey] = value
	}
	_ = layers.MergeConfigMap(fileLayer)
	return &Store{
		defaults:  defaults,
		persisted: normalized,
		layers:    layers,
	}
}

// Path returns the file the store was loaded from, or an empty string for in-memory stores.
func (store *Store) Path() string {
	return store.path
}

// Persisted returns a copy of the settings read from the file.
func (store *Store) Persisted() Settings {
	return store.persisted.Clone()
}

// Value returns the merged value for key: the persisted value when present, otherwise the default.
func (store *Store) Value(key string) string {
	return store.layers.GetString(NormalizeKey(key))
}

// Resolve picks the effective value of key. A non-empty flag value wins, then a non-empty persisted
// value, then a non-empty value from lookup, then the compiled-in default. Lookup is only consulted
// when the earlier sources are empty.
func (store *Store) Resolve(key string, flagValue string, lookup LookupFunc) string {
	if flagValue != "" {
		return flagValue
	}
	normalizedKey := NormalizeKey(key)
	if store.layers.InConfig(normalizedKey) {
		if storedValue := store.layers.GetString(normalizedKey); storedValue != "" {
			return storedValue
		}
	}
	if lookup != nil {
		if environmentValue := lookup(normalizedKey); environmentValue != "" {
			return environmentValue
		}
	}
	return store.defaults[normalizedKey]
}

// ResolveModel returns the model name from the flag, the settings file, or OLLAMA_MODEL.
func (store *Store) ResolveModel(flagValue string, lookup LookupFunc) (string, error) {
	model := strings.TrimSpace(store.Resolve(KeyModel, strings.TrimSpace(flagValue), lookup))
	if model == "" {
		return "", ErrNoModelConfigured
	}
	return model, nil
}

// ResolveAPIBase returns the inference server address without a trailing slash.
func (store *Store) ResolveAPIBase(flagValue string, lookup LookupFunc) (string, error) {
	apiBase := strings.TrimRight(strings.TrimSpace(store.Resolve(KeyAPIBase, strings.TrimSpace(flagValue), lookup)), "/")
	if apiBase == "" {
		return "", ErrNoAPIBaseConfigured
	}
	return apiBase, nil
}

// decoration returns the value of key, or its default when the stored value is empty.
func (store *Store) decoration(key string) string {
	if value := store.Value(key); value != "" {
		return value
	}
	return store.defaults[key]
}

// SystemPromptTemplate returns the system prompt template with placeholders intact.
// Escape spellings in the template are sent verbatim.
func (store *Store) SystemPromptTemplate() string {
	return store.decoration(KeySystemPrompt)
}

// OutputStart returns the marker written before the first response token.
func (store *Store) OutputStart() string {
	return store.decoration(KeyOutputStart)
}

// OutputEnd returns the marker written after the response.
func (store *Store) OutputEnd() string {
	return store.decoration(KeyOutputEnd)
}

// CodeColor returns the escape sequence substituted for $code in the system prompt.
// Spellings such as \033 or \e are decoded to ESC.
func (store *Store) CodeColor() string {
	return terminal.DecodeEscapes(store.decoration(KeyCodeColor))
}

// SpinnerGlyphs returns the spinner animation frames, one per rune. Escape spellings are decoded.
func (store *Store) SpinnerGlyphs() []string {
	value := terminal.DecodeEscapes(store.decoration(KeySpinnerChars))
	glyphs := make([]string, 0, len(value))
	for _, glyph := range value {
		glyphs = append(glyphs, string(glyph))
	}
	return glyphs
}

// List returns the merged settings ordered by key.
func (store *Store) List() []Setting {
	merged := store.defaults.Clone()
	for key, value := range store.persisted {
		merged[key] = value
	}
	listing := make([]Setting, 0, len(merged))
	for _, key := range merged.SortedKeys() {
		listing = append(listing, Setting{Key: key, Value: merged[key]})
	}
	return listing
}
