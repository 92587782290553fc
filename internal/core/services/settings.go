package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
	"github.com/custodia-labs/finsim/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStopWords         = "retrieval.stop_words"
	KeyStemming          = "retrieval.stemming"
	KeyTopK              = "retrieval.top_k"
	KeyMinScore          = "retrieval.min_score"
	KeyRequestsPerSecond = "news.requests_per_second"
	KeyArticlesPerPage   = "news.articles_per_page"
	KeyUserAgent         = "news.user_agent"
)

// settingKind describes how a key's string value is parsed.
type settingKind int

const (
	kindBool settingKind = iota
	kindInt
	kindFloat
	kindString
)

var settingKinds = map[string]settingKind{
	KeyStopWords:         kindBool,
	KeyStemming:          kindBool,
	KeyTopK:              kindInt,
	KeyMinScore:          kindFloat,
	KeyRequestsPerSecond: kindFloat,
	KeyArticlesPerPage:   kindInt,
	KeyUserAgent:         kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		StopWords:         s.getBool(KeyStopWords, defaults.StopWords),
		Stemming:          s.getBool(KeyStemming, defaults.Stemming),
		TopK:              s.getInt(KeyTopK, defaults.TopK),
		MinScore:          s.getFloat(KeyMinScore, defaults.MinScore),
		RequestsPerSecond: s.getFloat(KeyRequestsPerSecond, defaults.RequestsPerSecond),
		ArticlesPerPage:   s.getInt(KeyArticlesPerPage, defaults.ArticlesPerPage),
		UserAgent:         s.getString(KeyUserAgent, defaults.UserAgent),
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("stored settings: %w", err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		KeyStopWords:         settings.StopWords,
		KeyStemming:          settings.Stemming,
		KeyTopK:              settings.TopK,
		KeyMinScore:          settings.MinScore,
		KeyRequestsPerSecond: settings.RequestsPerSecond,
		KeyArticlesPerPage:   settings.ArticlesPerPage,
		KeyUserAgent:         settings.UserAgent,
	}
	for _, key := range s.Keys() {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value for key and persists it after validating the
// resulting settings.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	var err error
	value = strings.TrimSpace(value)
	switch kind {
	case kindBool:
		parsed, err = strconv.ParseBool(value)
	case kindInt:
		parsed, err = strconv.Atoi(value)
	case kindFloat:
		parsed, err = strconv.ParseFloat(value, 64)
	case kindString:
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	switch key {
	case KeyStopWords:
		settings.StopWords = parsed.(bool)
	case KeyStemming:
		settings.Stemming = parsed.(bool)
	case KeyTopK:
		settings.TopK = parsed.(int)
	case KeyMinScore:
		settings.MinScore = parsed.(float64)
	case KeyRequestsPerSecond:
		settings.RequestsPerSecond = parsed.(float64)
	case KeyArticlesPerPage:
		settings.ArticlesPerPage = parsed.(int)
	case KeyUserAgent:
		settings.UserAgent = parsed.(string)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(key, parsed)
}

// Reset removes a stored setting so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if _, ok := settingKinds[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Keys returns all recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for key := range settingKinds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) getBool(key string, def bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}
