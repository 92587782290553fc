package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsim/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finsim/internal/core/domain"
)

func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	want := domain.DefaultSettings()
	want.StopWords = false
	want.Stemming = true
	want.TopK = 4
	want.MinScore = 0
	want.UserAgent = "test-agent"
	require.NoError(t, svc.Save(want))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsService_SaveInvalid(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	s := domain.DefaultSettings()
	s.TopK = 0
	assert.ErrorIs(t, svc.Save(s), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, svc.Set(KeyTopK, "5"))
	require.NoError(t, svc.Set(KeyMinScore, "0.3"))
	require.NoError(t, svc.Set(KeyStopWords, "false"))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, got.TopK)
	assert.InDelta(t, 0.3, got.MinScore, 1e-12)
	assert.False(t, got.StopWords)
}

func TestSettingsService_SetErrors(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "retrieval.unknown", "1"},
		{"not a number", KeyTopK, "many"},
		{"not a bool", KeyStemming, "sometimes"},
		{"out of range", KeyMinScore, "2"},
		{"zero top_k", KeyTopK, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Reset(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())
	require.NoError(t, svc.Set(KeyTopK, "9"))

	require.NoError(t, svc.Reset(KeyTopK))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopK, got.TopK)
	assert.ErrorIs(t, svc.Reset("nope"), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()
	assert.Len(t, keys, 7)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, KeyMinScore)
}
