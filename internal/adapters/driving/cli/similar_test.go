package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

func TestSimilarCmd_RequiresDocOrKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "similar", "prices")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "doc")
}

func TestSimilarCmd_DocAndKeyExclusive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "similar", "prices", "--doc", "0", "--key", "08/11/2023|aapl")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestSimilarCmd_ByDoc(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	out, err := execute(t, "similar", "prices", "--doc", "0", "--json")
	require.NoError(t, err)

	var matches []domain.Match
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Document.ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestSimilarCmd_IncludeSelf(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	out, err := execute(t, "similar", "prices", "--doc", "2", "--include-self", "--json")
	require.NoError(t, err)

	var matches []domain.Match
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Document.ID)
}

func TestSimilarCmd_ByKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	out, err := execute(t, "similar", "prices", "--key", "08/12/2023|aapl")

	require.NoError(t, err)
	assert.Contains(t, out, "08/11/2023 AAPL")
}

func TestSimilarCmd_UnknownKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	_, err := execute(t, "similar", "prices", "--key", "01/01/1999|aapl")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSimilarCmd_MissingDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	_, err := execute(t, "similar", "prices", "--doc", "42")

	assert.ErrorIs(t, err, domain.ErrMissingDocument)
}

func TestSimilarCmd_Explain(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	out, err := execute(t, "similar", "notes", "--doc", "0", "--min-score", "0", "--top", "2", "--explain")

	require.NoError(t, err)
	first := strings.Index(out, "[1]")
	dogTerms := strings.Index(out, "terms: ")
	second := strings.Index(out, "[2]")
	stockTerms := strings.LastIndex(out, "terms: ")
	require.True(t, first >= 0 && second >= 0, out)
	assert.Less(t, first, dogTerms)
	assert.Less(t, dogTerms, second)
	assert.Less(t, second, stockTerms)
	assert.Contains(t, out[dogTerms:second], "dog")
	assert.Contains(t, out[stockTerms:], "stock")
}

func TestSimilarCmd_ExplainJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	out, err := execute(t, "similar", "notes", "--doc", "0", "--min-score", "0", "--top", "2", "--explain", "--json")

	require.NoError(t, err)
	var got []struct {
		Document domain.Document `json:"document"`
		Score    float64         `json:"score"`
		Terms    []string        `json:"terms"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Document.ID)
	assert.Contains(t, got[0].Terms, "dog")
	assert.Equal(t, 2, got[1].Document.ID)
	assert.Contains(t, got[1].Terms, "stock")
}
