package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

func TestDaysCmd_CountDefault(t *testing.T) {
	flag := daysCmd.Flags().Lookup("count")
	require.NotNil(t, flag)
	assert.Equal(t, "3", flag.DefValue)
}

func TestDaysCmd_ListsSimilarDays(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	out, err := execute(t, "days", "prices", "08/11/2023", "aapl")

	require.NoError(t, err)
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "08/12/2023")
	assert.Contains(t, out, "1.0000")
	assert.NotContains(t, out, "08/11/2023")
}

func TestDaysCmd_InvalidDate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	_, err := execute(t, "days", "prices", "2023-08-11", "aapl")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDaysCmd_UnknownDay(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	loadTestCollections(t)

	_, err := execute(t, "days", "prices", "01/02/2020", "aapl")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
