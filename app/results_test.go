package app

import (
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSets(t *testing.T) {
	models := []ledger.Model{
		ledger.Pair([]byte("esc:J1"), []byte(`{"asset":"KES"}`)),
		ledger.Pair([]byte("esc:J2"), []byte(`{"asset":"XLM"}`)),
	}
	keys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	values, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	got, err := DecodeQueryResponse(keys, values)
	require.NoError(t, err)
	assert.Equal(t, models, got)

	// nothing found
	empty, err := ResultsFromKeys(nil).Marshal()
	require.NoError(t, err)
	assert.Empty(t, empty)
	got, err = DecodeQueryResponse(empty, empty)
	require.NoError(t, err)
	assert.Empty(t, got)

	// sizes must match
	_, err = DecodeQueryResponse(keys, empty)
	assert.True(t, errors.ErrInvalidModel.Is(err))
}
