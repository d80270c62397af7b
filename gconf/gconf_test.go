package gconf

import (
	"encoding/json"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type myConfig struct {
	Number int64  `json:"number"`
	Text   string `json:"text"`
}

func (c *myConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInvalidInput, "negative number")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &myConfig{Number: 852151421, Text: "foobar"},
		},
		"empty": {
			Conf: &myConfig{},
		},
		"invalid configuration cannot be saved": {
			Conf:        &myConfig{Number: -1},
			WantSaveErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "mypkg", tc.Conf)
			if !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myConfig
			require.NoError(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var got myConfig
	err := Load(db, "nothing", &got)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitConfig(t *testing.T) {
	genesis := `{"conf": {"mypkg": {"number": 7, "text": "seven"}}}`
	var opts ledger.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, InitConfig(db, opts, "mypkg", &myConfig{}))
	var got myConfig
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, myConfig{Number: 7, Text: "seven"}, got)

	// a package missing from genesis keeps its defaults
	def := &myConfig{Number: 3}
	require.NoError(t, InitConfig(db, opts, "other", def))
	var other myConfig
	require.NoError(t, Load(db, "other", &other))
	assert.Equal(t, int64(3), other.Number)

	// invalid values are rejected before they reach the store
	bad := `{"conf": {"mypkg": {"number": -2}}}`
	require.NoError(t, json.Unmarshal([]byte(bad), &opts))
	err := InitConfig(store.MemStore(), opts, "mypkg", &myConfig{})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
