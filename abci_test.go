package ledger

import (
	"fmt"
	"testing"

	"github.com/kazitrust/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverOrError(t *testing.T) {
	tags := []common.KVPair{{Key: []byte("action"), Value: []byte("escrow/release")}}
	res := DeliverOrError(&DeliverResult{Data: []byte{1}, Log: "released", Tags: tags}, nil, false)
	assert.EqualValues(t, 0, res.Code)
	assert.Equal(t, "released", res.Log)
	assert.Equal(t, tags, res.Tags)

	res = DeliverOrError(nil, errors.Wrap(errors.ErrUnauthorized, "not the employer"), false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	assert.Equal(t, "cannot deliver tx: not the employer: unauthorized", res.Log)
}

func TestCheckOrError(t *testing.T) {
	res := CheckOrError(&CheckResult{GasAllocated: 50}, nil, false)
	assert.EqualValues(t, 0, res.Code)
	assert.EqualValues(t, 50, res.GasWanted)

	res = CheckOrError(nil, fmt.Errorf("disk on fire"), false)
	assert.EqualValues(t, 1, res.Code)
	assert.Equal(t, "cannot check tx: internal error", res.Log)

	res = CheckOrError(nil, fmt.Errorf("disk on fire"), true)
	assert.Equal(t, "cannot check tx: disk on fire", res.Log)
}

func TestQueryError(t *testing.T) {
	res := QueryError(errors.ErrNotFound, false)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
	assert.Equal(t, "not found", res.Log)
}
