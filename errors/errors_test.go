package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCause(t *testing.T) {
	plain := stdlib.New("disk full")

	assert.Equal(t, ErrNotFound, errors.Cause(ErrNotFound))
	assert.Equal(t, ErrNotFound, errors.Cause(Wrap(ErrNotFound, "escrow")))
	assert.Equal(t, plain, errors.Cause(Wrapf(plain, "write %d", 3)))
}

func TestErrorIs(t *testing.T) {
	var nilWrapped *wrappedError

	specs := []struct {
		name string
		root *Error
		err  error
		is   bool
	}{
		{"same root", ErrNotFound, ErrNotFound, true},
		{"other root", ErrNotFound, ErrInvalidModel, false},
		{"pkg errors wrap", ErrNotFound, errors.Wrap(ErrNotFound, "job gone"), true},
		{"nested wrap", ErrUnauthorized, Wrap(Wrapf(ErrUnauthorized, "job %q", "j1"), "deposit"), true},
		{"wrap of another root", ErrNotFound, errors.Wrap(ErrOverflow, "amount"), false},
		{"plain error", ErrNotFound, fmt.Errorf("not found"), false},
		{"wrapped plain error", ErrNotFound, errors.Wrap(fmt.Errorf("not found"), "lookup"), false},
		{"nil root and nil error", nil, nil, true},
		{"nil root and typed nil", nil, nilWrapped, true},
		{"nil root and real error", nil, ErrUnauthorized, false},
	}
	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			assert.Equal(t, s.is, s.root.Is(s.err))
		})
	}
}

func TestWrapEmpty(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
}

func TestWrappedMessage(t *testing.T) {
	err := Wrapf(ErrEmpty, "beneficiary of %q", "J1")
	require.Equal(t, `beneficiary of "J1": value is empty`, err.Error())

	short := fmt.Sprintf("%v", err)
	assert.True(t, strings.HasPrefix(short, `beneficiary of "J1": value is empty [`), short)

	long := fmt.Sprintf("%+v", err)
	assert.Contains(t, long, "TestWrappedMessage")
}

func TestRegisterDuplicatedCode(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrNotFound.ABCICode(), "second not found")
	})
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("release exploded")
	}
	err := run()
	require.Error(t, err)
	assert.True(t, ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "release exploded")
}
