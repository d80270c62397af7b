package ledger

import (
	"reflect"

	"github.com/kazitrust/ledger/errors"
)

// Msg is a requested state transition, such as funding an escrow. It
// carries no authentication; signers travel on the enclosing Tx.
type Msg interface {
	// Path routes the message to its handler, e.g. "escrow/release".
	// It must match [0-9A-Za-z_/]+.
	Path() string

	// Validate checks the message without reading state.
	Validate() error
}

// Tx is what a client submits: one message plus whatever the decorators
// need to authenticate it.
type Tx interface {
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath is the message path of tx, or "(missing)" when it has none.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into destination, which must point to
// the expected message type, and validates it:
//
//	var msg escrow.ReleaseMsg
//	if err := ledger.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	if err := assignMsg(msg, destination); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

func assignMsg(msg Msg, destination interface{}) error {
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if want := dst.Elem().Type(); !src.Type().AssignableTo(want) {
		return errors.Wrapf(errors.ErrInvalidMsg, "want %s, got %T", want, msg)
	}
	dst.Elem().Set(src)
	return nil
}
