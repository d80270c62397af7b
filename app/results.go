package app

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

var resultCodec = amino.NewCodec()

// ResultSet holds the keys or the values returned by a query. A query
// response carries one ResultSet for the keys and one for the values,
// both of the same length.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

// Marshal encodes the set with amino.
func (r *ResultSet) Marshal() ([]byte, error) {
	if len(r.Results) == 0 {
		return nil, nil
	}
	return resultCodec.MarshalBinaryBare(r)
}

// Unmarshal decodes a set encoded with Marshal. Empty input is an
// empty set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	r.Results = nil
	if len(raw) == 0 {
		return nil
	}
	if err := resultCodec.UnmarshalBinaryBare(raw, r); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return nil
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []ledger.Model) *ResultSet {
	return collect(models, func(m ledger.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []ledger.Model) *ResultSet {
	return collect(models, func(m ledger.Model) []byte { return m.Value })
}

func collect(models []ledger.Model, field func(ledger.Model) []byte) *ResultSet {
	out := make([][]byte, 0, len(models))
	for _, m := range models {
		out = append(out, field(m))
	}
	return &ResultSet{Results: out}
}

// JoinResults pairs keys and values back into models.
func JoinResults(keys, values *ResultSet) ([]ledger.Model, error) {
	if n, m := len(keys.Results), len(values.Results); n != m {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%d keys and %d values", n, m)
	}
	models := make([]ledger.Model, 0, len(keys.Results))
	for i, k := range keys.Results {
		models = append(models, ledger.Pair(k, values.Results[i]))
	}
	return models, nil
}

// DecodeQueryResponse rebuilds the models from the key and value sets of
// a query response.
func DecodeQueryResponse(key, value []byte) ([]ledger.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := v.Unmarshal(value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return JoinResults(&k, &v)
}
