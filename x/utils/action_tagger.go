package utils

import (
	"github.com/kazitrust/ledger"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which the message path is published.
const ActionKey = "action"

// ActionTagger publishes the message path of each delivered tx under
// ActionKey, e.g. action=escrow/release, for event subscribers.
type ActionTagger struct{}

var _ ledger.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check results carry no tags.
func (ActionTagger) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

func (ActionTagger) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, store, tx)
	if err == nil {
		res.Tags = append(res.Tags, actionTag(msg.Path()))
	}
	return res, err
}

func actionTag(path string) common.KVPair {
	return common.KVPair{Key: []byte(ActionKey), Value: []byte(path)}
}
