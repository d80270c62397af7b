package app

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/app"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/x/cash"
	"github.com/kazitrust/ledger/x/escrow"
	"github.com/kazitrust/ledger/x/sigs"
	"github.com/kazitrust/ledger/x/utils"
	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

const chainID = "kazi-test-1"

// account is a key together with the sequence of its next signature.
type account struct {
	kp  *keypair.Full
	seq int64
}

func newAccount() *account {
	return &account{kp: ledgertest.NewKey()}
}

func (a *account) id() ledger.Identity {
	return ledgertest.Identity(a.kp)
}

// signedTx builds and encodes a transaction signed by the account,
// consuming one sequence number.
func (a *account) signedTx(t *testing.T, msg ledger.Msg) []byte {
	t.Helper()
	tx := &app.Tx{Msg: msg}
	sig, err := sigs.SignTx(a.kp, tx, chainID, a.seq)
	require.NoError(t, err)
	a.seq++
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := app.EncodeTx(tx)
	require.NoError(t, err)
	return bz
}

type testApp struct {
	t      *testing.T
	base   app.BaseApp
	height int64
}

func newTestApp(t *testing.T, accts ...cash.GenesisAccount) *testApp {
	t.Helper()
	base, err := Application("kazi", Stack(), app.TxDecoder, "", true)
	require.NoError(t, err)

	state, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{"escrow": escrow.DefaultConfiguration()},
		"cash": accts,
	})
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	return &testApp{t: t, base: base}
}

// block delivers the transactions in a new block and commits it.
func (a *testApp) block(txs ...[]byte) []abci.ResponseDeliverTx {
	a.height++
	a.base.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: chainID, Height: a.height}})
	res := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		res[i] = a.base.DeliverTx(tx)
	}
	a.base.EndBlock(abci.RequestEndBlock{Height: a.height})
	a.base.Commit()
	return res
}

func (a *testApp) query(path string, data []byte) []ledger.Model {
	a.t.Helper()
	res := a.base.Query(abci.RequestQuery{Path: path, Data: data})
	require.EqualValues(a.t, 0, res.Code, res.Log)
	models, err := app.DecodeQueryResponse(res.Key, res.Value)
	require.NoError(a.t, err)
	return models
}

func (a *testApp) balance(jobID string) string {
	a.t.Helper()
	models := a.query("/escrows/balance", []byte(jobID))
	require.Len(a.t, models, 1)
	return string(models[0].Value)
}

func (a *testApp) wallet(id ledger.Identity) map[string]string {
	a.t.Helper()
	models := a.query("/wallets", []byte(id))
	res := map[string]string{}
	if len(models) == 0 {
		return res
	}
	require.NoError(a.t, json.Unmarshal(models[0].Value, &res))
	return res
}

func assertCode(t *testing.T, want *errors.Error, res abci.ResponseDeliverTx) {
	t.Helper()
	code, _ := errors.ABCIInfo(want, false)
	assert.Equal(t, code, res.Code, res.Log)
	// clients map the response back to the registered error
	assert.True(t, want.Is(errors.ABCIError(res.Code, res.Log)), res.Log)
}

func TestEscrowLifecycle(t *testing.T) {
	employer, beneficiary, stranger := newAccount(), newAccount(), newAccount()
	custody := escrow.DefaultConfiguration().Custody
	myApp := newTestApp(t,
		cash.GenesisAccount{Address: employer.id(), Asset: "KES", Amount: "1000"},
		cash.GenesisAccount{Address: stranger.id(), Asset: "KES", Amount: "1000"},
	)
	assert.Equal(t, chainID, myApp.base.GetChainID())

	// unknown job
	assert.Empty(t, myApp.query("/escrows", []byte("J1")))
	assert.Equal(t, "0", myApp.balance("J1"))

	create := employer.signedTx(t, &escrow.CreateMsg{JobID: "J1", Employer: employer.id(), Asset: "KES"})
	res := myApp.block(create)
	require.EqualValues(t, 0, res[0].Code, res[0].Log)
	assert.Equal(t, "J1", string(res[0].Data))
	assert.Contains(t, res[0].Tags, tagPair(utils.ActionKey, "escrow/create"))
	assert.Contains(t, res[0].Tags, tagPair(escrow.JobKey, "J1"))
	assert.Equal(t, "0", myApp.balance("J1"))

	deposit := employer.signedTx(t, &escrow.DepositMsg{JobID: "J1", From: employer.id(), Amount: "100"})
	res = myApp.block(deposit)
	require.EqualValues(t, 0, res[0].Code, res[0].Log)
	assert.Equal(t, "100", myApp.balance("J1"))
	assert.Equal(t, map[string]string{"KES": "900"}, myApp.wallet(employer.id()))
	assert.Equal(t, map[string]string{"KES": "100"}, myApp.wallet(custody))

	// somebody else cannot fund the job, even with their own signature
	foreign := stranger.signedTx(t, &escrow.DepositMsg{JobID: "J1", From: stranger.id(), Amount: "50"})
	res = myApp.block(foreign)
	assertCode(t, errors.ErrUnauthorized, res[0])
	assert.Equal(t, "100", myApp.balance("J1"))
	assert.Equal(t, map[string]string{"KES": "1000"}, myApp.wallet(stranger.id()))

	// a stranger cannot name the beneficiary either
	hijack := stranger.signedTx(t, &escrow.SetBeneficiaryMsg{JobID: "J1", Beneficiary: stranger.id()})
	res = myApp.block(hijack)
	assertCode(t, errors.ErrUnauthorized, res[0])

	early := employer.signedTx(t, &escrow.ReleaseMsg{JobID: "J1"})
	res = myApp.block(early)
	assertCode(t, escrow.ErrBeneficiaryUnset, res[0])

	name := employer.signedTx(t, &escrow.SetBeneficiaryMsg{JobID: "J1", Beneficiary: beneficiary.id()})
	res = myApp.block(name)
	require.EqualValues(t, 0, res[0].Code, res[0].Log)

	found := myApp.query("/escrows", []byte("J1"))
	require.Len(t, found, 1)
	var rec escrow.Escrow
	require.NoError(t, json.Unmarshal(found[0].Value, &rec))
	assert.Equal(t, employer.id(), rec.Employer)
	assert.Equal(t, beneficiary.id(), rec.Beneficiary)
	assert.Equal(t, ledger.Asset("KES"), rec.Asset)

	// two releases in the same block, the second one finds nothing
	first := employer.signedTx(t, &escrow.ReleaseMsg{JobID: "J1"})
	second := employer.signedTx(t, &escrow.ReleaseMsg{JobID: "J1"})
	res = myApp.block(first, second)
	require.EqualValues(t, 0, res[0].Code, res[0].Log)
	assert.Equal(t, "100", string(res[0].Data))
	assertCode(t, escrow.ErrNothingToRelease, res[1])

	assert.Equal(t, "0", myApp.balance("J1"))
	assert.Equal(t, map[string]string{"KES": "100"}, myApp.wallet(beneficiary.id()))
	assert.Empty(t, myApp.wallet(custody))

	// replaying a signed transaction is rejected
	res = myApp.block(first)
	assertCode(t, sigs.ErrInvalidSequence, res[0])

	retention := myApp.query("/escrows/retention", []byte("J1"))
	require.Len(t, retention, 1)
	assert.Equal(t, fmt.Sprint(1+escrow.DefaultRetentionExtendTo), string(retention[0].Value))
}

func TestCheckTx(t *testing.T) {
	employer := newAccount()
	myApp := newTestApp(t, cash.GenesisAccount{Address: employer.id(), Asset: "KES", Amount: "10"})
	// genesis state is only visible to checks once committed
	myApp.block()

	res := myApp.base.CheckTx(employer.signedTx(t, &escrow.CreateMsg{JobID: "J1", Employer: employer.id(), Asset: "KES"}))
	require.EqualValues(t, 0, res.Code, res.Log)
	assert.True(t, res.GasWanted > 0)

	// garbage never reaches the handlers
	res = myApp.base.CheckTx([]byte("not a transaction"))
	code, _ := errors.ABCIInfo(errors.ErrInvalidInput, false)
	assert.Equal(t, code, res.Code)

	res = myApp.base.CheckTx(nil)
	code, _ = errors.ABCIInfo(errors.ErrEmpty, false)
	assert.Equal(t, code, res.Code)

	// unsigned transactions are refused
	bz, err := app.EncodeTx(&app.Tx{Msg: &escrow.ReleaseMsg{JobID: "J1"}})
	require.NoError(t, err)
	res = myApp.base.CheckTx(bz)
	code, _ = errors.ABCIInfo(errors.ErrUnauthorized, false)
	assert.Equal(t, code, res.Code)
}

func TestSendThroughStack(t *testing.T) {
	alice, bob := newAccount(), newAccount()
	myApp := newTestApp(t, cash.GenesisAccount{Address: alice.id(), Asset: "XLM", Amount: "500"})

	send := alice.signedTx(t, &cash.SendMsg{Src: alice.id(), Dest: bob.id(), Asset: "XLM", Amount: "200", Memo: "rent"})
	res := myApp.block(send)
	require.EqualValues(t, 0, res[0].Code, res[0].Log)
	assert.Equal(t, map[string]string{"XLM": "300"}, myApp.wallet(alice.id()))
	assert.Equal(t, map[string]string{"XLM": "200"}, myApp.wallet(bob.id()))

	// the sequence of alice moved, bob never signed anything
	seq := myApp.query("/auth", []byte(alice.id()))
	require.Len(t, seq, 1)
	assert.Equal(t, "1", string(seq[0].Value))
	seq = myApp.query("/auth", []byte(bob.id()))
	assert.Equal(t, "0", string(seq[0].Value))
}

func TestGenInitOptions(t *testing.T) {
	id := ledgertest.NewIdentity()
	raw, err := GenInitOptions([]string{"XLM", string(id)})
	require.NoError(t, err)

	var opts ledger.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	var accts []cash.GenesisAccount
	require.NoError(t, opts.ReadOptions("cash", &accts))
	require.Len(t, accts, 1)
	assert.Equal(t, id, accts[0].Address)
	assert.Equal(t, ledger.Asset("XLM"), accts[0].Asset)

	// the generated state can start a chain
	base, err := Application("kazi", Stack(), app.TxDecoder, "", false)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: raw})

	_, err = GenInitOptions([]string{"x"})
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = GenInitOptions([]string{"XLM", "GBAD"})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func tagPair(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
