package transactor_engines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/support/render/problem"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func horizonAccount(t *testing.T, address string, sequence int64, balances string) hProtocol.Account {
	var account hProtocol.Account
	raw := fmt.Sprintf(`{"id":"%[1]s","account_id":"%[1]s","sequence":"%[2]d","balances":%[3]s}`, address, sequence, balances)
	require.NoError(t, json.Unmarshal([]byte(raw), &account))
	return account
}

func recipients(n int) common.RecipientBatch {
	batch := make(common.RecipientBatch, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, common.PaymentRecipient{
			Address:   keypair.MustRandom().Address(),
			Amount:    fmt.Sprintf("%d.5", i+1),
			AssetCode: "XLM",
		})
	}
	return batch
}

func TestBuildPaymentTransaction(t *testing.T) {
	client := &horizonclient.MockClient{}
	source := keypair.MustRandom()
	client.On("AccountDetail", horizonclient.AccountRequest{AccountID: source.Address()}).
		Return(horizonAccount(t, source.Address(), 100, `[]`), nil)

	transactor := NewHorizonTransactor(client, network.TestNetworkPassphrase, nil, PaymentTransactionParams{})
	batch := recipients(3)
	batch[1].AssetCode = "USDC"

	unsigned, err := transactor.BuildPaymentTransaction(context.Background(), source.Address(), batch)
	require.NoError(t, err)
	assert.Equal(t, int64(101), unsigned.Sequence)
	assert.Equal(t, 3, unsigned.Operations)
	assert.Equal(t, "Batch payment: 3 recipients", unsigned.Memo)
	assert.Equal(t, network.TestNetworkPassphrase, unsigned.NetworkPassphrase)

	gtx, err := txnbuild.TransactionFromXDR(unsigned.Xdr)
	require.NoError(t, err)
	tx, ok := gtx.Transaction()
	require.True(t, ok)
	assert.Equal(t, int64(txnbuild.MinBaseFee), tx.BaseFee())
	assert.NotZero(t, tx.Timebounds().MaxTime)

	for i, op := range tx.Operations() {
		payment, ok := op.(*txnbuild.Payment)
		require.True(t, ok)
		assert.Equal(t, batch[i].Address, payment.Destination)
		assert.Equal(t, batch[i].Amount, strings.TrimRight(strings.TrimRight(payment.Amount, "0"), "."))
	}
	credit, ok := tx.Operations()[1].(*txnbuild.Payment).Asset.(txnbuild.CreditAsset)
	require.True(t, ok)
	assert.Equal(t, constants.DEFAULT_ASSET_ISSUERS["USDC"], credit.Issuer)

	hash, err := tx.HashHex(network.TestNetworkPassphrase)
	require.NoError(t, err)
	assert.Equal(t, hash, unsigned.Hash)
	client.AssertExpectations(t)
}

func TestBuildPaymentTransactionFailsOnMissingAccount(t *testing.T) {
	client := &horizonclient.MockClient{}
	source := keypair.MustRandom()
	client.On("AccountDetail", horizonclient.AccountRequest{AccountID: source.Address()}).
		Return(hProtocol.Account{}, &horizonclient.Error{
			Response: &http.Response{StatusCode: http.StatusNotFound},
			Problem:  problem.P{Type: "https://stellar.org/horizon-errors/not_found", Status: http.StatusNotFound, Title: "Resource Missing"},
		})

	transactor := NewHorizonTransactor(client, network.TestNetworkPassphrase, nil, PaymentTransactionParams{})
	_, err := transactor.BuildPaymentTransaction(context.Background(), source.Address(), recipients(1))
	assert.ErrorIs(t, err, constants.ErrAccountLoadFailed)
	assert.ErrorIs(t, err, constants.ErrAccountNotFound)
}

func TestMemoClipping(t *testing.T) {
	assert.Equal(t, "Batch payment: 100 recipient", GetBatchMemo(constants.DEFAULT_BATCH_MEMO_TEMPLATE, recipients(100)))
	assert.LessOrEqual(t, len(GetBatchMemo("Výplata zaměstnanců za měsíc <Count>", recipients(5))), constants.MAX_MEMO_TEXT_LENGTH)
	assert.Equal(t, "payroll", GetBatchMemo("payroll", recipients(4)))
	assert.Equal(t, "100% paid: 4 (%s %d)", GetBatchMemo("100% paid: <Count> (%s %d)", recipients(4)))
}

func TestBulkBatchesAlwaysUseTemplateMemo(t *testing.T) {
	account := &txnbuild.SimpleAccount{AccountID: keypair.MustRandom().Address(), Sequence: 1}
	single := recipients(1)
	single[0].Memo = "salary march"

	_, memo, err := NewPaymentTransaction(account, single, common.NewAssetRegistry(nil), PaymentTransactionParams{})
	require.NoError(t, err)
	assert.Equal(t, "Batch payment: 1 recipients", memo)

	_, memo, err = NewPaymentTransaction(account, single, common.NewAssetRegistry(nil), PaymentTransactionParams{RecipientMemo: true})
	require.NoError(t, err)
	assert.Equal(t, "salary march", memo)

	// only single payments take the recipient memo
	pair := recipients(2)
	pair[0].Memo = "salary march"
	_, memo, err = NewPaymentTransaction(account, pair, common.NewAssetRegistry(nil), PaymentTransactionParams{RecipientMemo: true})
	require.NoError(t, err)
	assert.Equal(t, "Batch payment: 2 recipients", memo)
}

func TestPaymentTransactionTimeBounds(t *testing.T) {
	account := &txnbuild.SimpleAccount{AccountID: keypair.MustRandom().Address(), Sequence: 1}
	before := time.Now().Unix()

	tx, _, err := NewPaymentTransaction(account, recipients(2), common.NewAssetRegistry(nil), PaymentTransactionParams{})
	require.NoError(t, err)
	maxTime := tx.Timebounds().MaxTime
	assert.Greater(t, maxTime, int64(0))
	assert.GreaterOrEqual(t, maxTime, before+constants.DEFAULT_TX_TIMEOUT_SECONDS)
	assert.LessOrEqual(t, maxTime, time.Now().Unix()+constants.DEFAULT_TX_TIMEOUT_SECONDS)

	tx, _, err = NewPaymentTransaction(account, recipients(2), common.NewAssetRegistry(nil), PaymentTransactionParams{TimeoutSeconds: 30})
	require.NoError(t, err)
	assert.LessOrEqual(t, tx.Timebounds().MaxTime, time.Now().Unix()+30)
}

func TestSubmitTranslatesResultCodes(t *testing.T) {
	client := &horizonclient.MockClient{}
	client.On("SubmitTransactionXDR", "failing").Return(hProtocol.Transaction{}, &horizonclient.Error{
		Response: &http.Response{StatusCode: http.StatusBadRequest},
		Problem: problem.P{
			Title:  "Transaction Failed",
			Status: http.StatusBadRequest,
			Extras: map[string]interface{}{
				"result_codes": map[string]interface{}{
					"transaction": "tx_failed",
					"operations":  []string{"op_success", "op_no_trust"},
				},
			},
		},
	})
	client.On("SubmitTransactionXDR", "transport").Return(hProtocol.Transaction{}, errors.New("connection refused"))
	client.On("SubmitTransactionXDR", "ok").Return(hProtocol.Transaction{Hash: "abcd"}, nil)

	transactor := NewHorizonTransactor(client, network.TestNetworkPassphrase, nil, PaymentTransactionParams{})

	_, err := transactor.Submit(context.Background(), "failing")
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrTransactionFailed)
	assert.Equal(t, "Transaction failed: tx_failed op_success, op_no_trust", err.Error())

	_, err = transactor.Submit(context.Background(), "transport")
	assert.ErrorIs(t, err, constants.ErrTransactionSubmitFailed)
	assert.Contains(t, err.Error(), "connection refused")

	hash, err := transactor.Submit(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, "abcd", hash)
}

func TestLoadAccountBalances(t *testing.T) {
	client := &horizonclient.MockClient{}
	address := keypair.MustRandom().Address()
	issuer := constants.DEFAULT_ASSET_ISSUERS["USDC"]
	client.On("AccountDetail", horizonclient.AccountRequest{AccountID: address}).
		Return(horizonAccount(t, address, 7, fmt.Sprintf(`[
			{"balance":"10.0000000","asset_type":"credit_alphanum4","asset_code":"USDC","asset_issuer":"%s"},
			{"balance":"5.0000000","asset_type":"native"}
		]`, issuer)), nil)

	transactor := NewHorizonTransactor(client, network.TestNetworkPassphrase, nil, PaymentTransactionParams{})
	state, err := transactor.LoadAccount(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, int64(7), state.Sequence)
	assert.True(t, state.HasTrustline(common.Asset{Code: "USDC", Issuer: issuer}))
	assert.True(t, state.HasTrustline(common.NativeAsset()))
	assert.False(t, state.HasTrustline(common.Asset{Code: "EURT", Issuer: constants.DEFAULT_ASSET_ISSUERS["EURT"]}))
}

func TestSubmitRespectsCanceledContext(t *testing.T) {
	client := &horizonclient.MockClient{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	transactor := NewHorizonTransactor(client, network.TestNetworkPassphrase, nil, PaymentTransactionParams{})
	_, err := transactor.Submit(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNotCalled(t, "SubmitTransactionXDR", mock.Anything)
}
