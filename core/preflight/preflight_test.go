package preflight

import (
	"context"
	"testing"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/test/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDestinations(t *testing.T) {
	assert := assert.New(t)
	assets := common.NewAssetRegistry(nil)
	usdc, err := assets.Resolve("USDC")
	require.NoError(t, err)

	recipients := mock.GenerateRecipients(5, "XLM")
	recipients[1].AssetCode = "USDC"
	recipients[2].AssetCode = "USDC"
	recipients[4].AssetCode = "DOGE"

	ledger := mock.NewLedgerTransactor(recipients[0].Address, recipients[2].Address)
	ledger.AddAccount(recipients[1].Address, common.NativeAsset(), usdc)

	issues := CheckDestinations(context.Background(), ledger, recipients, assets)
	require.Len(t, issues, 3)

	assert.Equal(2, issues[0].Index)
	assert.ErrorIs(issues[0].Err, constants.ErrDestinationNoTrustline)
	assert.Equal("Recipient 3 (employee 3): destination account has no trustline for asset USDC", issues[0].Message)

	assert.Equal(3, issues[1].Index)
	assert.ErrorIs(issues[1].Err, constants.ErrDestinationNotFound)

	assert.Equal(4, issues[2].Index)
	assert.ErrorIs(issues[2].Err, constants.ErrUnknownAsset)
}

func TestCheckDestinationsLoadsEachAccountOnce(t *testing.T) {
	recipients := mock.GenerateRecipients(3, "XLM")
	recipients[1].Address = recipients[0].Address
	recipients[2].Address = recipients[0].Address
	loader := &countingLoader{inner: mock.NewLedgerTransactor()}

	issues := CheckDestinations(context.Background(), loader, recipients, nil)
	assert.Len(t, issues, 3)
	assert.Equal(t, 1, loader.calls)
}

type countingLoader struct {
	inner AccountLoader
	calls int
}

func (l *countingLoader) LoadAccount(ctx context.Context, address string) (*common.AccountState, error) {
	l.calls++
	return l.inner.LoadAccount(ctx, address)
}

func TestCheckSufficientBalance(t *testing.T) {
	assert := assert.New(t)
	source := mock.GetRandomAddress()
	ledger := mock.NewLedgerTransactor(source)

	// 1000 XLM available
	shortfalls, err := CheckSufficientBalance(context.Background(), ledger, source, &common.CostEstimate{
		TotalAmount:          map[string]string{"XLM": "998.0000000"},
		MaxNetworkFeeStroops: 200,
	}, nil)
	require.NoError(t, err)
	assert.Empty(shortfalls)

	shortfalls, err = CheckSufficientBalance(context.Background(), ledger, source, &common.CostEstimate{
		TotalAmount: map[string]string{
			"XLM": "999.5000000",
			"USDC:" + constants.DEFAULT_ASSET_ISSUERS["USDC"]: "10.0000000",
		},
	}, nil)
	require.NoError(t, err)
	assert.ElementsMatch([]BalanceShortfall{
		{Asset: "XLM", Required: "1000.5000000", Available: "1000.0000000"},
		{Asset: "USDC:" + constants.DEFAULT_ASSET_ISSUERS["USDC"], Required: "10.0000000", Available: "0.0000000"},
	}, shortfalls)

	_, err = CheckSufficientBalance(context.Background(), ledger, mock.GetRandomAddress(), &common.CostEstimate{}, nil)
	assert.ErrorIs(err, constants.ErrAccountLoadFailed)
	assert.ErrorIs(err, constants.ErrAccountNotFound)
}
