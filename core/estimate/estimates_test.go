package estimate

import (
	"testing"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/test/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBulkPaymentCost(t *testing.T) {
	assert := assert.New(t)
	recipients := mock.GenerateRecipients(250, "XLM")
	for i := range recipients {
		if i%2 == 0 {
			recipients[i].AssetCode = "USDC"
		}
		recipients[i].Amount = "1.0000001"
	}

	estimate, err := CalculateBulkPaymentCost(recipients, &common.EstimateCostOptions{MaxOperationsPerTx: 100})
	require.NoError(t, err)

	assert.Equal(3, estimate.NumberOfTransactions)
	assert.Equal(int64(300), estimate.EstimatedFeesStroops)
	assert.Equal("0.0000300", estimate.EstimatedFees)
	assert.Equal(int64(25_000), estimate.MaxNetworkFeeStroops)
	assert.Equal(map[string]string{
		"XLM": "125.0000125",
		"USDC:" + constants.DEFAULT_ASSET_ISSUERS["USDC"]: "125.0000125",
	}, estimate.TotalAmount)
}

func TestCalculateBulkPaymentCostCustomFee(t *testing.T) {
	recipients := mock.GenerateRecipients(3, "XLM")
	estimate, err := CalculateBulkPaymentCost(recipients, &common.EstimateCostOptions{MaxOperationsPerTx: 1, BaseFeeStroops: 1000})
	require.NoError(t, err)

	assert.Equal(t, 3, estimate.NumberOfTransactions)
	assert.Equal(t, "0.0003000", estimate.EstimatedFees)
	// 1.25 + 2.25 + 3.25
	assert.Equal(t, "6.7500000", estimate.TotalAmount["XLM"])
}

func TestCalculateBulkPaymentCostEmpty(t *testing.T) {
	estimate, err := CalculateBulkPaymentCost(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, estimate.NumberOfTransactions)
	assert.Equal(t, "0.0000000", estimate.EstimatedFees)
	assert.Empty(t, estimate.TotalAmount)
}

func TestCalculateBulkPaymentCostRejectsBadInput(t *testing.T) {
	recipients := mock.GenerateRecipients(2, "XLM")
	recipients[1].Amount = "many"
	_, err := CalculateBulkPaymentCost(recipients, nil)
	assert.ErrorIs(t, err, constants.ErrInvalidAmount)

	recipients = mock.GenerateRecipients(2, "DOGE")
	_, err = CalculateBulkPaymentCost(recipients, nil)
	assert.ErrorIs(t, err, constants.ErrUnknownAsset)
}
