package estimate

import (
	"errors"
	"fmt"
	"math"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/samber/lo"
	"github.com/stellar/go/amount"
)

func batchCount(recipients int, capacity int) int {
	if capacity <= 0 || capacity > constants.MAX_OPERATIONS_PER_TX {
		capacity = constants.MAX_OPERATIONS_PER_TX
	}
	return (recipients + capacity - 1) / capacity
}

// sumByAsset groups by the resolved asset id so "USDC" and "USDC:<issuer>" add up together
func sumByAsset(recipients []common.PaymentRecipient, assets common.AssetRegistry) (map[string]string, error) {
	totals := make(map[string]int64)
	for i := range recipients {
		recipient := &recipients[i]
		asset, err := assets.Resolve(recipient.AssetCode)
		if err != nil {
			return nil, fmt.Errorf("recipient %d: %w", i+1, err)
		}
		stroops, err := recipient.GetAmountStroops()
		if err != nil {
			return nil, errors.Join(constants.ErrInvalidAmount, fmt.Errorf("recipient %d: %w", i+1, err))
		}
		total := totals[asset.String()]
		if stroops > 0 && total > math.MaxInt64-stroops {
			return nil, errors.Join(constants.ErrInvalidAmount, fmt.Errorf("total of %s overflows", asset.String()))
		}
		totals[asset.String()] = total + stroops
	}
	return lo.MapValues(totals, func(total int64, _ string) string {
		return amount.StringFromInt64(total)
	}), nil
}

// CalculateBulkPaymentCost is a pure pre-flight estimate. Actual fees are
// only known once the network accepts the transactions.
func CalculateBulkPaymentCost(recipients []common.PaymentRecipient, options *common.EstimateCostOptions) (*common.CostEstimate, error) {
	if options == nil {
		options = &common.EstimateCostOptions{}
	}
	assets := options.Assets
	if assets == nil {
		assets = common.NewAssetRegistry(nil)
	}
	baseFee := options.BaseFeeStroops
	if baseFee <= 0 {
		baseFee = constants.DEFAULT_BASE_FEE_STROOPS
	}

	totals, err := sumByAsset(recipients, assets)
	if err != nil {
		return nil, err
	}
	transactions := batchCount(len(recipients), options.MaxOperationsPerTx)
	fees := int64(transactions) * baseFee

	return &common.CostEstimate{
		TotalAmount:          totals,
		EstimatedFees:        amount.StringFromInt64(fees),
		EstimatedFeesStroops: fees,
		NumberOfTransactions: transactions,
		MaxNetworkFeeStroops: int64(len(recipients)) * baseFee,
	}, nil
}
