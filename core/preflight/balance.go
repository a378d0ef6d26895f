package preflight

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/amount"
)

// minimum native balance every account keeps, 1 XLM base reserve
const NATIVE_RESERVE_BUFFER_STROOPS = int64(constants.STROOPS_FACTOR)

type BalanceShortfall struct {
	Asset     string `json:"asset"`
	Required  string `json:"required"`
	Available string `json:"available"`
}

func (s BalanceShortfall) String() string {
	return fmt.Sprintf("%s required: %s, available: %s", s.Asset, s.Required, s.Available)
}

func availableBalance(account *common.AccountState, asset common.Asset) int64 {
	for _, balance := range account.Balances {
		if balance.Asset.Code != asset.Code || balance.Asset.Issuer != asset.Issuer {
			continue
		}
		value, err := amount.ParseInt64(balance.Balance)
		if err != nil {
			return 0
		}
		return value
	}
	return 0
}

// CheckSufficientBalance compares the estimated totals (and fees for XLM)
// against what the source account holds. It is an estimate, reserves and
// concurrent spending are not accounted for beyond a one XLM buffer.
func CheckSufficientBalance(ctx context.Context, loader AccountLoader, source string, estimate *common.CostEstimate, assets common.AssetRegistry) ([]BalanceShortfall, error) {
	if assets == nil {
		assets = common.NewAssetRegistry(nil)
	}
	account, err := loader.LoadAccount(ctx, source)
	if err != nil {
		return nil, errors.Join(constants.ErrAccountLoadFailed, err)
	}

	required := map[string]int64{
		common.NativeAsset().String(): estimate.MaxNetworkFeeStroops + NATIVE_RESERVE_BUFFER_STROOPS,
	}
	for assetId, total := range estimate.TotalAmount {
		value, err := amount.ParseInt64(total)
		if err != nil {
			return nil, err
		}
		required[assetId] += value
	}

	shortfalls := make([]BalanceShortfall, 0)
	for assetId, value := range required {
		asset, err := assets.Resolve(assetId)
		if err != nil {
			return nil, err
		}
		available := availableBalance(account, asset)
		if available < value {
			shortfalls = append(shortfalls, BalanceShortfall{
				Asset:     asset.String(),
				Required:  amount.StringFromInt64(value),
				Available: amount.StringFromInt64(available),
			})
		}
	}
	return shortfalls, nil
}
