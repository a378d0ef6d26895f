package preflight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

type AccountLoader interface {
	LoadAccount(ctx context.Context, address string) (*common.AccountState, error)
}

// DestinationIssue is advisory, the run is not blocked by it
type DestinationIssue struct {
	Index     int                     `json:"index"`
	Recipient common.PaymentRecipient `json:"recipient"`
	Err       error                   `json:"-"`
	Message   string                  `json:"message"`
}

func newDestinationIssue(index int, recipient common.PaymentRecipient, err error) DestinationIssue {
	return DestinationIssue{
		Index:     index,
		Recipient: recipient,
		Err:       err,
		Message:   fmt.Sprintf("Recipient %d (%s): %s", index+1, recipient.GetDisplayName(), common.DescribeError(err)),
	}
}

// CheckDestinations verifies every destination exists and can hold the asset
// it is paid in. Each account is loaded once.
func CheckDestinations(ctx context.Context, loader AccountLoader, recipients []common.PaymentRecipient, assets common.AssetRegistry) []DestinationIssue {
	if assets == nil {
		assets = common.NewAssetRegistry(nil)
	}
	logger := slog.Default().With("phase", "check_destinations")
	accounts := make(map[string]*common.AccountState)
	loadErrors := make(map[string]error)
	issues := make([]DestinationIssue, 0)

	for i, recipient := range recipients {
		asset, err := assets.Resolve(recipient.AssetCode)
		if err != nil {
			issues = append(issues, newDestinationIssue(i, recipient, err))
			continue
		}

		account, loaded := accounts[recipient.Address]
		err, failed := loadErrors[recipient.Address]
		if !loaded && !failed {
			logger.Debug("loading destination account", "address", recipient.Address)
			account, err = loader.LoadAccount(ctx, recipient.Address)
			if err != nil {
				loadErrors[recipient.Address] = err
			} else {
				accounts[recipient.Address] = account
			}
		}

		switch {
		case err != nil && errors.Is(err, constants.ErrAccountNotFound):
			issues = append(issues, newDestinationIssue(i, recipient, constants.ErrDestinationNotFound))
		case err != nil:
			issues = append(issues, newDestinationIssue(i, recipient, errors.Join(constants.ErrDestinationCheckFailed, err)))
		case !account.HasTrustline(asset):
			issues = append(issues, newDestinationIssue(i, recipient, fmt.Errorf("%w %s", constants.ErrDestinationNoTrustline, asset.Code)))
		}
	}
	logger.Info("destinations checked", "recipients", len(recipients), "issues", len(issues))
	return issues
}
