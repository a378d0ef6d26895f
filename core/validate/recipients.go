package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/strkey"
)

// at most 7 decimal places, no sign, no exponent
var amountRegex = regexp.MustCompile(`^\d+(\.\d{1,7})?$`)

func validateAddress(address string) error {
	if _, err := strkey.Decode(strkey.VersionByteAccountID, strings.TrimSpace(address)); err != nil {
		return constants.ErrInvalidAddress
	}
	return nil
}

func validateAmount(recipient *common.PaymentRecipient) error {
	value := strings.TrimSpace(recipient.Amount)
	if !amountRegex.MatchString(value) {
		return constants.ErrInvalidAmount
	}
	stroops, err := recipient.GetAmountStroops()
	if err != nil || stroops <= 0 {
		return constants.ErrInvalidAmount
	}
	return nil
}

func validateAsset(recipient *common.PaymentRecipient, assets common.AssetRegistry) error {
	_, err := assets.Resolve(recipient.AssetCode)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, constants.ErrMissingAsset):
		return constants.ErrMissingAsset
	default:
		return fmt.Errorf("%w '%s'", constants.ErrUnknownAsset, strings.TrimSpace(recipient.AssetCode))
	}
}

// ValidateRecipients checks the whole list and reports every violation.
// It never touches the network.
func ValidateRecipients(recipients []common.PaymentRecipient, assets common.AssetRegistry) *common.ValidationResult {
	if assets == nil {
		assets = common.NewAssetRegistry(nil)
	}
	errs := make([]string, 0)
	if len(recipients) == 0 {
		return &common.ValidationResult{
			Valid:  false,
			Errors: append(errs, constants.ErrNoRecipients.Error()),
		}
	}
	if len(recipients) > constants.MAX_RECIPIENTS_PER_BULK {
		errs = append(errs, constants.ErrTooManyRecipients.Error())
	}

	for i := range recipients {
		recipient := &recipients[i]
		for _, err := range []error{
			validateAddress(recipient.Address),
			validateAmount(recipient),
			validateAsset(recipient, assets),
		} {
			if err == nil {
				continue
			}
			errs = append(errs, fmt.Sprintf("Recipient %d (%s): %s", i+1, recipient.GetDisplayName(), err.Error()))
		}
	}

	return &common.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
