package configuration

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/lumepay/lumepay/notifications"
	"github.com/samber/lo"
	"github.com/stellar/go/strkey"
)

func _assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

func (configuration *RuntimeConfiguration) Validate() (err error) {
	defer func() {
		msg, _ := recover().(string)
		if msg != "" {
			err = errors.Join(constants.ErrConfigurationValidationFailed, errors.New(msg))
		}
	}()

	_assert(configuration != nil, "configuration is nil")
	_assert(configuration.SourceAccount == "" || strkey.IsValidEd25519PublicKey(configuration.SourceAccount),
		fmt.Sprintf("configuration.source_account - '%s' is not a valid Stellar account", configuration.SourceAccount))

	_assert(configuration.Network.Passphrase != "",
		fmt.Sprintf("configuration.network.passphrase - required for network '%s'", configuration.Network.Name))
	_, urlErr := url.ParseRequestURI(configuration.Network.HorizonUrl)
	_assert(urlErr == nil, fmt.Sprintf("configuration.network.horizon_url - '%s' is not a valid url", configuration.Network.HorizonUrl))

	payouts := configuration.PayoutConfiguration
	_assert(payouts.MaxOperationsPerTx > 0 && payouts.MaxOperationsPerTx <= constants.MAX_OPERATIONS_PER_TX,
		fmt.Sprintf("configuration.payouts.max_operations_per_tx must be between 1 and %d", constants.MAX_OPERATIONS_PER_TX))
	_assert(payouts.BaseFee >= constants.DEFAULT_BASE_FEE_STROOPS,
		fmt.Sprintf("configuration.payouts.base_fee must be at least %d stroops", constants.DEFAULT_BASE_FEE_STROOPS))
	_assert(payouts.TxTimeout > 0, "configuration.payouts.tx_timeout must be positive")

	_assert(lo.Contains(enums.SUPPORTED_SIGNER_MODES, configuration.Signer.Mode),
		fmt.Sprintf("configuration.signer.mode - '%s' not supported", configuration.Signer.Mode))
	if configuration.Signer.Mode == enums.SIGNER_MODE_REMOTE {
		_, urlErr := url.ParseRequestURI(configuration.Signer.RemoteUrl)
		_assert(urlErr == nil, fmt.Sprintf("configuration.signer.remote_url - '%s' is not a valid url", configuration.Signer.RemoteUrl))
	}

	if configuration.Signer.Mode == enums.SIGNER_MODE_GCP_KMS {
		_assert(configuration.Signer.KmsKey != "", "configuration.signer.kms_key - required for gcp-kms signer")
	}

	for code, issuer := range configuration.Assets {
		_assert(strkey.IsValidEd25519PublicKey(issuer),
			fmt.Sprintf("configuration.assets.%s - '%s' is not a valid issuer", code, issuer))
	}

	for i, v := range configuration.Reporters {
		_assert(v.IsValid, fmt.Sprintf("configuration.reporters[%d] - missing type", i))
		_assert(lo.Contains(enums.SUPPORTED_REPORTER_KINDS, v.Type),
			fmt.Sprintf("configuration.reporters[%d] - '%s' not supported", i, v.Type))
	}

	for _, v := range configuration.NotificationConfigurations {
		if !v.IsValid {
			continue
		}
		err := notifications.ValidateNotificatorConfiguration(v.Type, v.Configuration)
		_assert(err == nil, fmt.Sprintf("configuration.notifications.%s has invalid configuration - %v", v.Type, err))
	}

	return
}
