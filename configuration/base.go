package configuration

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/hjson/hjson-go/v4"
	"github.com/lumepay/lumepay/common"
	lumepay_configuration "github.com/lumepay/lumepay/configuration/v"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/lumepay/lumepay/state"
	"github.com/samber/lo"
	"github.com/stellar/go/network"
)

func resolveNetwork(configuration lumepay_configuration.NetworkConfigurationV0) RuntimeNetworkConfiguration {
	result := RuntimeNetworkConfiguration{
		Name:       configuration.Name,
		HorizonUrl: configuration.HorizonUrl,
		Explorer:   configuration.Explorer,
		Passphrase: configuration.Passphrase,
	}
	var horizonUrl, explorer, passphrase string
	switch configuration.Name {
	case enums.NETWORK_MAINNET:
		horizonUrl, explorer, passphrase = constants.MAINNET_HORIZON_URL, constants.MAINNET_EXPLORER_URL, network.PublicNetworkPassphrase
	case enums.NETWORK_TESTNET:
		horizonUrl, explorer, passphrase = constants.TESTNET_HORIZON_URL, constants.TESTNET_EXPLORER_URL, network.TestNetworkPassphrase
	}
	if result.HorizonUrl == "" {
		result.HorizonUrl = horizonUrl
	}
	if result.Explorer == "" {
		result.Explorer = explorer
	}
	if result.Passphrase == "" {
		result.Passphrase = passphrase
	}
	return result
}

func readTypedEntry(item map[string]interface{}) (string, json.RawMessage, bool) {
	entryType, isValid := item["type"].(string)
	if !isValid {
		slog.Warn("invalid configuration entry type", "type", item["type"])
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return entryType, nil, false
	}
	return entryType, raw, isValid
}

func ConfigurationToRuntimeConfiguration(configuration *LatestConfigurationType) (*RuntimeConfiguration, error) {
	defaults := GetDefaultRuntimeConfiguration()
	payouts := defaults.PayoutConfiguration
	if configuration.PayoutConfiguration.MaxOperationsPerTx != 0 {
		payouts.MaxOperationsPerTx = configuration.PayoutConfiguration.MaxOperationsPerTx
	}
	if configuration.PayoutConfiguration.BaseFee != nil {
		payouts.BaseFee = *configuration.PayoutConfiguration.BaseFee
	}
	if configuration.PayoutConfiguration.TxTimeout != nil {
		payouts.TxTimeout = *configuration.PayoutConfiguration.TxTimeout
	}
	if configuration.PayoutConfiguration.MemoTemplate != "" {
		payouts.MemoTemplate = configuration.PayoutConfiguration.MemoTemplate
	}
	payouts.CheckDestinations = configuration.PayoutConfiguration.CheckDestinations

	signer := RuntimeSignerConfiguration{
		Mode:         configuration.Signer.Mode,
		KeyFile:      configuration.Signer.KeyFile,
		RemoteUrl:    configuration.Signer.RemoteUrl,
		RemoteToken:  configuration.Signer.RemoteToken,
		BridgeListen: configuration.Signer.BridgeListen,

		KmsKey:          configuration.Signer.KmsKey,
		CredentialsFile: configuration.Signer.CredentialsFile,
	}
	if signer.Mode == "" {
		signer.Mode = defaults.Signer.Mode
	}
	if signer.BridgeListen == "" {
		signer.BridgeListen = defaults.Signer.BridgeListen
	}

	networkConfiguration := configuration.Network
	if networkConfiguration.Name == "" && networkConfiguration.Passphrase == "" {
		networkConfiguration.Name = enums.NETWORK_MAINNET
	}

	return &RuntimeConfiguration{
		SourceAccount:       configuration.SourceAccount,
		Network:             resolveNetwork(networkConfiguration),
		PayoutConfiguration: payouts,
		Signer:              signer,
		Assets:              common.NewAssetRegistry(configuration.Assets),
		Reporters: lo.Map(configuration.Reporters, func(item map[string]interface{}, _ int) RuntimeReporterConfiguration {
			reporterType, raw, isValid := readTypedEntry(item)
			return RuntimeReporterConfiguration{
				Type:          enums.EReporterKind(reporterType),
				Configuration: raw,
				IsValid:       isValid,
			}
		}),
		NotificationConfigurations: lo.Map(configuration.NotificationConfigurations, func(item map[string]interface{}, _ int) RuntimeNotificatorConfiguration {
			notificatorType, raw, isValid := readTypedEntry(item)
			isAdmin := false
			if admin, ok := item["admin"].(bool); ok {
				isAdmin = admin
			}
			return RuntimeNotificatorConfiguration{
				Type:          enums.ENotificatorKind(notificatorType),
				Configuration: raw,
				IsValid:       isValid,
				IsAdmin:       isAdmin,
			}
		}),
		Metrics: RuntimeMetricsConfiguration{
			Listen: configuration.Metrics.Listen,
		},
		SourceBytes: configuration.SourceBytes,
	}, nil
}

func LoadFromBytes(configurationBytes []byte) (*RuntimeConfiguration, error) {
	slog.Debug("loading version info")
	versionInfo := common.ConfigurationVersionInfo{}
	if err := hjson.Unmarshal(configurationBytes, &versionInfo); err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}

	configuration, err := Migrate(configurationBytes, &versionInfo)
	if err != nil {
		return nil, err
	}
	runtime, err := ConfigurationToRuntimeConfiguration(configuration)
	if err != nil {
		return nil, err
	}
	err = runtime.Validate()
	return runtime, err
}

func Load() (*RuntimeConfiguration, error) {
	hasInjectedConfiguration, configurationBytes := state.Global.GetInjectedConfiguration()
	if !hasInjectedConfiguration {
		slog.Debug("loading configuration", "path", state.Global.GetConfigurationFilePath())
		var err error
		configurationBytes, err = os.ReadFile(state.Global.GetConfigurationFilePath())
		if err != nil {
			return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
		}
	} else {
		slog.Debug("using injected configuration")
	}
	return LoadFromBytes(configurationBytes)
}
