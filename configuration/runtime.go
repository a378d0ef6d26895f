package configuration

import (
	"encoding/json"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/stellar/go/network"
)

type RuntimeNetworkConfiguration struct {
	Name       enums.ENetwork `json:"name"`
	HorizonUrl string         `json:"horizon_url"`
	Explorer   string         `json:"explorer,omitempty"`
	Passphrase string         `json:"passphrase"`
}

type RuntimePayoutConfiguration struct {
	MaxOperationsPerTx int    `json:"max_operations_per_tx"`
	BaseFee            int64  `json:"base_fee"`
	TxTimeout          int64  `json:"tx_timeout"`
	MemoTemplate       string `json:"memo"`
	CheckDestinations  bool   `json:"check_destinations,omitempty"`
}

type RuntimeSignerConfiguration struct {
	Mode         enums.ESignerMode `json:"mode"`
	KeyFile      string            `json:"key_file,omitempty"`
	RemoteUrl    string            `json:"remote_url,omitempty"`
	RemoteToken  string            `json:"-"`
	BridgeListen string            `json:"bridge_listen,omitempty"`
	KmsKey       string            `json:"kms_key,omitempty"`

	// service account credentials, default application credentials are used when empty
	CredentialsFile string `json:"credentials_file,omitempty"`
}

type RuntimeReporterConfiguration struct {
	Type          enums.EReporterKind `json:"type,omitempty"`
	Configuration json.RawMessage     `json:"-"`
	IsValid       bool                `json:"-"`
}

type RuntimeNotificatorConfiguration struct {
	Type          enums.ENotificatorKind `json:"type,omitempty"`
	Configuration json.RawMessage        `json:"-"`
	IsValid       bool                   `json:"-"`
	IsAdmin       bool                   `json:"admin"`
}

type RuntimeMetricsConfiguration struct {
	Listen string `json:"listen,omitempty"`
}

type RuntimeConfiguration struct {
	SourceAccount              string
	Network                    RuntimeNetworkConfiguration
	PayoutConfiguration        RuntimePayoutConfiguration
	Signer                     RuntimeSignerConfiguration
	Assets                     common.AssetRegistry
	Reporters                  []RuntimeReporterConfiguration
	NotificationConfigurations []RuntimeNotificatorConfiguration
	Metrics                    RuntimeMetricsConfiguration
	SourceBytes                []byte `json:"-"`
}

func GetDefaultRuntimeConfiguration() RuntimeConfiguration {
	return RuntimeConfiguration{
		Network: RuntimeNetworkConfiguration{
			Name:       enums.NETWORK_MAINNET,
			HorizonUrl: constants.MAINNET_HORIZON_URL,
			Explorer:   constants.MAINNET_EXPLORER_URL,
			Passphrase: network.PublicNetworkPassphrase,
		},
		PayoutConfiguration: RuntimePayoutConfiguration{
			MaxOperationsPerTx: constants.MAX_OPERATIONS_PER_TX,
			BaseFee:            constants.DEFAULT_BASE_FEE_STROOPS,
			TxTimeout:          constants.DEFAULT_TX_TIMEOUT_SECONDS,
			MemoTemplate:       constants.DEFAULT_BATCH_MEMO_TEMPLATE,
		},
		Signer: RuntimeSignerConfiguration{
			Mode:         enums.SIGNER_MODE_WALLET_BRIDGE,
			KeyFile:      constants.DEFAULT_KEY_FILE_NAME,
			BridgeListen: constants.DEFAULT_SIGNER_BRIDGE_LISTEN,
		},
		Assets: common.NewAssetRegistry(nil),
		Reporters: []RuntimeReporterConfiguration{
			{Type: enums.REPORTER_KIND_FS, Configuration: json.RawMessage(`{"type":"fs"}`), IsValid: true},
		},
		NotificationConfigurations: make([]RuntimeNotificatorConfiguration, 0),
		SourceBytes:                []byte{},
	}
}

func (configuration *RuntimeConfiguration) GetNetworkName() string {
	if configuration.Network.Name != "" {
		return string(configuration.Network.Name)
	}
	return "custom"
}

func (configuration *RuntimeConfiguration) GetAdminNotificators() []RuntimeNotificatorConfiguration {
	result := make([]RuntimeNotificatorConfiguration, 0)
	for _, n := range configuration.NotificationConfigurations {
		if n.IsAdmin {
			result = append(result, n)
		}
	}
	return result
}
