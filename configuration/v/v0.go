package lumepay_configuration

import (
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
)

type NetworkConfigurationV0 struct {
	Name       enums.ENetwork `json:"name,omitempty"`
	HorizonUrl string         `json:"horizon_url,omitempty"`
	Explorer   string         `json:"explorer,omitempty"`
	// only needed for networks other than mainnet and testnet
	Passphrase string `json:"passphrase,omitempty"`
}

type PayoutConfigurationV0 struct {
	MaxOperationsPerTx int    `json:"max_operations_per_tx,omitempty"`
	BaseFee            *int64 `json:"base_fee,omitempty"`
	TxTimeout          *int64 `json:"tx_timeout,omitempty"`
	MemoTemplate       string `json:"memo,omitempty"`
	CheckDestinations  bool   `json:"check_destinations,omitempty"`
}

type SignerConfigurationV0 struct {
	Mode         enums.ESignerMode `json:"mode,omitempty"`
	KeyFile      string            `json:"key_file,omitempty"`
	RemoteUrl    string            `json:"remote_url,omitempty"`
	RemoteToken  string            `json:"remote_token,omitempty"`
	BridgeListen string            `json:"bridge_listen,omitempty"`

	// gcp-kms only
	KmsKey          string `json:"kms_key,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty"`
}

type MetricsConfigurationV0 struct {
	Listen string `json:"listen,omitempty"`
}

type ConfigurationV0 struct {
	Version                    uint                     `json:"lumepay_config_version"`
	SourceAccount              string                   `json:"source_account"`
	Network                    NetworkConfigurationV0   `json:"network,omitempty"`
	PayoutConfiguration        PayoutConfigurationV0    `json:"payouts,omitempty"`
	Signer                     SignerConfigurationV0    `json:"signer,omitempty"`
	Assets                     map[string]string        `json:"assets,omitempty"`
	Reporters                  []map[string]interface{} `json:"reporters,omitempty"`
	NotificationConfigurations []map[string]interface{} `json:"notifications,omitempty"`
	Metrics                    MetricsConfigurationV0   `json:"metrics,omitempty"`
	SourceBytes                []byte                   `json:"-"`
}

func GetDefaultV0() ConfigurationV0 {
	baseFee := constants.DEFAULT_BASE_FEE_STROOPS
	txTimeout := constants.DEFAULT_TX_TIMEOUT_SECONDS

	return ConfigurationV0{
		Version: 0,
		Network: NetworkConfigurationV0{
			Name: enums.NETWORK_MAINNET,
		},
		PayoutConfiguration: PayoutConfigurationV0{
			MaxOperationsPerTx: constants.MAX_OPERATIONS_PER_TX,
			BaseFee:            &baseFee,
			TxTimeout:          &txTimeout,
			MemoTemplate:       constants.DEFAULT_BATCH_MEMO_TEMPLATE,
		},
		Signer: SignerConfigurationV0{
			Mode:         enums.SIGNER_MODE_WALLET_BRIDGE,
			KeyFile:      constants.DEFAULT_KEY_FILE_NAME,
			BridgeListen: constants.DEFAULT_SIGNER_BRIDGE_LISTEN,
		},
		Assets: make(map[string]string),
		Reporters: []map[string]interface{}{
			{"type": string(enums.REPORTER_KIND_FS)},
		},
		NotificationConfigurations: make([]map[string]interface{}, 0),
		SourceBytes:                []byte{},
	}
}
