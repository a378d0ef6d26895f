package enums

type ENetwork string

const (
	NETWORK_MAINNET ENetwork = "mainnet"
	NETWORK_TESTNET ENetwork = "testnet"
)

var (
	SUPPORTED_NETWORKS = []ENetwork{
		NETWORK_MAINNET,
		NETWORK_TESTNET,
	}
)
