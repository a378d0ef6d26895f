package utils

import (
	"net/url"
)

// GetTxReference links the hash to the explorer when one is configured
func GetTxReference(txHash string, explorer string) string {
	if txHash == "" || explorer == "" {
		return txHash
	}
	reference, err := url.JoinPath(explorer, "tx", txHash)
	if err != nil {
		return txHash
	}
	return reference
}
