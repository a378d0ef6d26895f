package signer_engines

import (
	"errors"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
)

func parseTransaction(unsignedXdr string) (*txnbuild.Transaction, error) {
	gtx, err := txnbuild.TransactionFromXDR(unsignedXdr)
	if err != nil {
		return nil, err
	}
	tx, ok := gtx.Transaction()
	if !ok {
		return nil, errors.New("fee bump transactions are not supported")
	}
	return tx, nil
}

func signWithKeys(unsignedXdr string, networkPassphrase string, keys ...*keypair.Full) (string, error) {
	tx, err := parseTransaction(unsignedXdr)
	if err != nil {
		return "", err
	}
	tx, err = tx.Sign(networkPassphrase, keys...)
	if err != nil {
		return "", err
	}
	return tx.Base64()
}
