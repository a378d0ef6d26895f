package common

import (
	"encoding/hex"
	"errors"

	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
)

type UnsignedTransaction struct {
	Xdr               string `json:"xdr"`
	Hash              string `json:"hash"`
	NetworkPassphrase string `json:"network_passphrase"`
	SourceAccount     string `json:"source_account"`
	Sequence          int64  `json:"sequence"`
	Operations        int    `json:"operations"`
	Memo              string `json:"memo"`
}

// VerifySignedXdr checks that the signer returned the very transaction it was
// given (same hash under the same passphrase) and that it carries a signature.
func VerifySignedXdr(unsigned *UnsignedTransaction, signedXdr string) error {
	gtx, err := txnbuild.TransactionFromXDR(signedXdr)
	if err != nil {
		return errors.Join(constants.ErrSignedTxMismatch, err)
	}
	tx, ok := gtx.Transaction()
	if !ok {
		return errors.Join(constants.ErrSignedTxMismatch, errors.New("fee bump transactions are not accepted"))
	}
	hash, err := tx.Hash(unsigned.NetworkPassphrase)
	if err != nil {
		return errors.Join(constants.ErrSignedTxMismatch, err)
	}
	if hex.EncodeToString(hash[:]) != unsigned.Hash {
		return constants.ErrSignedTxMismatch
	}
	if len(tx.Signatures()) == 0 {
		return constants.ErrSignedTxUnsigned
	}
	// signatures of other signers (multisig) are left to the network
	source, err := keypair.ParseAddress(unsigned.SourceAccount)
	if err != nil {
		return nil
	}
	hint := source.Hint()
	for _, signature := range tx.Signatures() {
		if signature.Hint == hint && source.Verify(hash[:], signature.Signature) != nil {
			return errors.Join(constants.ErrSignedTxMismatch, errors.New("source account signature is not valid for this network"))
		}
	}
	return nil
}
