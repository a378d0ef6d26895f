package transactor_engines

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/txnbuild"
)

type PaymentTransactionParams struct {
	BaseFee        int64
	TimeoutSeconds int64
	MemoTemplate   string
	// a single payment carries the memo of its recipient, bulk batches never do
	RecipientMemo bool
}

func (p PaymentTransactionParams) withDefaults() PaymentTransactionParams {
	if p.BaseFee < txnbuild.MinBaseFee {
		p.BaseFee = txnbuild.MinBaseFee
	}
	if p.TimeoutSeconds <= 0 {
		p.TimeoutSeconds = constants.DEFAULT_TX_TIMEOUT_SECONDS
	}
	if p.MemoTemplate == "" {
		p.MemoTemplate = constants.DEFAULT_BATCH_MEMO_TEMPLATE
	}
	return p
}

// ClipMemo shortens the memo to the ledger limit without splitting a character
func ClipMemo(memo string) string {
	if len(memo) <= constants.MAX_MEMO_TEXT_LENGTH {
		return memo
	}
	clipped := memo[:constants.MAX_MEMO_TEXT_LENGTH]
	for !utf8.ValidString(clipped) {
		clipped = clipped[:len(clipped)-1]
	}
	return clipped
}

// GetBatchMemo fills the recipient count into the template
func GetBatchMemo(template string, batch common.RecipientBatch) string {
	return ClipMemo(strings.ReplaceAll(template, constants.BATCH_MEMO_COUNT_PLACEHOLDER, strconv.Itoa(len(batch))))
}

func getTransactionMemo(params PaymentTransactionParams, batch common.RecipientBatch) string {
	if params.RecipientMemo && len(batch) == 1 && batch[0].Memo != "" {
		return ClipMemo(batch[0].Memo)
	}
	return GetBatchMemo(params.MemoTemplate, batch)
}

// NewPaymentTransaction builds one payment operation per recipient of the batch.
// The account sequence is incremented.
func NewPaymentTransaction(account *txnbuild.SimpleAccount, batch common.RecipientBatch, assets common.AssetRegistry, params PaymentTransactionParams) (*txnbuild.Transaction, string, error) {
	if len(batch) == 0 {
		return nil, "", errors.Join(constants.ErrTransactionBuildFailed, errors.New("empty batch"))
	}
	if len(batch) > constants.MAX_OPERATIONS_PER_TX {
		return nil, "", errors.Join(constants.ErrTransactionBuildFailed, fmt.Errorf("batch exceeds %d operations", constants.MAX_OPERATIONS_PER_TX))
	}
	params = params.withDefaults()

	operations := make([]txnbuild.Operation, 0, len(batch))
	for _, recipient := range batch {
		asset, err := assets.Resolve(recipient.AssetCode)
		if err != nil {
			return nil, "", errors.Join(constants.ErrTransactionBuildFailed, err)
		}
		operations = append(operations, &txnbuild.Payment{
			Destination: strings.TrimSpace(recipient.Address),
			Amount:      strings.TrimSpace(recipient.Amount),
			Asset:       asset.ToTxnbuildAsset(),
		})
	}

	memo := getTransactionMemo(params, batch)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        account,
		IncrementSequenceNum: true,
		Operations:           operations,
		BaseFee:              params.BaseFee,
		Memo:                 txnbuild.MemoText(memo),
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(params.TimeoutSeconds)},
	})
	if err != nil {
		return nil, "", errors.Join(constants.ErrTransactionBuildFailed, err)
	}
	return tx, memo, nil
}

// ToUnsignedTransaction encodes the envelope and computes its hash for the network
func ToUnsignedTransaction(tx *txnbuild.Transaction, memo string, networkPassphrase string) (*common.UnsignedTransaction, error) {
	xdr, err := tx.Base64()
	if err != nil {
		return nil, errors.Join(constants.ErrTransactionBuildFailed, err)
	}
	hash, err := tx.HashHex(networkPassphrase)
	if err != nil {
		return nil, errors.Join(constants.ErrTransactionBuildFailed, err)
	}
	return &common.UnsignedTransaction{
		Xdr:               xdr,
		Hash:              hash,
		NetworkPassphrase: networkPassphrase,
		SourceAccount:     tx.SourceAccount().AccountID,
		Sequence:          tx.SourceAccount().Sequence,
		Operations:        len(tx.Operations()),
		Memo:              memo,
	}, nil
}
