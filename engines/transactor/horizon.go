package transactor_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/txnbuild"
)

type HorizonTransactor struct {
	client            horizonclient.ClientInterface
	networkPassphrase string
	assets            common.AssetRegistry
	params            PaymentTransactionParams
	logger            *slog.Logger
}

func NewHorizonTransactor(client horizonclient.ClientInterface, networkPassphrase string, assets common.AssetRegistry, params PaymentTransactionParams) *HorizonTransactor {
	if assets == nil {
		assets = common.NewAssetRegistry(nil)
	}
	return &HorizonTransactor{
		client:            client,
		networkPassphrase: networkPassphrase,
		assets:            assets,
		params:            params.withDefaults(),
		logger:            slog.Default().With("component", "transactor"),
	}
}

func InitHorizonTransactor(config *configuration.RuntimeConfiguration) (*HorizonTransactor, error) {
	if config == nil {
		return nil, errors.Join(constants.ErrTransactorLoadFailed, errors.New("missing configuration"))
	}
	client := &horizonclient.Client{
		HorizonURL: strings.TrimSuffix(config.Network.HorizonUrl, "/") + "/",
		HTTP:       &http.Client{Timeout: time.Duration(config.PayoutConfiguration.TxTimeout+30) * time.Second},
	}
	transactor := NewHorizonTransactor(client, config.Network.Passphrase, config.Assets, PaymentTransactionParams{
		BaseFee:        config.PayoutConfiguration.BaseFee,
		TimeoutSeconds: config.PayoutConfiguration.TxTimeout,
		MemoTemplate:   config.PayoutConfiguration.MemoTemplate,
	})
	slog.Debug("horizon transactor initialized", "horizon", config.Network.HorizonUrl)
	return transactor, nil
}

// UseRecipientMemo makes single payment transactions carry the memo of their recipient
func (engine *HorizonTransactor) UseRecipientMemo() {
	engine.params.RecipientMemo = true
}

func (engine *HorizonTransactor) GetId() string {
	return "HorizonTransactor"
}

func (engine *HorizonTransactor) GetNetworkPassphrase() string {
	return engine.networkPassphrase
}

func (engine *HorizonTransactor) loadAccountDetail(ctx context.Context, address string) (hProtocol.Account, error) {
	if err := ctx.Err(); err != nil {
		return hProtocol.Account{}, err
	}
	account, err := engine.client.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			return account, errors.Join(constants.ErrAccountNotFound, fmt.Errorf("account %s", address))
		}
		return account, fmt.Errorf("loading account %s: %w", address, describeHorizonError(err))
	}
	return account, nil
}

func (engine *HorizonTransactor) LoadAccount(ctx context.Context, address string) (*common.AccountState, error) {
	account, err := engine.loadAccountDetail(ctx, address)
	if err != nil {
		return nil, err
	}
	sequence, err := account.GetSequenceNumber()
	if err != nil {
		return nil, fmt.Errorf("parsing sequence of %s: %w", address, err)
	}

	balances := make([]common.AccountBalance, 0, len(account.Balances))
	for _, b := range account.Balances {
		asset := common.NativeAsset()
		if b.Asset.Type != "native" {
			asset = common.Asset{Code: b.Asset.Code, Issuer: b.Asset.Issuer}
		}
		balances = append(balances, common.AccountBalance{Asset: asset, Balance: b.Balance})
	}

	return &common.AccountState{
		Address:  address,
		Sequence: sequence,
		Balances: balances,
	}, nil
}

func (engine *HorizonTransactor) BuildPaymentTransaction(ctx context.Context, source string, batch common.RecipientBatch) (*common.UnsignedTransaction, error) {
	state, err := engine.LoadAccount(ctx, source)
	if err != nil {
		return nil, errors.Join(constants.ErrAccountLoadFailed, err)
	}
	account := &txnbuild.SimpleAccount{AccountID: source, Sequence: state.Sequence}
	tx, memo, err := NewPaymentTransaction(account, batch, engine.assets, engine.params)
	if err != nil {
		return nil, err
	}
	unsigned, err := ToUnsignedTransaction(tx, memo, engine.networkPassphrase)
	if err != nil {
		return nil, err
	}
	engine.logger.Debug("transaction built", "hash", unsigned.Hash, "sequence", unsigned.Sequence, "operations", unsigned.Operations)
	return unsigned, nil
}

// Submit blocks until horizon reports ledger inclusion or rejection.
// Nothing is resubmitted here, a failed submission is the caller's decision.
func (engine *HorizonTransactor) Submit(ctx context.Context, signedXdr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Join(constants.ErrTransactionSubmitFailed, err)
	}
	result, err := engine.client.SubmitTransactionXDR(signedXdr)
	if err != nil {
		return "", describeHorizonError(err)
	}
	return result.Hash, nil
}

// describeHorizonError turns horizon result codes into
// "Transaction failed: <tx code> <op codes>"
func describeHorizonError(err error) error {
	hErr := horizonclient.GetError(err)
	if hErr == nil {
		return errors.Join(constants.ErrTransactionSubmitFailed, err)
	}
	codes, codesErr := hErr.ResultCodes()
	if codesErr != nil || codes == nil {
		problem := strings.TrimSpace(strings.Join([]string{hErr.Problem.Title, hErr.Problem.Detail}, ": "))
		return errors.Join(constants.ErrTransactionSubmitFailed, errors.New(strings.Trim(problem, ": ")))
	}
	return fmt.Errorf("%w: %s", constants.ErrTransactionFailed,
		strings.TrimSpace(fmt.Sprintf("%s %s", codes.TransactionCode, strings.Join(codes.OperationCodes, ", "))))
}
