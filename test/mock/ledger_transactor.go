package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	transactor_engines "github.com/lumepay/lumepay/engines/transactor"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
)

// LedgerTransactor is an in-memory ledger. Transactions are built like the
// horizon engine builds them and sequence numbers are enforced on submit.
type LedgerTransactor struct {
	Passphrase string
	Assets     common.AssetRegistry
	Accounts   map[string]*common.AccountState

	// failures keyed by 0 based call index
	BuildErrors  map[int]error
	SubmitErrors map[int]error

	Submitted []string

	mtx         sync.Mutex
	buildCalls  int
	submitCalls int
}

func NewLedgerTransactor(accounts ...string) *LedgerTransactor {
	transactor := &LedgerTransactor{
		Passphrase:   network.TestNetworkPassphrase,
		Assets:       common.NewAssetRegistry(nil),
		Accounts:     map[string]*common.AccountState{},
		BuildErrors:  map[int]error{},
		SubmitErrors: map[int]error{},
		Submitted:    []string{},
	}
	for _, account := range accounts {
		transactor.AddAccount(account, common.NativeAsset())
	}
	return transactor
}

func (engine *LedgerTransactor) AddAccount(address string, trustlines ...common.Asset) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	balances := make([]common.AccountBalance, 0, len(trustlines))
	for _, asset := range trustlines {
		balances = append(balances, common.AccountBalance{Asset: asset, Balance: "1000.0000000"})
	}
	engine.Accounts[address] = &common.AccountState{
		Address:  address,
		Sequence: 1000,
		Balances: balances,
	}
}

func (engine *LedgerTransactor) GetId() string {
	return "LedgerTransactor"
}

func (engine *LedgerTransactor) GetNetworkPassphrase() string {
	return engine.Passphrase
}

func (engine *LedgerTransactor) BuildCalls() int {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	return engine.buildCalls
}

func (engine *LedgerTransactor) SubmitCalls() int {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	return engine.submitCalls
}

func (engine *LedgerTransactor) LoadAccount(ctx context.Context, address string) (*common.AccountState, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	account, ok := engine.Accounts[address]
	if !ok {
		return nil, errors.Join(constants.ErrAccountNotFound, fmt.Errorf("account %s", address))
	}
	copied := *account
	return &copied, nil
}

func (engine *LedgerTransactor) BuildPaymentTransaction(ctx context.Context, source string, batch common.RecipientBatch) (*common.UnsignedTransaction, error) {
	engine.mtx.Lock()
	call := engine.buildCalls
	engine.buildCalls++
	buildErr := engine.BuildErrors[call]
	engine.mtx.Unlock()
	if buildErr != nil {
		return nil, buildErr
	}

	state, err := engine.LoadAccount(ctx, source)
	if err != nil {
		return nil, errors.Join(constants.ErrAccountLoadFailed, err)
	}
	tx, memo, err := transactor_engines.NewPaymentTransaction(&txnbuild.SimpleAccount{AccountID: source, Sequence: state.Sequence}, batch, engine.Assets, transactor_engines.PaymentTransactionParams{})
	if err != nil {
		return nil, err
	}
	return transactor_engines.ToUnsignedTransaction(tx, memo, engine.Passphrase)
}

func (engine *LedgerTransactor) Submit(ctx context.Context, signedXdr string) (string, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	call := engine.submitCalls
	engine.submitCalls++
	if err := engine.SubmitErrors[call]; err != nil {
		return "", err
	}

	gtx, err := txnbuild.TransactionFromXDR(signedXdr)
	if err != nil {
		return "", errors.Join(constants.ErrTransactionSubmitFailed, err)
	}
	tx, ok := gtx.Transaction()
	if !ok {
		return "", errors.Join(constants.ErrTransactionSubmitFailed, errors.New("fee bump"))
	}
	if len(tx.Signatures()) == 0 {
		return "", fmt.Errorf("%w: tx_bad_auth", constants.ErrTransactionFailed)
	}
	source := tx.SourceAccount()
	account, ok := engine.Accounts[source.AccountID]
	if !ok {
		return "", fmt.Errorf("%w: tx_no_source_account", constants.ErrTransactionFailed)
	}
	if source.Sequence != account.Sequence+1 {
		return "", fmt.Errorf("%w: tx_bad_seq", constants.ErrTransactionFailed)
	}
	account.Sequence = source.Sequence

	hash, err := tx.HashHex(engine.Passphrase)
	if err != nil {
		return "", errors.Join(constants.ErrTransactionSubmitFailed, err)
	}
	engine.Submitted = append(engine.Submitted, hash)
	return hash, nil
}
