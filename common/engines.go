package common

import (
	"context"
)

type AccountBalance struct {
	Asset   Asset  `json:"asset"`
	Balance string `json:"balance"`
}

type AccountState struct {
	Address  string           `json:"address"`
	Sequence int64            `json:"sequence"`
	Balances []AccountBalance `json:"balances"`
}

func (s *AccountState) HasTrustline(asset Asset) bool {
	if asset.IsNative() {
		return true
	}
	for _, b := range s.Balances {
		if b.Asset.Code == asset.Code && b.Asset.Issuer == asset.Issuer {
			return true
		}
	}
	return false
}

// TransactorEngine builds payment transactions against the ledger and submits them.
type TransactorEngine interface {
	GetId() string
	GetNetworkPassphrase() string
	LoadAccount(ctx context.Context, address string) (*AccountState, error)
	BuildPaymentTransaction(ctx context.Context, source string, batch RecipientBatch) (*UnsignedTransaction, error)
	// Submit waits for ledger inclusion and returns the transaction hash.
	Submit(ctx context.Context, signedXdr string) (string, error)
}

// SignerEngine hands the unsigned envelope to an external signing agent.
type SignerEngine interface {
	GetId() string
	Sign(ctx context.Context, unsignedXdr string, networkPassphrase string) SignResult
}

type NotificatorEngine interface {
	PayrollSummaryNotify(summary *RunSummary) error
	AdminNotify(msg string) error
	TestNotify() error
}

type ReporterEngine interface {
	GetId() string
	GetExistingReports(ctx context.Context, runId string) ([]PayoutReport, error)
	ReportPayouts(ctx context.Context, reports []PayoutReport) error
	ReportRunSummary(ctx context.Context, summary RunSummary) error
}
