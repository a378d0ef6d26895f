package common

import (
	"time"

	"github.com/samber/lo"
	"github.com/stellar/go/amount"
)

type RunSummary struct {
	RunId            string            `json:"run_id"`
	SourceAccount    string            `json:"source_account"`
	Network          string            `json:"network"`
	Timestamp        time.Time         `json:"timestamp"`
	TotalRecipients  int               `json:"total_recipients"`
	PaidRecipients   int               `json:"paid_recipients"`
	FailedRecipients int               `json:"failed_recipients"`
	TotalBatches     int               `json:"total_batches"`
	FailedBatches    int               `json:"failed_batches"`
	PaidTotals       map[string]string `json:"paid_totals"`
	TransactionIds   []string          `json:"transaction_ids"`
	OverallSuccess   bool              `json:"overall_success"`
}

func NewRunSummary(sourceAccount string, network string, progress BulkPaymentProgress, timestamp time.Time) RunSummary {
	paid := lo.Flatten(lo.FilterMap(progress.CompletedBatches, func(br BatchResult, _ int) ([]PaymentRecipient, bool) {
		return br.Recipients, br.Success
	}))
	failed := progress.GetFailedRecipients()

	return RunSummary{
		RunId:            progress.RunId,
		SourceAccount:    sourceAccount,
		Network:          network,
		Timestamp:        timestamp,
		TotalRecipients:  progress.TotalRecipients,
		PaidRecipients:   len(paid),
		FailedRecipients: len(failed),
		TotalBatches:     progress.TotalBatches,
		FailedBatches:    progress.CompletedBatches.CountFailed(),
		PaidTotals:       SumAmountsByAsset(paid),
		TransactionIds: lo.FilterMap(progress.CompletedBatches, func(br BatchResult, _ int) (string, bool) {
			return br.TransactionHash, br.Success
		}),
		OverallSuccess: progress.OverallSuccess,
	}
}

// ApplyReports recomputes the recipient figures over every record of the run,
// earlier attempts included. FailedBatches stays the count of the latest attempt.
func (s *RunSummary) ApplyReports(reports []PayoutReport) {
	paid := make([]PaymentRecipient, 0, len(reports))
	transactionIds := make([]string, 0)
	for _, report := range reports {
		if !report.IsSuccess {
			continue
		}
		paid = append(paid, report.ToRecipient())
		if report.TxHash != "" {
			transactionIds = append(transactionIds, report.TxHash)
		}
	}
	s.TotalRecipients = len(reports)
	s.PaidRecipients = len(paid)
	s.FailedRecipients = len(reports) - len(paid)
	s.PaidTotals = SumAmountsByAsset(paid)
	s.TransactionIds = lo.Uniq(transactionIds)
	s.TotalBatches = len(s.TransactionIds) + s.FailedBatches
	s.OverallSuccess = s.FailedRecipients == 0
}

// SumAmountsByAsset sums in stroops, amounts that fail to parse are skipped
func SumAmountsByAsset(recipients []PaymentRecipient) map[string]string {
	totals := make(map[string]int64)
	for _, recipient := range recipients {
		stroops, err := recipient.GetAmountStroops()
		if err != nil {
			continue
		}
		totals[recipient.AssetCode] += stroops
	}
	return lo.MapValues(totals, func(total int64, _ string) string {
		return amount.StringFromInt64(total)
	})
}
