package common

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// BatchResult is the outcome of one batch. TransactionHash is set only on
// success, Error and FailedRecipients only on failure.
type BatchResult struct {
	Id               string         `json:"id"`
	Success          bool           `json:"success"`
	TransactionHash  string         `json:"transaction_hash,omitempty"`
	Recipients       RecipientBatch `json:"recipients"`
	Error            string         `json:"error,omitempty"`
	FailedRecipients RecipientBatch `json:"failed_recipients,omitempty"`
	Err              error          `json:"-"`
}

// DescribeError flattens joined errors into a single line
func DescribeError(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}

func NewFailedBatchResult(id string, recipients RecipientBatch, err error) *BatchResult {
	return &BatchResult{
		Id:               id,
		Success:          false,
		Recipients:       recipients,
		Error:            DescribeError(err),
		FailedRecipients: recipients,
		Err:              err,
	}
}

func NewSuccessBatchResult(id string, recipients RecipientBatch, txHash string) *BatchResult {
	return &BatchResult{
		Id:              id,
		Success:         true,
		TransactionHash: txHash,
		Recipients:      recipients,
	}
}

func (br *BatchResult) ToIndividualReports(runId string, timestamp time.Time) []PayoutReport {
	return lo.Map(br.Recipients, func(recipient PaymentRecipient, _ int) PayoutReport {
		report := NewPayoutReport(runId, br.Id, recipient, timestamp)
		report.TxHash = br.TransactionHash
		report.IsSuccess = br.Success
		if !br.Success {
			report.Note = br.Error
		}
		return report
	})
}

type BatchResults []BatchResult

func (brs BatchResults) ToIndividualReports(runId string, timestamp time.Time) []PayoutReport {
	return lo.Flatten(lo.Map(brs, func(br BatchResult, _ int) []PayoutReport { return br.ToIndividualReports(runId, timestamp) }))
}

// GetFailedRecipients is the union of failed recipients over all failed batches, in order
func (brs BatchResults) GetFailedRecipients() []PaymentRecipient {
	failed := make([]PaymentRecipient, 0)
	for _, br := range brs {
		if br.Success {
			continue
		}
		failed = append(failed, br.FailedRecipients...)
	}
	return failed
}

func (brs BatchResults) CountFailed() int {
	return lo.CountBy(brs, func(br BatchResult) bool { return !br.Success })
}
