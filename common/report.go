package common

import (
	"time"
)

// PayoutReport is the persisted record of one recipient of a run.
type PayoutReport struct {
	RunId        string    `json:"run_id" csv:"run_id"`
	BatchId      string    `json:"batch_id" csv:"batch_id"`
	Timestamp    time.Time `json:"timestamp" csv:"timestamp"`
	Recipient    string    `json:"recipient" csv:"recipient"`
	EmployeeName string    `json:"employee_name,omitempty" csv:"name"`
	Amount       string    `json:"amount" csv:"amount"`
	AssetCode    string    `json:"asset_code" csv:"asset"`
	Memo         string    `json:"memo,omitempty" csv:"memo"`
	TxHash       string    `json:"tx_hash,omitempty" csv:"tx_hash"`
	IsSuccess    bool      `json:"success" csv:"success"`
	Note         string    `json:"note,omitempty" csv:"note"`
}

func NewPayoutReport(runId string, batchId string, recipient PaymentRecipient, timestamp time.Time) PayoutReport {
	return PayoutReport{
		RunId:        runId,
		BatchId:      batchId,
		Timestamp:    timestamp,
		Recipient:    recipient.Address,
		EmployeeName: recipient.EmployeeName,
		Amount:       recipient.Amount,
		AssetCode:    recipient.AssetCode,
		Memo:         recipient.Memo,
	}
}

func (pr *PayoutReport) ToRecipient() PaymentRecipient {
	return PaymentRecipient{
		Address:      pr.Recipient,
		Amount:       pr.Amount,
		AssetCode:    pr.AssetCode,
		Memo:         pr.Memo,
		EmployeeName: pr.EmployeeName,
	}
}

func (pr *PayoutReport) GetTableHeaders() []string {
	return []string{
		"Batch",
		"Name",
		"Recipient",
		"Amount",
		"Asset",
		"Tx Hash",
		"Success",
		"Note",
	}
}

func (pr *PayoutReport) ToTableRowData() []string {
	success := "no"
	if pr.IsSuccess {
		success = "yes"
	}
	return []string{
		pr.BatchId,
		pr.EmployeeName,
		ShortenAddress(pr.Recipient),
		pr.Amount,
		pr.AssetCode,
		pr.TxHash,
		success,
		pr.Note,
	}
}

// FailedReportsToRecipients returns the recipients of failed reports in report order
func FailedReportsToRecipients(reports []PayoutReport) []PaymentRecipient {
	result := make([]PaymentRecipient, 0)
	for _, report := range reports {
		if report.IsSuccess {
			continue
		}
		result = append(result, report.ToRecipient())
	}
	return result
}

// MergeRetryReports keeps the successful reports of previous attempts and
// replaces everything else with the reports of the latest attempt.
func MergeRetryReports(previous []PayoutReport, latest []PayoutReport) []PayoutReport {
	result := make([]PayoutReport, 0, len(previous)+len(latest))
	for _, report := range previous {
		if report.IsSuccess {
			result = append(result, report)
		}
	}
	return append(result, latest...)
}
