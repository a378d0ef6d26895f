package common

import "slices"

type BulkPaymentProgress struct {
	RunId               string       `json:"run_id"`
	CurrentBatch        int          `json:"current_batch"`
	TotalBatches        int          `json:"total_batches"`
	ProcessedRecipients int          `json:"processed_recipients"`
	TotalRecipients     int          `json:"total_recipients"`
	CompletedBatches    BatchResults `json:"completed_batches"`
	IsProcessing        bool         `json:"is_processing"`
	OverallSuccess      bool         `json:"overall_success"`
}

type ProgressCallback func(progress BulkPaymentProgress)

func NewBulkPaymentProgress(runId string, totalBatches int, totalRecipients int) *BulkPaymentProgress {
	return &BulkPaymentProgress{
		RunId:            runId,
		TotalBatches:     totalBatches,
		TotalRecipients:  totalRecipients,
		CompletedBatches: make(BatchResults, 0, totalBatches),
		IsProcessing:     true,
		OverallSuccess:   true,
	}
}

// Snapshot returns a copy that does not share the results slice with the live progress
func (p *BulkPaymentProgress) Snapshot() BulkPaymentProgress {
	snapshot := *p
	snapshot.CompletedBatches = slices.Clone(p.CompletedBatches)
	return snapshot
}

func (p *BulkPaymentProgress) BeginBatch(index int) {
	p.CurrentBatch = index + 1
}

// CompleteBatch records the result. A failed batch latches OverallSuccess to false.
func (p *BulkPaymentProgress) CompleteBatch(result BatchResult) {
	p.CompletedBatches = append(p.CompletedBatches, result)
	p.ProcessedRecipients += len(result.Recipients)
	if !result.Success {
		p.OverallSuccess = false
	}
}

func (p *BulkPaymentProgress) Finish() {
	p.IsProcessing = false
}

func (p *BulkPaymentProgress) GetFailedRecipients() []PaymentRecipient {
	return p.CompletedBatches.GetFailedRecipients()
}
