package execute

import (
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

func normalizeBatchSize(maxPerBatch int) int {
	if maxPerBatch <= 0 || maxPerBatch > constants.MAX_OPERATIONS_PER_TX {
		return constants.MAX_OPERATIONS_PER_TX
	}
	return maxPerBatch
}

// GroupRecipients splits recipients into contiguous batches of at most
// maxPerBatch, preserving order. Empty input yields no batches.
func GroupRecipients(recipients []common.PaymentRecipient, maxPerBatch int) []common.RecipientBatch {
	maxPerBatch = normalizeBatchSize(maxPerBatch)
	batches := make([]common.RecipientBatch, 0, (len(recipients)+maxPerBatch-1)/maxPerBatch)
	batchBlueprint := common.NewBatch(maxPerBatch)

	for _, recipient := range recipients {
		if !batchBlueprint.AddRecipient(recipient) {
			batches = append(batches, batchBlueprint.ToBatch())
			batchBlueprint = common.NewBatch(maxPerBatch)
			batchBlueprint.AddRecipient(recipient)
		}
	}
	if batch := batchBlueprint.ToBatch(); len(batch) > 0 {
		batches = append(batches, batch)
	}
	return batches
}

func SplitIntoBatches(ctx *PayrollExecutionContext, options *common.ExecuteBulkPayrollOptions) (*PayrollExecutionContext, error) {
	logger := ctx.logger.With("phase", "split_into_batches")
	ctx.StageData.Batches = GroupRecipients(ctx.Recipients, options.MaxOperationsPerTx)
	logger.Info("recipients split into batches", "recipients", len(ctx.Recipients), "batches_count", len(ctx.StageData.Batches))
	return ctx, nil
}
