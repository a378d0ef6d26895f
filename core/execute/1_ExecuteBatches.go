package execute

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/state"
)

const (
	BATCH_OUTCOME_SUCCESS    = "success"
	BATCH_OUTCOME_FAILED     = "failed"
	BATCH_OUTCOME_TERMINATED = "terminated"
	BATCH_OUTCOME_DRY_RUN    = "dry_run"
)

func logBatchCreation(logger *slog.Logger, batch common.RecipientBatch) {
	if state.Global.GetWantsOutputJson() {
		logger.Info("creating batch", "recipients", batch, "phase", "executing_batch")
	} else {
		logger.Info("creating batch", "tx_count", len(batch), "phase", "executing_batch")
	}
}

func dryRunExecuteBatch(ctx *PayrollExecutionContext, logger *slog.Logger, batchId string, batch common.RecipientBatch) *common.BatchResult {
	logger = logger.With(constants.LOG_FIELD_BATCH_ID, batchId)
	logBatchCreation(logger, batch)
	unsigned, err := ctx.GetTransactor().BuildPaymentTransaction(ctx.runCtx, ctx.SourceAccount, batch)
	if err != nil {
		logger.Warn("failed to build transaction", "error", err.Error(), "phase", "batch_execution_finished")
		return common.NewFailedBatchResult(batchId, batch, err)
	}
	logger.Info("batch built, skipping signing and submission", "tx_hash", unsigned.Hash, "phase", "batch_execution_finished")
	return common.NewSuccessBatchResult(batchId, batch, unsigned.Hash)
}

// executeBatch never panics, anything unexpected becomes a failed result
func executeBatch(ctx *PayrollExecutionContext, logger *slog.Logger, batchId string, batch common.RecipientBatch) (result *common.BatchResult) {
	logger = logger.With(constants.LOG_FIELD_BATCH_ID, batchId)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("batch processing panicked", "panic", r, "phase", "batch_execution_finished")
			result = common.NewFailedBatchResult(batchId, batch, errors.Join(constants.ErrBatchPanicked, fmt.Errorf("%v", r)))
		}
	}()

	logBatchCreation(logger, batch)
	unsigned, err := ctx.GetTransactor().BuildPaymentTransaction(ctx.runCtx, ctx.SourceAccount, batch)
	if err != nil {
		logger.Warn("failed to build transaction", "error", err.Error(), "phase", "batch_execution_finished")
		return common.NewFailedBatchResult(batchId, batch, err)
	}

	logger.Info("waiting for signature", "tx_hash", unsigned.Hash, "signer", ctx.GetSigner().GetId(), "phase", "batch_waiting_for_signature")
	signResult := ctx.GetSigner().Sign(ctx.runCtx, unsigned.Xdr, unsigned.NetworkPassphrase)
	if !signResult.IsSigned() {
		err := signResult.ToError()
		logger.Warn("transaction was not signed", "outcome", signResult.Outcome, "error", err.Error(), "phase", "batch_execution_finished")
		return common.NewFailedBatchResult(batchId, batch, err)
	}
	if err := common.VerifySignedXdr(unsigned, signResult.SignedXdr); err != nil {
		logger.Warn("signer returned unexpected transaction", "error", err.Error(), "phase", "batch_execution_finished")
		return common.NewFailedBatchResult(batchId, batch, errors.Join(constants.ErrSigningAgentFailure, err))
	}

	logger.Info("broadcasting batch", "tx_hash", unsigned.Hash, "phase", "batch_waiting_for_confirmation")
	hash, err := ctx.GetTransactor().Submit(ctx.runCtx, signResult.SignedXdr)
	if err != nil {
		logger.Warn("failed to submit batch", "error", err.Error(), "phase", "batch_execution_finished")
		return common.NewFailedBatchResult(batchId, batch, err)
	}

	logger.Info("batch successful", "tx_hash", hash, "phase", "batch_execution_finished")
	return common.NewSuccessBatchResult(batchId, batch, hash)
}

func batchOutcome(result *common.BatchResult, dryRun bool) string {
	switch {
	case errors.Is(result.Err, constants.ErrExecutionTerminated):
		return BATCH_OUTCOME_TERMINATED
	case !result.Success:
		return BATCH_OUTCOME_FAILED
	case dryRun:
		return BATCH_OUTCOME_DRY_RUN
	default:
		return BATCH_OUTCOME_SUCCESS
	}
}

func executeBatches(ctx *PayrollExecutionContext, options *common.ExecuteBulkPayrollOptions) *PayrollExecutionContext {
	logger := ctx.logger
	batches := ctx.StageData.Batches
	batchCount := len(batches)

	progress := common.NewBulkPaymentProgress(ctx.RunId, batchCount, len(ctx.Recipients))
	ctx.StageData.Progress = progress
	ctx.emitProgress(options)

	logger.Info("paying out", "batches_count", batchCount, "phase", "batch_execution_start")
	terminated := false
	for i, batch := range batches {
		batchId := fmt.Sprintf("%d/%d", i+1, batchCount)
		progress.BeginBatch(i)
		ctx.emitProgress(options)

		if !terminated && options.ShouldStop != nil && options.ShouldStop() {
			terminated = true
			logger.Warn("execution terminated, remaining batches will not be sent", "remaining_batches", batchCount-i)
			ctx.AdminNotify(fmt.Sprintf("Payroll run %s terminated by user, %d batches not sent", ctx.RunId, batchCount-i))
		}

		start := time.Now()
		var result *common.BatchResult
		switch {
		case terminated:
			result = common.NewFailedBatchResult(batchId, batch, constants.ErrExecutionTerminated)
		case options.DryRun:
			result = dryRunExecuteBatch(ctx, logger, batchId, batch)
		default:
			result = executeBatch(ctx, logger, batchId, batch)
		}
		if ctx.Observer != nil {
			ctx.Observer.ObserveBatch(batchOutcome(result, options.DryRun), len(batch), time.Since(start))
		}

		progress.CompleteBatch(*result)
		ctx.emitProgress(options)
	}

	progress.Finish()
	ctx.emitProgress(options)
	if ctx.Observer != nil {
		ctx.Observer.ObserveRun(progress.Snapshot())
	}
	logger.Info("payroll run finished", "overall_success", progress.OverallSuccess, "failed_batches", progress.CompletedBatches.CountFailed(), "phase", "batch_execution_finished")
	return ctx
}

// NOTE: batch failures are part of the result, they are never returned as error
func ExecuteBatches(ctx *PayrollExecutionContext, options *common.ExecuteBulkPayrollOptions) (*PayrollExecutionContext, error) {
	return executeBatches(ctx, options), nil
}
