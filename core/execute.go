package core

import (
	"context"
	"log/slog"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/core/execute"
	"github.com/lumepay/lumepay/core/validate"
)

// ExecuteBulkPayroll validates the recipients and pays them batch by batch.
// Batch failures never abort the run, they are recorded in the returned progress.
func ExecuteBulkPayroll(runCtx context.Context, recipients []common.PaymentRecipient, engineContext *common.ExecuteBulkPayrollEngineContext, options *common.ExecuteBulkPayrollOptions) (*common.BulkPaymentProgress, error) {
	if options == nil {
		options = &common.ExecuteBulkPayrollOptions{}
	}
	if validationResult := validate.ValidateRecipients(recipients, options.Assets); !validationResult.Valid {
		return nil, validationResult.ToError()
	}

	ctx, err := execute.NewPayrollExecutionContext(runCtx, recipients, engineContext, options)
	if err != nil {
		return nil, err
	}

	ctx, err = WrapContext[*execute.PayrollExecutionContext, *common.ExecuteBulkPayrollOptions](ctx).ExecuteStages(options,
		execute.SplitIntoBatches,
		execute.ExecuteBatches).Unwrap()
	if err != nil {
		return nil, err
	}
	return ctx.StageData.Progress, nil
}

// RetryFailedRecipients runs a new payroll over the failed recipients of prior results only.
func RetryFailedRecipients(runCtx context.Context, prior common.BatchResults, engineContext *common.ExecuteBulkPayrollEngineContext, options *common.ExecuteBulkPayrollOptions) (*common.BulkPaymentProgress, error) {
	if options == nil {
		options = &common.ExecuteBulkPayrollOptions{}
	}
	failed := prior.GetFailedRecipients()
	if len(failed) == 0 {
		slog.Info("no failed recipients to retry", constants.LOG_FIELD_RUN_ID, options.RunId)
		progress := common.NewBulkPaymentProgress(options.RunId, 0, 0)
		progress.Finish()
		if options.OnProgress != nil {
			options.OnProgress(progress.Snapshot())
		}
		return progress, nil
	}
	slog.Info("retrying failed recipients", "count", len(failed))
	return ExecuteBulkPayroll(runCtx, failed, engineContext, options)
}
