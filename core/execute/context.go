package execute

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

type StageData struct {
	Batches  []common.RecipientBatch
	Progress *common.BulkPaymentProgress
}

type PayrollExecutionContext struct {
	common.ExecuteBulkPayrollEngineContext

	runCtx    context.Context
	logger    *slog.Logger
	StageData *StageData

	RunId         string
	SourceAccount string
	Recipients    []common.PaymentRecipient
}

func NewPayrollExecutionContext(runCtx context.Context, recipients []common.PaymentRecipient, engineContext *common.ExecuteBulkPayrollEngineContext, options *common.ExecuteBulkPayrollOptions) (*PayrollExecutionContext, error) {
	if err := engineContext.Validate(); err != nil {
		return nil, err
	}
	if options.SourceAccount == "" {
		return nil, constants.ErrMissingSourceAccount
	}
	if runCtx == nil {
		runCtx = context.Background()
	}
	runId := options.RunId
	if runId == "" {
		runId = uuid.NewString()
	}

	return &PayrollExecutionContext{
		ExecuteBulkPayrollEngineContext: *engineContext,

		runCtx:    runCtx,
		logger:    slog.Default().With(constants.LOG_FIELD_RUN_ID, runId),
		StageData: &StageData{},

		RunId:         runId,
		SourceAccount: options.SourceAccount,
		Recipients:    recipients,
	}, nil
}

func (ctx *PayrollExecutionContext) emitProgress(options *common.ExecuteBulkPayrollOptions) {
	if options.OnProgress == nil || ctx.StageData.Progress == nil {
		return
	}
	options.OnProgress(ctx.StageData.Progress.Snapshot())
}
