package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/core"
	"github.com/lumepay/lumepay/core/estimate"
	"github.com/lumepay/lumepay/core/preflight"
	"github.com/lumepay/lumepay/state"
	"github.com/lumepay/lumepay/utils"
)

type payrollRunOptions struct {
	Title             string
	RunId             string
	Recipients        []common.PaymentRecipient
	PreviousReports   []common.PayoutReport
	DryRun            bool
	Confirmed         bool
	CheckDestinations bool
	SkipBalanceCheck  bool
	ReportToStdout    bool
	Silent            bool
	Notificator       string
}

func printValidationFailure(result *common.ValidationResult) {
	if state.Global.GetWantsOutputJson() {
		slog.Error("recipients are not valid", "errors", result.Errors, "phase", "validation")
	} else {
		utils.PrintValidationErrors(result.Errors, "Invalid Recipients")
	}
}

func onProgress(progress common.BulkPaymentProgress) {
	slog.Info(constants.LOG_MESSAGE_RUN_PROGRESS,
		"batch", fmt.Sprintf("%d/%d", progress.CurrentBatch, progress.TotalBatches),
		"processed", fmt.Sprintf("%d/%d", progress.ProcessedRecipients, progress.TotalRecipients),
		"processing", progress.IsProcessing,
		"phase", "run_progress")
}

// runPayroll takes already validated recipients through the pre-run checks,
// confirmation, execution, reporting and notifications. It returns the exit code.
func runPayroll(engines *ConfigurationAndEngines, options payrollRunOptions) int {
	config, signer, transactor := engines.Unwrap()
	ctx := context.Background()
	runId := options.RunId
	if runId == "" {
		runId = uuid.NewString()
	}

	costEstimate := assertRunWithResultAndErrorMessage(func() (*common.CostEstimate, error) {
		return estimate.CalculateBulkPaymentCost(options.Recipients, &common.EstimateCostOptions{
			MaxOperationsPerTx: config.PayoutConfiguration.MaxOperationsPerTx,
			BaseFeeStroops:     config.PayoutConfiguration.BaseFee,
			Assets:             config.Assets,
		})
	}, common.EXIT_RECIPIENTS_INVALID, "failed to estimate run cost")

	if state.Global.GetWantsOutputJson() {
		slog.Info(constants.LOG_MESSAGE_PRE_RUN_SUMMARY,
			constants.LOG_FIELD_RUN_ID, runId,
			constants.LOG_FIELD_RECIPIENTS, options.Recipients,
			constants.LOG_FIELD_ESTIMATE, costEstimate,
			"phase", "pre_run_summary")
	} else {
		utils.PrintRecipients(options.Recipients, options.Title)
		utils.PrintCostEstimate(costEstimate, "Estimate")
	}

	if options.CheckDestinations {
		slog.Info("checking destinations", "phase", "check_destinations")
		issues := preflight.CheckDestinations(ctx, transactor, options.Recipients, config.Assets)
		if len(issues) > 0 {
			if state.Global.GetWantsOutputJson() {
				slog.Warn("some destinations cannot receive their payment", "issues", issues, "phase", "check_destinations")
			} else {
				utils.PrintDestinationIssues(issues, "Destination Issues")
			}
		}
	}

	if !options.SkipBalanceCheck {
		shortfalls := assertRunWithResultAndErrorMessage(func() ([]preflight.BalanceShortfall, error) {
			return preflight.CheckSufficientBalance(ctx, transactor, config.SourceAccount, costEstimate, config.Assets)
		}, common.EXIT_OPERATION_FAILED, "failed to check source account balance")
		if len(shortfalls) > 0 {
			slog.Error("insufficient balance in source account", "source", config.SourceAccount, "shortfalls", shortfalls, "phase", "balance_check")
			if !options.DryRun {
				return common.EXIT_OPERATION_FAILED
			}
		}
	}

	if !options.Confirmed {
		msg := fmt.Sprintf("Do you want to pay %d recipients in %d transactions?", len(options.Recipients), costEstimate.NumberOfTransactions)
		if options.DryRun {
			msg = msg + " " + constants.DRY_RUN_NOTE
		}
		assertRequireConfirmation(msg)
	}

	slog.Info("acquiring lock", "source", config.SourceAccount, "phase", "acquiring_lock")
	unlock := assertRunWithResultAndErrorMessage(func() (func() error, error) {
		return lockSourceWithTimeout(time.Minute*constants.DEFAULT_LOCK_TIMEOUT_MINUTES, config.SourceAccount)
	}, common.EXIT_LOCK_FAILURE, "failed to acquire lock")
	defer unlock()

	reporter, closeReporter := assertRunWithResultAndErrorMessage(func() (reporterAndCloser, error) {
		reporter, closer, err := loadReporter(ctx, config, options.DryRun, options.ReportToStdout)
		return reporterAndCloser{reporter, closer}, err
	}, common.EXIT_CONFIGURATION_LOAD_FAILURE, "failed to load reporters").Unwrap()
	defer closeReporter()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	observer := startMetrics(runCtx, config)

	protectedSection := utils.StartNewProtectedSection("payroll run")
	defer protectedSection.Close()

	slog.Info("executing payroll", constants.LOG_FIELD_RUN_ID, runId, "phase", "executing_payroll")
	progress := assertRunWithResultAndErrorMessage(func() (*common.BulkPaymentProgress, error) {
		return core.ExecuteBulkPayroll(runCtx, options.Recipients,
			common.NewExecuteBulkPayrollEngineContext(transactor, signer, observer, notifyAdminFactory(config)),
			&common.ExecuteBulkPayrollOptions{
				SourceAccount:      config.SourceAccount,
				MaxOperationsPerTx: config.PayoutConfiguration.MaxOperationsPerTx,
				Assets:             config.Assets,
				RunId:              runId,
				OnProgress:         onProgress,
				ShouldStop:         protectedSection.Signaled,
				DryRun:             options.DryRun,
			})
	}, common.EXIT_OPERATION_FAILED, "failed to execute payroll")

	summary, err := writeRunReports(ctx, reporter, config, progress, options.PreviousReports)
	if err != nil {
		slog.Error("failed to write payout reports", "error", common.DescribeError(err), "phase", "reporting")
	}

	if state.Global.GetWantsOutputJson() {
		slog.Info(constants.LOG_MESSAGE_RUN_SUMMARY,
			constants.LOG_FIELD_RUN_ID, runId,
			constants.LOG_FIELD_RESULTS, progress.CompletedBatches,
			"summary", summary,
			"phase", "result")
	} else {
		utils.PrintBatchResults(progress.CompletedBatches, fmt.Sprintf("Results of run %s", runId), config.Network.Explorer)
		utils.PrintRunSummary(summary, "Summary", config.Network.Explorer)
	}

	if !options.Silent && !options.DryRun {
		notifyPayrollProcessed(config, summary, options.Notificator)
	}

	if err != nil {
		return common.EXIT_PAYOUT_WRITE_FAILURE
	}
	if !progress.OverallSuccess {
		slog.Error("failed batches detected", "failed", progress.CompletedBatches.CountFailed(), "total", len(progress.CompletedBatches),
			"retry", fmt.Sprintf("lumepay retry --%s %s", RUN_ID_FLAG, runId))
		return common.EXIT_PARTIAL_FAILURE
	}
	return common.EXIT_SUCCESS
}

type reporterAndCloser struct {
	reporter common.ReporterEngine
	closer   reporterCloser
}

func (r reporterAndCloser) Unwrap() (common.ReporterEngine, reporterCloser) {
	return r.reporter, r.closer
}

func exitWith(code int) {
	if code != common.EXIT_SUCCESS {
		os.Exit(code)
	}
}
