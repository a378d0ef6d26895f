package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/constants"
)

// writeRunReports persists one record per recipient and the run summary.
// previous holds the records of earlier attempts of the same run, their
// successes are kept and the summary covers the whole run.
func writeRunReports(ctx context.Context, reporter common.ReporterEngine, config *configuration.RuntimeConfiguration, progress *common.BulkPaymentProgress, previous []common.PayoutReport) (*common.RunSummary, error) {
	now := time.Now()
	reports := progress.CompletedBatches.ToIndividualReports(progress.RunId, now)
	summary := common.NewRunSummary(config.SourceAccount, config.GetNetworkName(), progress.Snapshot(), now)
	if len(previous) > 0 {
		reports = common.MergeRetryReports(previous, reports)
		summary.ApplyReports(reports)
	}
	if len(reports) == 0 {
		return &summary, nil
	}

	slog.Info("writing payout reports", constants.LOG_FIELD_RUN_ID, progress.RunId, "reporter", reporter.GetId(), "count", len(reports), "phase", "reporting")
	if err := reporter.ReportPayouts(ctx, reports); err != nil {
		return &summary, err
	}
	if err := reporter.ReportRunSummary(ctx, summary); err != nil {
		return &summary, err
	}
	return &summary, nil
}

func loadRunReports(ctx context.Context, reporter common.ReporterEngine, runId string) ([]common.PayoutReport, error) {
	slog.Debug("loading payout reports", constants.LOG_FIELD_RUN_ID, runId, "reporter", reporter.GetId())
	return reporter.GetExistingReports(ctx, runId)
}
