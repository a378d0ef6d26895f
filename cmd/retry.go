package cmd

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
	"github.com/spf13/cobra"
)

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "retries failed payments of a run",
	Long:  "reads the payout reports of a run and pays again only the recipients whose payment failed",
	Run: func(cmd *cobra.Command, args []string) {
		runId, _ := cmd.Flags().GetString(RUN_ID_FLAG)
		if runId == "" {
			slog.Error("run id is required", "flag", RUN_ID_FLAG)
			os.Exit(common.EXIT_INVALID_ARGS)
		}

		engines := assertRunWithResult(func() (*ConfigurationAndEngines, error) {
			return loadConfigurationAndEngines(cmd.Context())
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE)
		config := engines.Configuration

		reports := assertRunWithResultAndErrorMessage(func() ([]common.PayoutReport, error) {
			reporter, closeReporter, err := loadReporter(cmd.Context(), config, false, false)
			if err != nil {
				return nil, err
			}
			defer closeReporter()
			return loadRunReports(cmd.Context(), reporter, runId)
		}, common.EXIT_PAYOUT_REPORTS_READ_FAILURE, "failed to read payout reports", "run_id", runId)

		failed := common.FailedReportsToRecipients(reports)
		if len(failed) == 0 {
			slog.Info("nothing to retry, all recipients of the run were paid", "run_id", runId, "phase", "result")
			engines.Close()
			return
		}

		confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)
		skipBalanceCheck, _ := cmd.Flags().GetBool(SKIP_BALANCE_CHECK_FLAG)
		silent, _ := cmd.Flags().GetBool(SILENT_FLAG)
		notificator, _ := cmd.Flags().GetString(NOTIFICATOR_FLAG)

		exitCode := runPayroll(engines, payrollRunOptions{
			Title:            "Recipients to Retry",
			RunId:            runId,
			Recipients:       failed,
			PreviousReports:  reports,
			Confirmed:        confirmed,
			SkipBalanceCheck: skipBalanceCheck,
			Silent:           silent,
			Notificator:      notificator,
		})
		engines.Close()
		exitWith(exitCode)
	},
}

func init() {
	retryCmd.Flags().String(RUN_ID_FLAG, "", "run to retry")
	retryCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms the retry")
	retryCmd.Flags().Bool(SKIP_BALANCE_CHECK_FLAG, false, "skips source account balance check")
	retryCmd.Flags().BoolP(SILENT_FLAG, "s", false, "suppresses notifications")
	retryCmd.Flags().String(NOTIFICATOR_FLAG, "", "notify through specific notificator")

	RootCmd.AddCommand(retryCmd)
}
