package cmd

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/core/validate"
	"github.com/spf13/cobra"
)

var payCmd = &cobra.Command{
	Use:   "pay [recipients.csv]",
	Short: "pays recipients",
	Long: `pays every recipient of the csv file (columns: address, amount, asset, memo, name)
in transactions of at most 100 payments, each signed by the configured signer`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engines := assertRunWithResult(func() (*ConfigurationAndEngines, error) {
			return loadConfigurationAndEngines(cmd.Context())
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE)
		config := engines.Configuration

		fromFile, _ := cmd.Flags().GetString(FROM_FILE_FLAG)
		fromStdin, _ := cmd.Flags().GetBool(FROM_STDIN_FLAG)
		if fromFile == "" && len(args) > 0 {
			fromFile = args[0]
		}
		recipients := assertRunWithResultAndErrorMessage(func() ([]common.PaymentRecipient, error) {
			return loadRecipients(fromFile, fromStdin)
		}, common.EXIT_RECIPIENTS_READ_FAILURE, "failed to load recipients")

		if validationResult := validate.ValidateRecipients(recipients, config.Assets); !validationResult.Valid {
			printValidationFailure(validationResult)
			engines.Close()
			os.Exit(common.EXIT_RECIPIENTS_INVALID)
		}

		confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)
		isDryRun, _ := cmd.Flags().GetBool(DRY_RUN_FLAG)
		checkDestinations, _ := cmd.Flags().GetBool(CHECK_DESTINATIONS_FLAG)
		skipBalanceCheck, _ := cmd.Flags().GetBool(SKIP_BALANCE_CHECK_FLAG)
		reportToStdout, _ := cmd.Flags().GetBool(REPORT_TO_STDOUT)
		silent, _ := cmd.Flags().GetBool(SILENT_FLAG)
		notificator, _ := cmd.Flags().GetString(NOTIFICATOR_FLAG)
		runId, _ := cmd.Flags().GetString(RUN_ID_FLAG)

		exitCode := runPayroll(engines, payrollRunOptions{
			Title:             "Recipients",
			RunId:             runId,
			Recipients:        recipients,
			DryRun:            isDryRun,
			Confirmed:         confirmed,
			CheckDestinations: checkDestinations || config.PayoutConfiguration.CheckDestinations,
			SkipBalanceCheck:  skipBalanceCheck,
			ReportToStdout:    reportToStdout,
			Silent:            silent,
			Notificator:       notificator,
		})
		engines.Close()
		slog.Debug("pay finished", "exit_code", exitCode)
		exitWith(exitCode)
	},
}

func init() {
	payCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms the run")
	payCmd.Flags().String(FROM_FILE_FLAG, "", "loads recipients from csv file")
	payCmd.Flags().Bool(FROM_STDIN_FLAG, false, "loads recipients csv from stdin")
	payCmd.Flags().String(RUN_ID_FLAG, "", "run id to record payouts under (generated when empty)")
	payCmd.Flags().Bool(CHECK_DESTINATIONS_FLAG, false, "checks destination accounts exist and hold trustlines before paying")
	payCmd.Flags().Bool(SKIP_BALANCE_CHECK_FLAG, false, "skips source account balance check")
	payCmd.Flags().Bool(REPORT_TO_STDOUT, false, "prints reports to stdout (wont write to configured reporters)")
	payCmd.Flags().BoolP(SILENT_FLAG, "s", false, "suppresses notifications")
	payCmd.Flags().String(NOTIFICATOR_FLAG, "", "notify through specific notificator")
	payCmd.Flags().Bool(DRY_RUN_FLAG, false, "builds transactions without signing and submitting them. Reports are stored separately (e.g. 'reports/dry')")

	RootCmd.AddCommand(payCmd)
}
