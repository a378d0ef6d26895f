package cmd

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/core/preflight"
	"github.com/lumepay/lumepay/state"
	"github.com/lumepay/lumepay/utils"
	"github.com/spf13/cobra"
)

var checkDestinationsCmd = &cobra.Command{
	Use:   "check-destinations [recipients.csv]",
	Short: "checks destination accounts",
	Long:  "checks every destination account exists and holds a trustline for the asset it is paid in",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, _, transactor := assertRunWithResult(loadConfigurationAndTransactor, common.EXIT_CONFIGURATION_LOAD_FAILURE).Unwrap()

		fromFile, _ := cmd.Flags().GetString(FROM_FILE_FLAG)
		fromStdin, _ := cmd.Flags().GetBool(FROM_STDIN_FLAG)
		if fromFile == "" && len(args) > 0 {
			fromFile = args[0]
		}
		recipients := assertRunWithResultAndErrorMessage(func() ([]common.PaymentRecipient, error) {
			return loadRecipients(fromFile, fromStdin)
		}, common.EXIT_RECIPIENTS_READ_FAILURE, "failed to load recipients")

		issues := preflight.CheckDestinations(cmd.Context(), transactor, recipients, config.Assets)
		if state.Global.GetWantsOutputJson() {
			slog.Info("destinations checked", "issues", issues, "phase", "result")
		} else {
			utils.PrintDestinationIssues(issues, "Destination Issues")
		}
		if len(issues) > 0 {
			os.Exit(common.EXIT_OPERATION_FAILED)
		}
	},
}

func init() {
	checkDestinationsCmd.Flags().String(FROM_FILE_FLAG, "", "loads recipients from csv file")
	checkDestinationsCmd.Flags().Bool(FROM_STDIN_FLAG, false, "loads recipients csv from stdin")
	RootCmd.AddCommand(checkDestinationsCmd)
}
