package cmd

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/core/validate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [recipients.csv]",
	Short: "validates recipients",
	Long:  "checks addresses, amounts and assets of the recipients without touching the network",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := assertRunWithResult(configuration.Load, common.EXIT_CONFIGURATION_LOAD_FAILURE)

		fromFile, _ := cmd.Flags().GetString(FROM_FILE_FLAG)
		fromStdin, _ := cmd.Flags().GetBool(FROM_STDIN_FLAG)
		if fromFile == "" && len(args) > 0 {
			fromFile = args[0]
		}
		recipients := assertRunWithResultAndErrorMessage(func() ([]common.PaymentRecipient, error) {
			return loadRecipients(fromFile, fromStdin)
		}, common.EXIT_RECIPIENTS_READ_FAILURE, "failed to load recipients")

		validationResult := validate.ValidateRecipients(recipients, config.Assets)
		if !validationResult.Valid {
			printValidationFailure(validationResult)
			os.Exit(common.EXIT_RECIPIENTS_INVALID)
		}
		slog.Info("recipients are valid", "count", len(recipients), "phase", "result")
	},
}

func init() {
	validateCmd.Flags().String(FROM_FILE_FLAG, "", "loads recipients from csv file")
	validateCmd.Flags().Bool(FROM_STDIN_FLAG, false, "loads recipients csv from stdin")
	RootCmd.AddCommand(validateCmd)
}
