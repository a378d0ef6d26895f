package cmd

import (
	"log/slog"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/core/estimate"
	"github.com/lumepay/lumepay/state"
	"github.com/lumepay/lumepay/utils"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [recipients.csv]",
	Short: "estimates cost of a run",
	Long:  "prints totals per asset, number of transactions and fees of paying the recipients, nothing is sent",
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

		baseFee, _ := cmd.Flags().GetInt64(BASE_FEE_FLAG)
		if baseFee <= 0 {
			baseFee = config.PayoutConfiguration.BaseFee
		}
		costEstimate := assertRunWithResultAndErrorMessage(func() (*common.CostEstimate, error) {
			return estimate.CalculateBulkPaymentCost(recipients, &common.EstimateCostOptions{
				MaxOperationsPerTx: config.PayoutConfiguration.MaxOperationsPerTx,
				BaseFeeStroops:     baseFee,
				Assets:             config.Assets,
			})
		}, common.EXIT_RECIPIENTS_INVALID, "failed to estimate run cost")

		if state.Global.GetWantsOutputJson() {
			slog.Info("estimate", constants.LOG_FIELD_ESTIMATE, costEstimate, "phase", "result")
			return
		}
		utils.PrintCostEstimate(costEstimate, "Estimate")
	},
}

func init() {
	estimateCmd.Flags().String(FROM_FILE_FLAG, "", "loads recipients from csv file")
	estimateCmd.Flags().Bool(FROM_STDIN_FLAG, false, "loads recipients csv from stdin")
	estimateCmd.Flags().Int64(BASE_FEE_FLAG, 0, "base fee per operation in stroops (configured value when not set)")
	RootCmd.AddCommand(estimateCmd)
}
