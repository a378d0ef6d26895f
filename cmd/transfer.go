package cmd

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/core/validate"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <destination> <amount>",
	Short: "pays a single recipient",
	Long:  "transfers the amount of the asset (XLM by default) from the source account to the destination",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		engines := assertRunWithResult(func() (*ConfigurationAndEngines, error) {
			return loadConfigurationAndEngines(cmd.Context())
		}, common.EXIT_CONFIGURATION_LOAD_FAILURE)

		assetCode, _ := cmd.Flags().GetString(ASSET_FLAG)
		memo, _ := cmd.Flags().GetString(MEMO_FLAG)
		name, _ := cmd.Flags().GetString(NAME_FLAG)
		recipients := []common.PaymentRecipient{{
			Address:      args[0],
			Amount:       args[1],
			AssetCode:    assetCode,
			Memo:         memo,
			EmployeeName: name,
		}}
		if validationResult := validate.ValidateRecipients(recipients, engines.Configuration.Assets); !validationResult.Valid {
			printValidationFailure(validationResult)
			engines.Close()
			os.Exit(common.EXIT_INVALID_ARGS)
		}

		engines.UseRecipientMemo()

		confirmed, _ := cmd.Flags().GetBool(CONFIRM_FLAG)
		exitCode := runPayroll(engines, payrollRunOptions{
			Title:             "Transfer",
			Recipients:        recipients,
			Confirmed:         confirmed,
			CheckDestinations: true,
			Silent:            true,
		})
		engines.Close()
		if exitCode == common.EXIT_SUCCESS {
			slog.Info("transfer successful")
		}
		exitWith(exitCode)
	},
}

func init() {
	transferCmd.Flags().String(ASSET_FLAG, constants.NATIVE_ASSET_CODE, "asset code (XLM, a known code like USDC or CODE:ISSUER)")
	transferCmd.Flags().String(MEMO_FLAG, constants.DEFAULT_SINGLE_PAYMENT_MEMO, "memo text (at most 28 bytes)")
	transferCmd.Flags().String(NAME_FLAG, "", "recipient name recorded in reports")
	transferCmd.Flags().Bool(CONFIRM_FLAG, false, "automatically confirms transfer")
	RootCmd.AddCommand(transferCmd)
}
