package cmd

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	lumepay_configuration "github.com/lumepay/lumepay/configuration/v"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/lumepay/lumepay/state"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/stellar/go/strkey"
)

const NETWORK_FLAG = "network"

var initCmd = &cobra.Command{
	Use:   "init <source account>",
	Short: "creates configuration",
	Long:  "writes a default config.hjson for the source account into the working directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sourceAccount := args[0]
		if !strkey.IsValidEd25519PublicKey(sourceAccount) {
			slog.Error("invalid source account", "source_account", sourceAccount)
			os.Exit(common.EXIT_INVALID_ARGS)
		}
		networkName, _ := cmd.Flags().GetString(NETWORK_FLAG)
		if !lo.Contains(enums.SUPPORTED_NETWORKS, enums.ENetwork(networkName)) {
			slog.Error("unsupported network", "network", networkName, "supported", enums.SUPPORTED_NETWORKS)
			os.Exit(common.EXIT_INVALID_ARGS)
		}

		configurationFilePath := state.Global.GetConfigurationFilePath()
		force, _ := cmd.Flags().GetBool(FORCE_FLAG)
		if _, err := os.Stat(configurationFilePath); err == nil && !force {
			slog.Error("configuration already exists, use --force to overwrite it", "path", configurationFilePath)
			os.Exit(common.EXIT_CONFIGURATION_GENERATE_FAILURE)
		}

		generated := lumepay_configuration.GetDefaultV0()
		generated.SourceAccount = sourceAccount
		generated.Network.Name = enums.ENetwork(networkName)
		assertRunWithErrorMessage(func() error {
			return configuration.WriteConfiguration(configurationFilePath, generated)
		}, common.EXIT_CONFIGURATION_SAVE_FAILURE, "failed to write configuration", "path", configurationFilePath)
		slog.Info("configuration created", "path", configurationFilePath)
	},
}

func init() {
	initCmd.Flags().String(NETWORK_FLAG, string(enums.NETWORK_MAINNET), "network to pay on (mainnet/testnet)")
	initCmd.Flags().Bool(FORCE_FLAG, false, "overwrites existing configuration")
	RootCmd.AddCommand(initCmd)
}
