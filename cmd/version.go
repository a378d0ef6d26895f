package cmd

import (
	"fmt"

	"github.com/lumepay/lumepay/constants"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints lumepay version",
	Long:  "prints lumepay version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(constants.VERSION)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
