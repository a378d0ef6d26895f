package cmd

import (
	"log/slog"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/notifications"
	"github.com/spf13/cobra"
)

var notificationTestCmd = &cobra.Command{
	Use:   "test-notify",
	Short: "notification test",
	Long:  "sends test notification",
	Run: func(cmd *cobra.Command, args []string) {
		config := assertRunWithResult(configuration.Load, common.EXIT_CONFIGURATION_LOAD_FAILURE)
		notificator, _ := cmd.Flags().GetString(NOTIFICATOR_FLAG)
		for _, notificatorConfiguration := range config.NotificationConfigurations {
			if notificator != "" && string(notificatorConfiguration.Type) != notificator {
				continue
			}

			slog.Info("sending test notification", "notificator", notificatorConfiguration.Type, "admin", notificatorConfiguration.IsAdmin)
			notificator, err := notifications.LoadNotificatior(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
			if err != nil {
				slog.Warn("failed to send notification", "error", err.Error())
				continue
			}

			if err = notificator.TestNotify(); err != nil {
				slog.Warn("failed to send notification", "error", err.Error())
				continue
			}
		}
	},
}

func init() {
	notificationTestCmd.Flags().String(NOTIFICATOR_FLAG, "", "notify through specific notificator")

	RootCmd.AddCommand(notificationTestCmd)
}
