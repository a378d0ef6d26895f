package cmd

import (
	"log/slog"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/notifications"
)

func notifyPayrollProcessed(configuration *configuration.RuntimeConfiguration, summary *common.RunSummary, filter string) {
	for _, notificatorConfiguration := range configuration.NotificationConfigurations {
		if filter != "" && string(notificatorConfiguration.Type) != filter {
			continue
		}
		if notificatorConfiguration.IsAdmin {
			continue
		}

		slog.Info("sending notification", "notificator", notificatorConfiguration.Type, "phase", "notifications")
		notificator, err := notifications.LoadNotificatior(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
		if err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}

		if err = notificator.PayrollSummaryNotify(summary); err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}
	}
	slog.Info("notifications sent", "phase", "notifications")
}

func notifyPayrollProcessedThroughAllNotificators(configuration *configuration.RuntimeConfiguration, summary *common.RunSummary) {
	notifyPayrollProcessed(configuration, summary, "")
}

func notifyAdmin(configuration *configuration.RuntimeConfiguration, msg string) {
	for _, notificatorConfiguration := range configuration.GetAdminNotificators() {
		slog.Info("sending admin notification", "notificator", notificatorConfiguration.Type)
		notificator, err := notifications.LoadNotificatior(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
		if err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}

		if err = notificator.AdminNotify(msg); err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}
	}
	slog.Debug("admin notifications sent")
}

func notifyAdminFactory(configuration *configuration.RuntimeConfiguration) func(string) {
	return func(msg string) {
		notifyAdmin(configuration, msg)
	}
}
