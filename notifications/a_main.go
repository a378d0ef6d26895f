package notifications

import (
	"errors"
	"fmt"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
)

const (
	DEFAULT_MESSAGE_TEMPLATE = "Payroll run <RunId> paid <PaidRecipients> of <TotalRecipients> recipients a total of <PaidTotals> on <Network>."
)

func LoadNotificatior(kind enums.ENotificatorKind, configuration []byte) (common.NotificatorEngine, error) {
	switch kind {
	case enums.NOTIFICATOR_WEBHOOK:
		return InitWebhookNotificator(configuration)
	case enums.NOTIFICATOR_TELEGRAM:
		return InitTelegramNotificator(configuration)
	case enums.NOTIFICATOR_DISCORD:
		return InitDiscordNotificator(configuration)
	case enums.NOTIFICATOR_EMAIL:
		return InitEmailNotificator(configuration)
	default:
		return nil, errors.Join(constants.ErrUnsupportedNotificator, fmt.Errorf("not supported notificator %s", kind))
	}
}

func ValidateNotificatorConfiguration(kind enums.ENotificatorKind, configuration []byte) error {
	switch kind {
	case enums.NOTIFICATOR_WEBHOOK:
		return ValidateWebhookConfiguration(configuration)
	case enums.NOTIFICATOR_TELEGRAM:
		return ValidateTelegramConfiguration(configuration)
	case enums.NOTIFICATOR_DISCORD:
		return ValidateDiscordConfiguration(configuration)
	case enums.NOTIFICATOR_EMAIL:
		return ValidateEmailConfiguration(configuration)
	default:
		return errors.Join(constants.ErrUnsupportedNotificator, fmt.Errorf("not supported notificator %s", kind))
	}
}
