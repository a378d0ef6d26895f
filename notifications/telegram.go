package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/nikoksr/notify/service/telegram"
)

type telegramNotificatorConfiguration struct {
	Type            string  `json:"type"`
	Token           string  `json:"api_token"`
	Receivers       []int64 `json:"receivers"`
	MessageTemplate string  `json:"message_template"`
}

type TelegramNotificator struct {
	session         *telegram.Telegram
	messageTemplate string
}

func InitTelegramNotificator(configurationBytes []byte) (*TelegramNotificator, error) {
	configuration := telegramNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return nil, err
	}
	msgTemplate := configuration.MessageTemplate
	if msgTemplate == "" {
		msgTemplate = DEFAULT_MESSAGE_TEMPLATE
	}

	session, err := telegram.New(configuration.Token)
	if err != nil {
		return nil, err
	}
	session.AddReceivers(configuration.Receivers...)

	slog.Debug("telegram notificator initialized")

	return &TelegramNotificator{
		session:         session,
		messageTemplate: msgTemplate,
	}, nil
}

func ValidateTelegramConfiguration(configurationBytes []byte) error {
	configuration := telegramNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return err
	}
	if configuration.Token == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid telegram api token"))
	}
	if len(configuration.Receivers) == 0 {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("no telegram receivers specified"))
	}
	return nil
}

func (tn *TelegramNotificator) PayrollSummaryNotify(summary *common.RunSummary) error {
	return tn.session.Send(context.Background(), fmt.Sprintf("Payroll summary of run %s", summary.RunId), PopulateMessageTemplate(tn.messageTemplate, summary))
}

func (tn *TelegramNotificator) AdminNotify(msg string) error {
	return tn.session.Send(context.Background(), string(enums.ADMIN_NOTIFICATION), msg)
}

func (tn *TelegramNotificator) TestNotify() error {
	return tn.session.Send(context.Background(), "test notification", testNotificationMessage())
}
