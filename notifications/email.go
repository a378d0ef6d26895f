package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/nikoksr/notify/service/mail"
)

type emailNotificatorConfiguration struct {
	Type            string   `json:"type"`
	Sender          string   `json:"sender"`
	SmtpServer      string   `json:"smtp_server"`
	SmtpIdentity    string   `json:"smtp_identity"`
	SmtpUser        string   `json:"smtp_username"`
	SmtpPass        string   `json:"smtp_password"`
	Recipients      []string `json:"recipients"`
	MessageTemplate string   `json:"message_template"`
}

type EmailNotificator struct {
	session         *mail.Mail
	messageTemplate string
}

func InitEmailNotificator(configurationBytes []byte) (*EmailNotificator, error) {
	configuration := emailNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return nil, err
	}
	msgTemplate := configuration.MessageTemplate
	if msgTemplate == "" {
		msgTemplate = DEFAULT_MESSAGE_TEMPLATE
	}

	session := mail.New(configuration.Sender, configuration.SmtpServer)
	session.AddReceivers(configuration.Recipients...)
	if configuration.SmtpUser != "" {
		session.AuthenticateSMTP(configuration.SmtpIdentity, configuration.SmtpUser, configuration.SmtpPass, hostOf(configuration.SmtpServer))
	}

	slog.Debug("email notificator initialized")

	return &EmailNotificator{
		session:         session,
		messageTemplate: msgTemplate,
	}, nil
}

// smtp auth wants the host without port
func hostOf(server string) string {
	host, _, err := net.SplitHostPort(server)
	if err != nil {
		return server
	}
	return host
}

func ValidateEmailConfiguration(configurationBytes []byte) error {
	configuration := emailNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return err
	}
	if configuration.Sender == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid email sender"))
	}
	if configuration.SmtpServer == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid smtp server"))
	}
	if len(configuration.Recipients) == 0 {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("no email recipients specified"))
	}
	return nil
}

func (en *EmailNotificator) PayrollSummaryNotify(summary *common.RunSummary) error {
	return en.session.Send(context.Background(), fmt.Sprintf("Payroll report of run %s", summary.RunId), PopulateMessageTemplate(en.messageTemplate, summary))
}

func (en *EmailNotificator) AdminNotify(msg string) error {
	return en.session.Send(context.Background(), string(enums.ADMIN_NOTIFICATION), msg)
}

func (en *EmailNotificator) TestNotify() error {
	return en.session.Send(context.Background(), "test notification", testNotificationMessage())
}
