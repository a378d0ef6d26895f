package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
)

type webhookAuthorization string

const (
	WebhookAuthNone   webhookAuthorization = "none"
	WebhookAuthBearer webhookAuthorization = "bearer"
)

type webhookNotificatorConfiguration struct {
	Type  string               `json:"type"`
	Url   string               `json:"url"`
	Token string               `json:"token"`
	Auth  webhookAuthorization `json:"auth"`
}

type WebhookNotificator struct {
	url    string
	token  string
	auth   webhookAuthorization
	client *http.Client
}

type WebhookPayload struct {
	Kind    enums.ENotificationType `json:"kind"`
	Summary *common.RunSummary      `json:"summary,omitempty"`
	Message string                  `json:"message,omitempty"`
}

func InitWebhookNotificator(configurationBytes []byte) (*WebhookNotificator, error) {
	configuration := webhookNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return nil, err
	}

	slog.Debug("webhook notificator initialized")

	return &WebhookNotificator{
		url:    configuration.Url,
		token:  configuration.Token,
		auth:   configuration.Auth,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func ValidateWebhookConfiguration(configurationBytes []byte) error {
	configuration := webhookNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return err
	}
	if configuration.Url == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid url"))
	}
	_, err = url.ParseRequestURI(configuration.Url)
	if err != nil {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid url"))
	}
	if configuration.Auth == WebhookAuthBearer && configuration.Token == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid bearer token"))
	}
	return nil
}

func (wn *WebhookNotificator) post(data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, wn.url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if wn.auth == WebhookAuthBearer {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", wn.token))
	}

	resp, err := wn.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to make request, status code: %d", resp.StatusCode)
	}
	return nil
}

func (wn *WebhookNotificator) PayrollSummaryNotify(summary *common.RunSummary) error {
	return wn.post(WebhookPayload{Kind: enums.PAYROLL_NOTIFICATION, Summary: summary})
}

func (wn *WebhookNotificator) AdminNotify(msg string) error {
	return wn.post(WebhookPayload{Kind: enums.ADMIN_NOTIFICATION, Message: msg})
}

func (wn *WebhookNotificator) TestNotify() error {
	return wn.post(WebhookPayload{Kind: enums.PAYROLL_NOTIFICATION, Summary: &common.RunSummary{}, Message: testNotificationMessage()})
}
