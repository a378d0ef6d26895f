package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *common.RunSummary {
	return &common.RunSummary{
		RunId:           "run-1",
		Network:         "testnet",
		TotalRecipients: 3,
		PaidRecipients:  2,
		PaidTotals: map[string]string{
			"XLM":  "30.0000000",
			"USDC": "1200.5000000",
		},
		TransactionIds: []string{"a", "b"},
		OverallSuccess: false,
	}
}

func TestPopulateMessageTemplate(t *testing.T) {
	assert.Equal(t,
		"Payroll run run-1 paid 2 of 3 recipients a total of 1200.5000000 USDC, 30.0000000 XLM on testnet.",
		PopulateMessageTemplate(DEFAULT_MESSAGE_TEMPLATE, sampleSummary()))
	assert.Equal(t, "a, b / false / <Unknown>", PopulateMessageTemplate("<TransactionIds> / <OverallSuccess> / <Unknown>", sampleSummary()))
}

func TestFormatTotalsStripsIssuer(t *testing.T) {
	assert.Equal(t, "5.0000000 GOLD", formatTotals(map[string]string{"GOLD:GABC": "5.0000000"}))
	assert.Equal(t, "", formatTotals(nil))
}

func TestWebhookNotificator(t *testing.T) {
	received := make(chan WebhookPayload, 3)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		payload := WebhookPayload{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- payload
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	configuration, _ := json.Marshal(map[string]string{"type": "webhook", "url": server.URL, "auth": "bearer", "token": "secret"})
	require.NoError(t, ValidateWebhookConfiguration(configuration))
	notificator, err := LoadNotificatior(enums.NOTIFICATOR_WEBHOOK, configuration)
	require.NoError(t, err)

	require.NoError(t, notificator.PayrollSummaryNotify(sampleSummary()))
	payload := <-received
	assert.Equal(t, enums.PAYROLL_NOTIFICATION, payload.Kind)
	assert.Equal(t, sampleSummary(), payload.Summary)

	require.NoError(t, notificator.AdminNotify("run terminated"))
	payload = <-received
	assert.Equal(t, enums.ADMIN_NOTIFICATION, payload.Kind)
	assert.Equal(t, "run terminated", payload.Message)

	require.NoError(t, notificator.TestNotify())
	payload = <-received
	assert.True(t, strings.HasPrefix(payload.Message, "Notification test from lumepay"))

	configuration, _ = json.Marshal(map[string]string{"type": "webhook", "url": server.URL, "auth": "bearer", "token": "wrong"})
	notificator, err = LoadNotificatior(enums.NOTIFICATOR_WEBHOOK, configuration)
	require.NoError(t, err)
	assert.EqualError(t, notificator.AdminNotify("x"), "failed to make request, status code: 401")
}

func TestValidateNotificatorConfiguration(t *testing.T) {
	cases := []struct {
		kind          enums.ENotificatorKind
		configuration string
		valid         bool
	}{
		{enums.NOTIFICATOR_WEBHOOK, `{"url": "https://example.com/hook"}`, true},
		{enums.NOTIFICATOR_WEBHOOK, `{"url": ""}`, false},
		{enums.NOTIFICATOR_WEBHOOK, `{"url": "https://example.com/hook", "auth": "bearer"}`, false},
		{enums.NOTIFICATOR_TELEGRAM, `{"api_token": "123:abc", "receivers": [42]}`, true},
		{enums.NOTIFICATOR_TELEGRAM, `{"api_token": "123:abc"}`, false},
		{enums.NOTIFICATOR_DISCORD, `{"webhook_id": "1", "webhook_token": "t"}`, true},
		{enums.NOTIFICATOR_DISCORD, `{"webhook_url": "https://example.com"}`, false},
		{enums.NOTIFICATOR_DISCORD, `{"webhook_id": "1"}`, false},
		{enums.NOTIFICATOR_EMAIL, `{"sender": "payroll@example.com", "smtp_server": "smtp.example.com:587", "recipients": ["cfo@example.com"]}`, true},
		{enums.NOTIFICATOR_EMAIL, `{"sender": "payroll@example.com", "smtp_server": "smtp.example.com:587"}`, false},
		{"twitter", `{}`, false},
	}
	for _, c := range cases {
		err := ValidateNotificatorConfiguration(c.kind, []byte(c.configuration))
		if c.valid {
			assert.NoError(t, err, "%s %s", c.kind, c.configuration)
		} else {
			assert.Error(t, err, "%s %s", c.kind, c.configuration)
		}
	}
	assert.ErrorIs(t, ValidateNotificatorConfiguration("twitter", nil), constants.ErrUnsupportedNotificator)
}

func TestDiscordWebhookUrlParsing(t *testing.T) {
	token := strings.Repeat("a", 68)
	configuration, err := parseDiscordConfiguration([]byte(`{"webhook_url": "https://discord.com/api/webhooks/123456789012345678/` + token + `"}`))
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678", configuration.WebhookId)
	assert.Equal(t, token, configuration.WebhookToken)

	notificator, err := InitDiscordNotificator([]byte(`{"webhook_id": "1", "webhook_token": "t"}`))
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_DISCORD_MESSAGE_TEMPLATE, notificator.messageTemplate)
}

func TestEmailHost(t *testing.T) {
	assert.Equal(t, "smtp.example.com", hostOf("smtp.example.com:587"))
	assert.Equal(t, "smtp.example.com", hostOf("smtp.example.com"))
}
