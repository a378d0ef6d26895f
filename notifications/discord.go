package notifications

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

type discordNotificatorConfiguration struct {
	Type            string `json:"type"`
	MessageTemplate string `json:"message_template"`
	WebhookUrl      string `json:"webhook_url"`
	WebhookId       string `json:"webhook_id"`
	WebhookToken    string `json:"webhook_token"`
}

type DiscordNotificator struct {
	session         *discordgo.Session
	messageTemplate string
	token           string
	id              string
}

const (
	DEFAULT_DISCORD_MESSAGE_TEMPLATE = "Payroll run <RunId>"
	// https://github.com/discordjs/discord.js/blob/aec44a0c93f620b22242f35e626d817e831fc8cb/packages/discord.js/src/util/Util.js#L517
	DISCORD_WEBHOOK_REGEX = `https?:\/\/(?:ptb\.|canary\.)?discord\.com\/api(?:\/v\d{1,2})?\/webhooks\/(\d{17,19})\/([\w-]{68})`

	discordSuccessColor = 261239
	discordFailureColor = 15158332
)

var discordWebhookRegex = regexp.MustCompile(DISCORD_WEBHOOK_REGEX)

func parseDiscordConfiguration(configurationBytes []byte) (*discordNotificatorConfiguration, error) {
	configuration := discordNotificatorConfiguration{}
	if err := json.Unmarshal(configurationBytes, &configuration); err != nil {
		return nil, err
	}
	if configuration.WebhookUrl != "" {
		matched := discordWebhookRegex.FindStringSubmatch(configuration.WebhookUrl)
		if len(matched) <= 2 {
			return nil, errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("failed to parse discord webhook"))
		}
		configuration.WebhookId = matched[1]
		configuration.WebhookToken = matched[2]
	}
	if configuration.WebhookId == "" {
		return nil, errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid discord webhook id"))
	}
	if configuration.WebhookToken == "" {
		return nil, errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid discord webhook token"))
	}
	return &configuration, nil
}

func InitDiscordNotificator(configurationBytes []byte) (*DiscordNotificator, error) {
	configuration, err := parseDiscordConfiguration(configurationBytes)
	if err != nil {
		return nil, err
	}
	msgTemplate := configuration.MessageTemplate
	if msgTemplate == "" {
		msgTemplate = DEFAULT_DISCORD_MESSAGE_TEMPLATE
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, err
	}

	slog.Debug("discord notificator initialized")

	return &DiscordNotificator{
		session:         session,
		messageTemplate: msgTemplate,
		id:              configuration.WebhookId,
		token:           configuration.WebhookToken,
	}, nil
}

func ValidateDiscordConfiguration(configurationBytes []byte) error {
	_, err := parseDiscordConfiguration(configurationBytes)
	return err
}

func footer() *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf(`%s v%s`, constants.CODENAME, constants.VERSION),
	}
}

func summaryEmbed(title string, summary *common.RunSummary) *discordgo.MessageEmbed {
	color := discordSuccessColor
	if !summary.OverallSuccess {
		color = discordFailureColor
	}
	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     color,
		Footer:    footer(),
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Paid", Value: formatTotals(summary.PaidTotals)},
			{Name: "Recipients", Value: fmt.Sprintf("%d of %d", summary.PaidRecipients, summary.TotalRecipients)},
			{Name: "Failed Batches", Value: fmt.Sprintf("%d of %d", summary.FailedBatches, summary.TotalBatches)},
			{Name: "Network", Value: summary.Network},
		},
	}
}

func (dn *DiscordNotificator) PayrollSummaryNotify(summary *common.RunSummary) error {
	_, err := dn.session.WebhookExecute(dn.id, dn.token, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{summaryEmbed(PopulateMessageTemplate(dn.messageTemplate, summary), summary)},
	})
	return err
}

func (dn *DiscordNotificator) AdminNotify(msg string) error {
	_, err := dn.session.WebhookExecute(dn.id, dn.token, true, &discordgo.WebhookParams{
		Content: msg,
	})
	return err
}

func (dn *DiscordNotificator) TestNotify() error {
	_, err := dn.session.WebhookExecute(dn.id, dn.token, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{summaryEmbed("Test Payroll Report", &common.RunSummary{
			RunId:          "test",
			Network:        "test",
			OverallSuccess: true,
			PaidTotals:     map[string]string{"XLM": "0.0000000"},
		})},
	})
	return err
}
