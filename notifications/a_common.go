package notifications

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

// formatTotals renders "1200.5000000 USDC, 30.0000000 XLM", assets sorted
func formatTotals(totals map[string]string) string {
	assets := make([]string, 0, len(totals))
	for asset := range totals {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	parts := make([]string, 0, len(assets))
	for _, asset := range assets {
		code, _, _ := strings.Cut(asset, ":")
		parts = append(parts, fmt.Sprintf("%s %s", totals[asset], code))
	}
	return strings.Join(parts, ", ")
}

// PopulateMessageTemplate replaces <FieldName> with the value of the summary field
func PopulateMessageTemplate(messageTemplate string, summary *common.RunSummary) string {
	v := reflect.ValueOf(*summary)
	typeOfS := v.Type()

	for i := 0; i < v.NumField(); i++ {
		var val string
		switch field := v.Field(i).Interface().(type) {
		case map[string]string:
			val = formatTotals(field)
		case []string:
			val = strings.Join(field, ", ")
		default:
			val = fmt.Sprintf("%v", field)
		}
		messageTemplate = strings.ReplaceAll(messageTemplate, fmt.Sprintf("<%s>", typeOfS.Field(i).Name), val)
	}

	return messageTemplate
}

func testNotificationMessage() string {
	return fmt.Sprintf("Notification test from %s (%s)", constants.CODENAME, constants.VERSION)
}
