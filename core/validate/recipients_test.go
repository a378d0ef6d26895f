package validate

import (
	"fmt"
	"testing"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/test/mock"
	"github.com/stretchr/testify/assert"
)

func TestValidateRecipientsAcceptsValidList(t *testing.T) {
	recipients := mock.GenerateRecipients(5, "XLM")
	recipients[1].AssetCode = "USDC"
	recipients[2].AssetCode = "native"
	recipients[3].AssetCode = "GOLD:" + mock.GetRandomAddress()
	recipients[4].Amount = "0.0000001"

	result := ValidateRecipients(recipients, nil)
	assert.True(t, result.Valid, result.Errors)
	assert.Empty(t, result.Errors)
	assert.NoError(t, result.ToError())
}

func TestValidateRecipientsSingleInvalidAddress(t *testing.T) {
	recipients := mock.GenerateRecipients(5, "XLM")
	recipients[3].Address = "GABC"

	result := ValidateRecipients(recipients, nil)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Recipient 4 (employee 4): Invalid Stellar address"}, result.Errors)
}

func TestValidateRecipientsReportsEveryViolation(t *testing.T) {
	assert := assert.New(t)
	recipients := mock.GenerateRecipients(10, "XLM")
	recipients[0].Address = ""
	recipients[2].Amount = "-1"
	recipients[3].Amount = "abc"
	recipients[4].Amount = "0"
	recipients[5].Amount = "1.12345678"
	recipients[6].AssetCode = ""
	recipients[7].AssetCode = "DOGE"
	// secret seeds are not destinations
	recipients[8].Address = "SBZVMB74Z76QZ3ZOY7UTDFYKMEGKW5XFJEB6PFKBF4UYSSWHG4EDH7PY"
	recipients[9].EmployeeName = ""
	recipients[9].Amount = "NaN"

	result := ValidateRecipients(recipients, nil)
	assert.False(result.Valid)
	assert.Len(result.Errors, 9)
	for i, index := range []int{1, 3, 4, 5, 6, 7, 8, 9} {
		assert.Contains(result.Errors[i], fmt.Sprintf("Recipient %d (employee %d)", index, index))
	}
	assert.Equal("Recipient 7 (employee 7): Asset code is required", result.Errors[5])
	assert.Equal("Recipient 8 (employee 8): Unknown asset 'DOGE'", result.Errors[6])
	assert.Equal(fmt.Sprintf("Recipient 10 (%s): Invalid amount", recipients[9].Address), result.Errors[8])
}

func TestValidateRecipientsAccumulatesPerRecipient(t *testing.T) {
	recipients := []common.PaymentRecipient{{Address: "nope", Amount: "", AssetCode: ""}}

	result := ValidateRecipients(recipients, nil)
	assert.Equal(t, []string{
		"Recipient 1 (nope): Invalid Stellar address",
		"Recipient 1 (nope): Invalid amount",
		"Recipient 1 (nope): Asset code is required",
	}, result.Errors)
}

func TestValidateRecipientsListSize(t *testing.T) {
	result := ValidateRecipients(nil, nil)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"No recipients provided"}, result.Errors)

	result = ValidateRecipients(mock.GenerateRecipients(1001, "XLM"), nil)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Maximum 1000 recipients allowed per bulk payment"}, result.Errors)

	result = ValidateRecipients(mock.GenerateRecipients(1000, "XLM"), nil)
	assert.True(t, result.Valid)
}

func TestValidateRecipientsUsesRegistry(t *testing.T) {
	issuer := mock.GetRandomAddress()
	recipients := mock.GenerateRecipients(1, "NGNT")

	assert.False(t, ValidateRecipients(recipients, common.NewAssetRegistry(nil)).Valid)
	assert.True(t, ValidateRecipients(recipients, common.NewAssetRegistry(map[string]string{"ngnt": issuer})).Valid)
}
