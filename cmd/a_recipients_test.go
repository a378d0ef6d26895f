package cmd

import (
	"strings"
	"testing"

	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/test/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecipients(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	first, second := mock.GetRandomAddress(), mock.GetRandomAddress()
	csv := "address,amount,asset,memo,name\n" +
		first + ", 100.5 ,USDC,March,Alice\n" +
		second + ",20,,,\n"

	recipients, err := readRecipients(strings.NewReader(csv))
	require.NoError(err)
	require.Len(recipients, 2)

	assert.Equal(first, recipients[0].Address)
	assert.Equal("100.5", recipients[0].Amount)
	assert.Equal("USDC", recipients[0].AssetCode)
	assert.Equal("March", recipients[0].Memo)
	assert.Equal("Alice", recipients[0].EmployeeName)

	assert.Equal(second, recipients[1].Address)
	assert.Equal(constants.NATIVE_ASSET_CODE, recipients[1].AssetCode)
	assert.Empty(recipients[1].EmployeeName)
}

func TestReadRecipientsEmpty(t *testing.T) {
	recipients, err := readRecipients(strings.NewReader("  \n"))
	assert.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestLoadRecipientsRequiresSource(t *testing.T) {
	_, err := loadRecipients("", false)
	assert.ErrorIs(t, err, constants.ErrRecipientsLoadFailed)
}

func TestIsNewerVersion(t *testing.T) {
	assert := assert.New(t)

	newer, err := isNewerVersion("v0.2.0", "0.1.0-dev")
	assert.NoError(err)
	assert.True(newer)

	newer, err = isNewerVersion("0.1.0", "0.1.0")
	assert.NoError(err)
	assert.False(newer)

	_, err = isNewerVersion("latest", "0.1.0")
	assert.Error(err)
}
