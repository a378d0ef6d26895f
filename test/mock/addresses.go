package mock

import (
	"fmt"

	"github.com/lumepay/lumepay/common"
	"github.com/stellar/go/keypair"
)

func GetRandomAddress() string {
	return keypair.MustRandom().Address()
}

// GenerateRecipients creates n valid recipients paid in assetCode
func GenerateRecipients(n int, assetCode string) []common.PaymentRecipient {
	recipients := make([]common.PaymentRecipient, 0, n)
	for i := 0; i < n; i++ {
		recipients = append(recipients, common.PaymentRecipient{
			Address:      GetRandomAddress(),
			Amount:       fmt.Sprintf("%d.25", i+1),
			AssetCode:    assetCode,
			EmployeeName: fmt.Sprintf("employee %d", i+1),
		})
	}
	return recipients
}
