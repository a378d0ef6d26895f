package common

import (
	"strings"

	"github.com/stellar/go/amount"
)

// PaymentRecipient is one intended payment of a payroll run.
type PaymentRecipient struct {
	Address      string `json:"address" csv:"address"`
	Amount       string `json:"amount" csv:"amount"`
	AssetCode    string `json:"asset_code" csv:"asset"`
	Memo         string `json:"memo,omitempty" csv:"memo"`
	EmployeeName string `json:"employee_name,omitempty" csv:"name"`
}

func (r *PaymentRecipient) GetDisplayName() string {
	if name := strings.TrimSpace(r.EmployeeName); name != "" {
		return name
	}
	return r.Address
}

// GetAmountStroops parses the decimal amount into stroops (7 decimals)
func (r *PaymentRecipient) GetAmountStroops() (int64, error) {
	return amount.ParseInt64(strings.TrimSpace(r.Amount))
}

func (r *PaymentRecipient) ToTableRowData() []string {
	return []string{
		r.EmployeeName,
		ShortenAddress(r.Address),
		r.Amount,
		r.AssetCode,
		r.Memo,
	}
}

func (r *PaymentRecipient) GetTableHeaders() []string {
	return []string{
		"Name",
		"Address",
		"Amount",
		"Asset",
		"Memo",
	}
}

func ShortenAddress(address string) string {
	if len(address) <= 13 {
		return address
	}
	return address[:5] + "..." + address[len(address)-5:]
}
