package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/samber/lo"
)

// readRecipients parses a csv with the columns address, amount, asset, memo
// and name. Only address and amount are mandatory, asset defaults to XLM.
func readRecipients(reader io.Reader) ([]common.PaymentRecipient, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Join(constants.ErrRecipientsLoadFailed, err)
	}
	recipients := make([]common.PaymentRecipient, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return recipients, nil
	}
	if err := gocsv.UnmarshalBytes(data, &recipients); err != nil {
		return nil, errors.Join(constants.ErrRecipientsLoadFailed, err)
	}
	return lo.Map(recipients, func(recipient common.PaymentRecipient, _ int) common.PaymentRecipient {
		recipient.Address = strings.TrimSpace(recipient.Address)
		recipient.Amount = strings.TrimSpace(recipient.Amount)
		recipient.AssetCode = strings.TrimSpace(recipient.AssetCode)
		if recipient.AssetCode == "" {
			recipient.AssetCode = constants.NATIVE_ASSET_CODE
		}
		return recipient
	}), nil
}

func loadRecipientsFromFile(path string) ([]common.PaymentRecipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(constants.ErrRecipientsLoadFailed, err)
	}
	defer f.Close()
	return readRecipients(f)
}

func loadRecipientsFromStdin() ([]common.PaymentRecipient, error) {
	return readRecipients(os.Stdin)
}

func loadRecipients(fromFile string, fromStdin bool) ([]common.PaymentRecipient, error) {
	switch {
	case fromStdin:
		return loadRecipientsFromStdin()
	case fromFile != "":
		return loadRecipientsFromFile(fromFile)
	default:
		return nil, errors.Join(constants.ErrRecipientsLoadFailed, errors.New("no recipients source, use --from-file or --from-stdin"))
	}
}
