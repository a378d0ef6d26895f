package signer_engines

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lumepay/lumepay/common"
)

type promptAsker func(unsignedXdr string, networkPassphrase string) (signedXdr string, rejected bool, err error)

// PromptSigner prints the transaction and waits for the operator to paste it
// back signed by their wallet
type PromptSigner struct {
	ask promptAsker
}

func InitPromptSigner() *PromptSigner {
	return &PromptSigner{
		ask: askOnTerminal,
	}
}

func askOnTerminal(unsignedXdr string, networkPassphrase string) (string, bool, error) {
	fmt.Printf("\nSign the following transaction with your wallet (%s):\n\n%s\n\n", networkPassphrase, unsignedXdr)
	provide := false
	if err := survey.AskOne(&survey.Confirm{
		Message: "Do you want to provide the signed transaction? (no rejects it)",
		Default: true,
	}, &provide); err != nil {
		return "", false, err
	}
	if !provide {
		return "", true, nil
	}

	signed := ""
	err := survey.AskOne(&survey.Multiline{
		Message: "Signed transaction (base64 XDR):",
	}, &signed, survey.WithValidator(survey.Required))
	return strings.Join(strings.Fields(signed), ""), false, err
}

func (s *PromptSigner) GetId() string {
	return "PromptSigner"
}

func (s *PromptSigner) Sign(ctx context.Context, unsignedXdr string, networkPassphrase string) common.SignResult {
	if err := ctx.Err(); err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	signed, rejected, err := s.ask(unsignedXdr, networkPassphrase)
	switch {
	case err != nil:
		return common.NewAgentErrorResult(err.Error())
	case rejected:
		return common.NewRejectedResult("")
	case signed == "":
		return common.NewAgentErrorResult("no signed transaction provided")
	default:
		return common.NewSignedResult(signed)
	}
}
