package common

import (
	"errors"

	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
)

// SignResult is returned by every signer engine. Exactly one of the
// outcomes applies, signers never return an error instead.
type SignResult struct {
	Outcome   enums.ESignOutcome `json:"outcome"`
	SignedXdr string             `json:"signed_xdr,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

func NewSignedResult(signedXdr string) SignResult {
	return SignResult{Outcome: enums.SIGN_OUTCOME_SIGNED, SignedXdr: signedXdr}
}

func NewRejectedResult(reason string) SignResult {
	if reason == "" {
		reason = "User declined access"
	}
	return SignResult{Outcome: enums.SIGN_OUTCOME_REJECTED, Reason: reason}
}

func NewAgentErrorResult(reason string) SignResult {
	return SignResult{Outcome: enums.SIGN_OUTCOME_AGENT_ERROR, Reason: reason}
}

func (r SignResult) IsSigned() bool {
	return r.Outcome == enums.SIGN_OUTCOME_SIGNED
}

func (r SignResult) ToError() error {
	switch r.Outcome {
	case enums.SIGN_OUTCOME_SIGNED:
		return nil
	case enums.SIGN_OUTCOME_REJECTED:
		return errors.Join(constants.ErrSigningRejected, errors.New(r.Reason))
	default:
		if r.Reason == "" {
			return constants.ErrSigningAgentFailure
		}
		return errors.Join(constants.ErrSigningAgentFailure, errors.New(r.Reason))
	}
}
