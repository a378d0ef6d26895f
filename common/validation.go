package common

import (
	"errors"
	"strings"

	"github.com/lumepay/lumepay/constants"
)

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (vr *ValidationResult) ToError() error {
	if vr == nil || vr.Valid {
		return nil
	}
	return errors.Join(constants.ErrRecipientsValidationFailed, errors.New(strings.Join(vr.Errors, "\n")))
}
