package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
)

var assetCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9]{1,12}$`)

type Asset struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer,omitempty"`
}

func NativeAsset() Asset {
	return Asset{Code: constants.NATIVE_ASSET_CODE}
}

func (a Asset) IsNative() bool {
	return a.Issuer == ""
}

// String returns "XLM" for the native asset and CODE:ISSUER otherwise
func (a Asset) String() string {
	if a.IsNative() {
		return constants.NATIVE_ASSET_CODE
	}
	return fmt.Sprintf("%s:%s", a.Code, a.Issuer)
}

func (a Asset) ToTxnbuildAsset() txnbuild.Asset {
	if a.IsNative() {
		return txnbuild.NativeAsset{}
	}
	return txnbuild.CreditAsset{Code: a.Code, Issuer: a.Issuer}
}

func IsNativeAssetId(id string) bool {
	return strings.EqualFold(id, constants.NATIVE_ASSET_CODE) || strings.EqualFold(id, constants.NATIVE_ASSET_CODE_ALIAS)
}

// AssetRegistry maps well known asset codes to their issuers.
type AssetRegistry map[string]string

func NewAssetRegistry(overrides map[string]string) AssetRegistry {
	registry := make(AssetRegistry, len(constants.DEFAULT_ASSET_ISSUERS)+len(overrides))
	for code, issuer := range constants.DEFAULT_ASSET_ISSUERS {
		registry[code] = issuer
	}
	for code, issuer := range overrides {
		registry[strings.ToUpper(code)] = issuer
	}
	return registry
}

// Resolve accepts "XLM"/"native", a registered code or an explicit CODE:ISSUER pair.
func (r AssetRegistry) Resolve(id string) (Asset, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Asset{}, constants.ErrMissingAsset
	}
	if IsNativeAssetId(id) {
		return NativeAsset(), nil
	}

	code, issuer, explicit := strings.Cut(id, ":")
	if !explicit {
		var ok bool
		code = strings.ToUpper(code)
		if issuer, ok = r[code]; !ok {
			return Asset{}, errors.Join(constants.ErrUnknownAsset, fmt.Errorf("'%s' is not a known asset code", id))
		}
	}
	if !assetCodeRegex.MatchString(code) {
		return Asset{}, errors.Join(constants.ErrUnknownAsset, fmt.Errorf("invalid asset code '%s'", code))
	}
	if _, err := strkey.Decode(strkey.VersionByteAccountID, issuer); err != nil {
		return Asset{}, errors.Join(constants.ErrUnknownAsset, fmt.Errorf("invalid issuer of asset '%s'", code))
	}
	return Asset{Code: code, Issuer: issuer}, nil
}
