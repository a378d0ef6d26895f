package signer_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/lumepay/lumepay/state"
)

// Load creates the signer from configuration. kind overrides the configured
// mode, it also accepts "key:<secret seed>" and "remote:<url>".
func Load(ctx context.Context, kind string, config configuration.RuntimeSignerConfiguration) (common.SignerEngine, error) {
	if kind == "" {
		kind = string(config.Mode)
	}

	switch enums.ESignerMode(kind) {
	case enums.SIGNER_MODE_LOCAL_PRIVATE_KEY:
		slog.Debug("creating InMemorySigner")
		privateKeyFile := state.Global.GetPrivateKeyFilePath(config.KeyFile)
		slog.Debug("loading private key", "path", privateKeyFile)
		keyBytes, err := os.ReadFile(privateKeyFile)
		if err != nil {
			return nil, errors.Join(constants.ErrSignerLoadFailed, err)
		}
		return InitInMemorySigner(strings.TrimSpace(string(keyBytes)))
	case enums.SIGNER_MODE_REMOTE:
		slog.Debug("creating RemoteSigner", "url", config.RemoteUrl)
		return InitRemoteSignerFromSpecs(RemoteSignerSpecs{Url: config.RemoteUrl, Token: config.RemoteToken})
	case enums.SIGNER_MODE_WALLET_BRIDGE:
		slog.Debug("creating WalletBridgeSigner", "listen", config.BridgeListen)
		return InitWalletBridgeSigner(config.BridgeListen)
	case enums.SIGNER_MODE_PROMPT:
		slog.Debug("creating PromptSigner")
		return InitPromptSigner(), nil
	case enums.SIGNER_MODE_GCP_KMS:
		slog.Debug("creating GCSigner", "key", config.KmsKey)
		return InitGCSigner(ctx, config.KmsKey, config.CredentialsFile)
	}

	if strings.HasPrefix(kind, "key:") {
		slog.Debug("creating InMemorySigner from parameters")
		return InitInMemorySigner(strings.TrimPrefix(kind, "key:"))
	}

	if strings.HasPrefix(kind, "remote:") {
		slog.Debug("creating RemoteSigner from parameters")
		return InitRemoteSigner(strings.TrimPrefix(kind, "remote:"), config.RemoteToken)
	}

	return nil, errors.Join(constants.ErrSignerLoadFailed, fmt.Errorf("invalid signer: '%s'", kind))
}
