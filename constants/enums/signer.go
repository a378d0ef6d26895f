package enums

type ESignerMode string

const (
	SIGNER_MODE_WALLET_BRIDGE     ESignerMode = "wallet-bridge"
	SIGNER_MODE_REMOTE            ESignerMode = "remote"
	SIGNER_MODE_PROMPT            ESignerMode = "prompt"
	SIGNER_MODE_LOCAL_PRIVATE_KEY ESignerMode = "local-private-key"
	SIGNER_MODE_GCP_KMS           ESignerMode = "gcp-kms"
)

var (
	SUPPORTED_SIGNER_MODES = []ESignerMode{
		SIGNER_MODE_WALLET_BRIDGE,
		SIGNER_MODE_REMOTE,
		SIGNER_MODE_PROMPT,
		SIGNER_MODE_LOCAL_PRIVATE_KEY,
		SIGNER_MODE_GCP_KMS,
	}
)

type ESignOutcome string

const (
	SIGN_OUTCOME_SIGNED      ESignOutcome = "signed"
	SIGN_OUTCOME_REJECTED    ESignOutcome = "rejected"
	SIGN_OUTCOME_AGENT_ERROR ESignOutcome = "agent_error"
)
