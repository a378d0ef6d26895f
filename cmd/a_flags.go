package cmd

const (
	CONFIRM_FLAG            = "confirm"
	NOTIFICATOR_FLAG        = "notificator"
	SIGNER_FLAG             = "signer"
	SKIP_VERSION_CHECK_FLAG = "skip-version-check"
	SKIP_BALANCE_CHECK_FLAG = "skip-balance-check"
	CHECK_DESTINATIONS_FLAG = "check-destinations"
	REPORT_TO_STDOUT        = "report-to-stdout"
	DRY_RUN_FLAG            = "dry-run"
	SILENT_FLAG             = "silent"
	FROM_FILE_FLAG          = "from-file"
	FROM_STDIN_FLAG         = "from-stdin"
	RUN_ID_FLAG             = "run-id"
	ASSET_FLAG              = "asset"
	MEMO_FLAG               = "memo"
	NAME_FLAG               = "name"
	BASE_FEE_FLAG           = "base-fee"
	FORCE_FLAG              = "force"
)
