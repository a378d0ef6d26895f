package constants

const (
	LUMEPAY_REPOSITORY = "lumepay/lumepay"

	// stellar amounts carry 7 decimal places
	STROOPS_FACTOR = 10_000_000

	MAX_OPERATIONS_PER_TX         = 100
	MAX_RECIPIENTS_PER_BULK       = 1000
	MAX_MEMO_TEXT_LENGTH          = 28
	DEFAULT_TX_TIMEOUT_SECONDS    = int64(180)
	DEFAULT_BASE_FEE_STROOPS      = int64(100) // txnbuild.MinBaseFee
	BATCH_MEMO_COUNT_PLACEHOLDER  = "<Count>"
	DEFAULT_BATCH_MEMO_TEMPLATE   = "Batch payment: <Count> recipients"
	DEFAULT_SINGLE_PAYMENT_MEMO   = "Payroll payment"
	DEFAULT_SIGNER_BRIDGE_LISTEN  = "127.0.0.1:8478"
	DEFAULT_LOCK_TIMEOUT_MINUTES  = 10
	DEFAULT_POSTGRES_PING_TIMEOUT = 5 // seconds

	NATIVE_ASSET_CODE       = "XLM"
	NATIVE_ASSET_CODE_ALIAS = "native"

	MAINNET_HORIZON_URL  = "https://horizon.stellar.org"
	TESTNET_HORIZON_URL  = "https://horizon-testnet.stellar.org"
	MAINNET_EXPLORER_URL = "https://stellar.expert/explorer/public/"
	TESTNET_EXPLORER_URL = "https://stellar.expert/explorer/testnet/"

	PAYOUT_REPORT_FILE_NAME  = "payouts.csv"
	REPORT_SUMMARY_FILE_NAME = "summary.json"
	REPORTS_DIRECTORY        = "reports"
	LOCKS_DIRECTORY          = ".locks"
	DEFAULT_KEY_FILE_NAME    = "payout_wallet_private.key"
	DEFAULT_REPORTS_TABLE    = "payouts"

	DRY_RUN_NOTE = "(dry run - nothing will be submitted)"
)

// issuers of the assets the payroll supports out of the box (mainnet)
// NGNT has no default, its issuer has to be set in configuration.assets
var DEFAULT_ASSET_ISSUERS = map[string]string{
	"USDC": "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN",
	"EURT": "GAP5LETOV6YIE62YAM56STDANPRDO7ZFDBGSNHJQIYGGKSMOZAHOOS2S",
	"BRLT": "GDVKY2GU2DRXWTBEYJJWSFXIGBZV6AZNBVVSUHEPZI54LIS6BA7DVVSP",
	"ARST": "GCYE7C77EB5AWAA25R5XMWNI2EDOKTTFTTPZKM2SR5DI4B4WFD52DARS",
}
