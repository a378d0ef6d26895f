package constants

import "errors"

var (
	// miscellaneous

	ErrNotImplemented   = errors.New("not implemented")
	ErrUserNotConfirmed = errors.New("user not confirmed")

	// load

	ErrConfigurationLoadFailed       = errors.New("failed to load configuration")
	ErrConfigurationValidationFailed = errors.New("failed to validate configuration")
	ErrSignerLoadFailed              = errors.New("failed to load signer engine")
	ErrTransactorLoadFailed          = errors.New("failed to load transactor engine")
	ErrReporterLoadFailed            = errors.New("failed to load reporter engine")
	ErrRecipientsLoadFailed          = errors.New("failed to load recipients")

	// context validation

	ErrMissingEngine           = errors.New("missing engine")
	ErrMissingSignerEngine     = errors.New("undefined signer engine")
	ErrMissingTransactorEngine = errors.New("undefined transactor engine")
	ErrMissingSourceAccount    = errors.New("undefined source account")

	// recipients

	ErrRecipientsValidationFailed = errors.New("recipients validation failed")
	ErrNoRecipients               = errors.New("No recipients provided")
	ErrTooManyRecipients          = errors.New("Maximum 1000 recipients allowed per bulk payment")
	ErrInvalidAddress             = errors.New("Invalid Stellar address")
	ErrInvalidAmount              = errors.New("Invalid amount")
	ErrMissingAsset               = errors.New("Asset code is required")
	ErrUnknownAsset               = errors.New("Unknown asset")
	ErrNothingToRetry             = errors.New("nothing to retry")

	// build

	ErrAccountLoadFailed      = errors.New("failed to load source account")
	ErrAccountNotFound        = errors.New("account not found")
	ErrTransactionBuildFailed = errors.New("failed to build transaction")

	// sign

	ErrSigningRejected     = errors.New("transaction rejected by signer")
	ErrSigningAgentFailure = errors.New("signing agent failure")
	ErrSignedTxMismatch    = errors.New("signed transaction does not match the requested one")
	ErrSignedTxUnsigned    = errors.New("signed transaction carries no signature")
	ErrSigningTimeout      = errors.New("signing timed out")

	// submit

	ErrTransactionSubmitFailed = errors.New("failed to submit transaction")
	ErrTransactionFailed       = errors.New("Transaction failed")

	// execute

	ErrBatchPanicked       = errors.New("unexpected failure while processing batch")
	ErrExecutionTerminated = errors.New("user terminated execution")

	// destinations

	ErrDestinationNotFound    = errors.New("destination account does not exist")
	ErrDestinationNoTrustline = errors.New("destination account has no trustline for asset")
	ErrDestinationCheckFailed = errors.New("failed to check destination account")

	// notifications

	ErrUnsupportedNotificator          = errors.New("unsupported notificator")
	ErrInvalidNotificatorConfiguration = errors.New("invalid notificator configuration")

	// reports

	ErrReportNotFound = errors.New("report not found")
)
