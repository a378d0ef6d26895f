package common

type PanicStatus struct {
	ExitCode int
	Error    error
	Message  string
}

const (
	EXIT_SUCCESS        = 0
	EXIT_COMMON_FAILURE = 1
	EXIT_INVALID_ARGS   = 2
	// ops
	EXIT_OPERATION_FAILED   = 5
	EXIT_OPERATION_CANCELED = 6
	EXIT_PARTIAL_FAILURE    = 7

	// recipients and reports io
	EXIT_RECIPIENTS_READ_FAILURE     = 10
	EXIT_RECIPIENTS_INVALID          = 11
	EXIT_PAYOUT_REPORTS_READ_FAILURE = 12
	EXIT_PAYOUT_WRITE_FAILURE        = 13

	// configuration
	EXIT_CONFIGURATION_LOAD_FAILURE     = 20
	EXIT_CONFIGURATION_GENERATE_FAILURE = 21
	EXIT_CONFIGURATION_SAVE_FAILURE     = 22

	EXIT_STATE_LOAD_FAILURE = 30
	EXIT_LOCK_FAILURE       = 31

	EXIT_UNHANDLED_ERROR = 100
)
