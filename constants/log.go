package constants

import "slices"

const (
	LOG_MESSAGE_PRE_RUN_SUMMARY = "pre-run summary"
	LOG_MESSAGE_RUN_SUMMARY     = "run summary"
	LOG_MESSAGE_RUN_PROGRESS    = "run progress"

	LOG_FIELD_RUN_ID     = "run_id"
	LOG_FIELD_BATCH_ID   = "batch_id"
	LOG_FIELD_RECIPIENTS = "recipients"
	LOG_FIELD_BATCHES    = "batches"
	LOG_FIELD_ESTIMATE   = "estimate"
	LOG_FIELD_RESULTS    = "results"
	LOG_FIELD_PROGRESS   = "progress"
)

var (
	LOG_TOP_LEVEL_HIDDEN_FIELDS = []string{
		"stage",
		"phase",
	}
)

func init() {
	slices.Sort(LOG_TOP_LEVEL_HIDDEN_FIELDS)
}
