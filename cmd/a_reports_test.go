package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/test/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRunReportsRetryCoversWholeRun(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	config := &configuration.RuntimeConfiguration{SourceAccount: mock.GetRandomAddress()}
	recipients := mock.GenerateRecipients(3, "XLM")
	for i := range recipients {
		recipients[i].Amount = "10"
	}
	reporter := mock.NewMemoryReporter()

	first := common.NewBulkPaymentProgress("run-1", 2, 3)
	first.CompleteBatch(*common.NewSuccessBatchResult("1/2", common.RecipientBatch{recipients[0]}, "hash-1"))
	first.CompleteBatch(*common.NewFailedBatchResult("2/2", common.RecipientBatch{recipients[1], recipients[2]}, errors.New("tx_bad_seq")))
	first.Finish()

	summary, err := writeRunReports(context.Background(), reporter, config, first, nil)
	require.NoError(err)
	assert.Equal(1, summary.PaidRecipients)
	assert.Equal(2, summary.FailedRecipients)

	previous, err := reporter.GetExistingReports(context.Background(), "run-1")
	require.NoError(err)
	require.Len(previous, 3)

	retry := common.NewBulkPaymentProgress("run-1", 2, 2)
	retry.CompleteBatch(*common.NewSuccessBatchResult("1/2", common.RecipientBatch{recipients[1]}, "hash-2"))
	retry.CompleteBatch(*common.NewFailedBatchResult("2/2", common.RecipientBatch{recipients[2]}, errors.New("op_no_trust")))
	retry.Finish()

	summary, err = writeRunReports(context.Background(), reporter, config, retry, previous)
	require.NoError(err)
	assert.Equal("run-1", summary.RunId)
	assert.Equal(3, summary.TotalRecipients)
	assert.Equal(2, summary.PaidRecipients)
	assert.Equal(1, summary.FailedRecipients)
	assert.Equal(1, summary.FailedBatches)
	assert.Equal(3, summary.TotalBatches)
	assert.Equal([]string{"hash-1", "hash-2"}, summary.TransactionIds)
	assert.Equal(map[string]string{"XLM": "20.0000000"}, summary.PaidTotals)
	assert.False(summary.OverallSuccess)

	stored, err := reporter.GetExistingReports(context.Background(), "run-1")
	require.NoError(err)
	assert.Len(stored, 3)
	assert.Len(common.FailedReportsToRecipients(stored), 1)
	require.Len(reporter.Summaries, 2)
	assert.Equal(summary.PaidRecipients, reporter.Summaries[1].PaidRecipients)
	assert.Equal(summary.TotalRecipients, reporter.Summaries[1].TotalRecipients)
}

func TestWriteRunReportsFirstAttemptUsesProgress(t *testing.T) {
	config := &configuration.RuntimeConfiguration{SourceAccount: mock.GetRandomAddress()}
	recipients := mock.GenerateRecipients(2, "XLM")

	progress := common.NewBulkPaymentProgress("run-2", 1, 2)
	progress.CompleteBatch(*common.NewSuccessBatchResult("1/1", recipients, "hash"))
	progress.Finish()

	summary, err := writeRunReports(context.Background(), mock.NewMemoryReporter(), config, progress, nil)
	require.NoError(t, err)
	assert.True(t, summary.OverallSuccess)
	assert.Equal(t, 1, summary.TotalBatches)
	assert.Equal(t, 2, summary.PaidRecipients)
	assert.WithinDuration(t, time.Now(), summary.Timestamp, time.Minute)
}
