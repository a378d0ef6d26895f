package reporter_engines

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path"
	"testing"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/lumepay/lumepay/test/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTimestamp = time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

func sampleResults() common.BatchResults {
	recipients := mock.GenerateRecipients(3, "USDC")
	recipients[0].Memo = "march, salary"
	return common.BatchResults{
		*common.NewSuccessBatchResult("1/2", recipients[:2], "abcd"),
		*common.NewFailedBatchResult("2/2", recipients[2:], errors.Join(constants.ErrSigningRejected, errors.New("User declined access"))),
	}
}

func TestFsReporterRoundTrip(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()
	reporter := NewFileSystemReporter(directory, nil)
	reports := sampleResults().ToIndividualReports("run-1", reportTimestamp)

	require.NoError(t, reporter.ReportPayouts(context.Background(), reports))
	assert.FileExists(path.Join(directory, "run-1", constants.PAYOUT_REPORT_FILE_NAME))

	loaded, err := reporter.GetExistingReports(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(reports, loaded)
	assert.Equal("transaction rejected by signer: User declined access", loaded[2].Note)

	failed := common.FailedReportsToRecipients(loaded)
	require.Len(t, failed, 1)
	assert.Equal(reports[2].Recipient, failed[0].Address)

	_, err = reporter.GetExistingReports(context.Background(), "missing")
	assert.ErrorIs(err, constants.ErrReportNotFound)
}

func TestFsReporterSummaryAndDryRun(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()
	reporter := NewFileSystemReporter(directory, &ReporterEngineOptions{DryRun: true})

	progress := common.NewBulkPaymentProgress("run-2", 2, 3)
	for _, result := range sampleResults() {
		progress.CompleteBatch(result)
	}
	progress.Finish()
	summary := common.NewRunSummary(mock.GetRandomAddress(), "testnet", progress.Snapshot(), reportTimestamp)
	require.NoError(t, reporter.ReportRunSummary(context.Background(), summary))

	_, err := os.Stat(path.Join(directory, "dry", "run-2", constants.REPORT_SUMMARY_FILE_NAME))
	assert.NoError(err)

	loaded, err := reporter.GetExistingRunSummary(context.Background(), "run-2")
	require.NoError(t, err)
	assert.Equal(2, loaded.PaidRecipients)
	assert.Equal(1, loaded.FailedRecipients)
	assert.Equal([]string{"abcd"}, loaded.TransactionIds)
	assert.False(loaded.OverallSuccess)
}

func TestStdioReporter(t *testing.T) {
	output := &bytes.Buffer{}
	reporter := NewStdioReporter(output)
	reports := sampleResults().ToIndividualReports("run-3", reportTimestamp)

	require.NoError(t, reporter.ReportPayouts(context.Background(), reports))
	decoded := PayoutsReport{}
	require.NoError(t, json.Unmarshal(output.Bytes(), &decoded))
	assert.Equal(t, reports, decoded.Payouts)

	_, err := reporter.GetExistingReports(context.Background(), "run-3")
	assert.ErrorIs(t, err, constants.ErrReportNotFound)
}

func TestMultiReporter(t *testing.T) {
	assert := assert.New(t)
	memory := mock.NewMemoryReporter()
	reporter := NewMultiReporter(NewStdioReporter(&bytes.Buffer{}), memory)
	reports := sampleResults().ToIndividualReports("run-4", reportTimestamp)

	require.NoError(t, reporter.ReportPayouts(context.Background(), reports))
	loaded, err := reporter.GetExistingReports(context.Background(), "run-4")
	require.NoError(t, err)
	assert.Equal(reports, loaded)

	_, err = NewMultiReporter(NewStdioReporter(&bytes.Buffer{})).GetExistingReports(context.Background(), "none")
	assert.ErrorIs(err, constants.ErrReportNotFound)
}

func TestLoadReporters(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()
	fsConfiguration, _ := json.Marshal(map[string]string{"type": "fs", "directory": directory})

	reporter, err := Load(context.Background(), []configuration.RuntimeReporterConfiguration{
		{Type: enums.REPORTER_KIND_FS, Configuration: fsConfiguration, IsValid: true},
		{Type: enums.REPORTER_KIND_STDIO, IsValid: true},
		{Type: "ftp", IsValid: false},
	}, nil)
	require.NoError(t, err)
	assert.Equal("MultiReporter(2)", reporter.GetId())

	_, err = Load(context.Background(), []configuration.RuntimeReporterConfiguration{
		{Type: enums.REPORTER_KIND_POSTGRES, Configuration: []byte(`{"type": "postgres"}`), IsValid: true},
	}, nil)
	assert.ErrorIs(err, constants.ErrReporterLoadFailed)
}

func TestValidateReporterConfiguration(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(ValidateReporterConfiguration(enums.REPORTER_KIND_FS, nil))
	assert.NoError(ValidateReporterConfiguration(enums.REPORTER_KIND_POSTGRES, []byte(`{"connection_string": "postgres://localhost/payroll"}`)))
	assert.Error(ValidateReporterConfiguration(enums.REPORTER_KIND_POSTGRES, []byte(`{"connection_string": "postgres://localhost/payroll", "table": "payouts; drop table x"}`)))
	assert.Error(ValidateReporterConfiguration(enums.REPORTER_KIND_GCS, []byte(`{}`)))
	assert.NoError(ValidateReporterConfiguration(enums.REPORTER_KIND_GCS, []byte(`{"bucket": "payroll-reports"}`)))
	assert.Error(ValidateReporterConfiguration("ftp", nil))
}

func TestToPayoutRows(t *testing.T) {
	reports := sampleResults().ToIndividualReports("run-5", reportTimestamp)
	rows := toPayoutRows(reports)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], len(payoutColumns))
	assert.Equal(t, []any{"run-5", "2/2", 2, reportTimestamp, reports[2].Recipient, "employee 3", "3.25", "USDC", "", "", false, reports[2].Note}, rows[2])
}
