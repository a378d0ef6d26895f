package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/test/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payrollFixture struct {
	transactor *mock.LedgerTransactor
	signer     *mock.ScriptedSigner
	engines    *common.ExecuteBulkPayrollEngineContext
	source     string
	snapshots  []common.BulkPaymentProgress
	adminMsgs  []string
	observed   []string
}

func (f *payrollFixture) ObserveBatch(outcome string, recipients int, duration time.Duration) {
	f.observed = append(f.observed, outcome)
}

func (f *payrollFixture) ObserveRun(progress common.BulkPaymentProgress) {}

func newPayrollFixture() *payrollFixture {
	key := mock.InitSimpleSigner()
	f := &payrollFixture{
		transactor: mock.NewLedgerTransactor(key.GetAddress()),
		signer:     mock.NewScriptedSigner(key),
		source:     key.GetAddress(),
	}
	f.engines = common.NewExecuteBulkPayrollEngineContext(f.transactor, f.signer, f, func(msg string) {
		f.adminMsgs = append(f.adminMsgs, msg)
	})
	return f
}

func (f *payrollFixture) options() *common.ExecuteBulkPayrollOptions {
	return &common.ExecuteBulkPayrollOptions{
		SourceAccount:      f.source,
		MaxOperationsPerTx: 100,
		OnProgress: func(progress common.BulkPaymentProgress) {
			f.snapshots = append(f.snapshots, progress)
		},
	}
}

func TestExecuteBulkPayrollAllSucceed(t *testing.T) {
	assert := assert.New(t)
	f := newPayrollFixture()
	recipients := mock.GenerateRecipients(150, "XLM")

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, f.options())
	require.NoError(t, err)

	assert.True(progress.OverallSuccess)
	assert.False(progress.IsProcessing)
	assert.Equal(150, progress.ProcessedRecipients)
	assert.Equal(150, progress.TotalRecipients)
	assert.Equal(2, progress.TotalBatches)
	require.Len(t, progress.CompletedBatches, 2)
	assert.Len(progress.CompletedBatches[0].Recipients, 100)
	assert.Len(progress.CompletedBatches[1].Recipients, 50)
	for i, result := range progress.CompletedBatches {
		assert.True(result.Success)
		assert.NotEmpty(result.TransactionHash)
		assert.Equal(f.transactor.Submitted[i], result.TransactionHash)
		assert.Empty(result.FailedRecipients)
	}
	assert.Equal("1/2", progress.CompletedBatches[0].Id)
	assert.NotEmpty(progress.RunId)
	assert.Equal([]string{"success", "success"}, f.observed)
	// sequence numbers were consumed in order
	assert.Equal(int64(1002), f.transactor.Accounts[f.source].Sequence)
}

func TestExecuteBulkPayrollProgressIsMonotonic(t *testing.T) {
	assert := assert.New(t)
	f := newPayrollFixture()
	f.signer.Rejects[1] = true
	recipients := mock.GenerateRecipients(250, "XLM")

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, f.options())
	require.NoError(t, err)

	// start, before and after each of 3 batches, end
	require.Len(t, f.snapshots, 1+2*3+1)
	assert.True(f.snapshots[0].IsProcessing)
	assert.Equal(0, f.snapshots[0].CurrentBatch)

	previous := f.snapshots[0]
	for _, snapshot := range f.snapshots[1:] {
		assert.GreaterOrEqual(snapshot.ProcessedRecipients, previous.ProcessedRecipients)
		if len(snapshot.CompletedBatches) > len(previous.CompletedBatches) {
			last := snapshot.CompletedBatches[len(snapshot.CompletedBatches)-1]
			assert.Equal(previous.ProcessedRecipients+len(last.Recipients), snapshot.ProcessedRecipients)
		}
		if snapshot.CurrentBatch != previous.CurrentBatch {
			assert.Equal(previous.CurrentBatch+1, snapshot.CurrentBatch)
		}
		previous = snapshot
	}
	last := f.snapshots[len(f.snapshots)-1]
	assert.False(last.IsProcessing)
	assert.Equal(250, last.ProcessedRecipients)
	assert.Equal(3, last.CurrentBatch)
	assert.Equal(progress.ProcessedRecipients, last.ProcessedRecipients)

	// snapshots are copies
	f.snapshots[len(f.snapshots)-1].CompletedBatches[0].Success = false
	assert.True(progress.CompletedBatches[0].Success)
}

func TestExecuteBulkPayrollFailureIsolation(t *testing.T) {
	assert := assert.New(t)
	f := newPayrollFixture()
	f.signer.Rejects[0] = true
	recipients := mock.GenerateRecipients(200, "XLM")

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, f.options())
	require.NoError(t, err)
	require.Len(t, progress.CompletedBatches, 2)

	rejected := progress.CompletedBatches[0]
	assert.False(rejected.Success)
	assert.Empty(rejected.TransactionHash)
	assert.ErrorIs(rejected.Err, constants.ErrSigningRejected)
	assert.Contains(rejected.Error, "User declined access")
	assert.Equal(rejected.Recipients, rejected.FailedRecipients)
	assert.Equal(common.RecipientBatch(recipients[:100]), rejected.Recipients)

	assert.True(progress.CompletedBatches[1].Success)
	assert.Equal(common.RecipientBatch(recipients[100:]), progress.CompletedBatches[1].Recipients)
	assert.False(progress.OverallSuccess)
	assert.Equal(200, progress.ProcessedRecipients)
	assert.Equal([]string{"failed", "success"}, f.observed)
}

func TestExecuteBulkPayrollOverallSuccessLatch(t *testing.T) {
	f := newPayrollFixture()
	f.signer.Failures[1] = true
	recipients := mock.GenerateRecipients(5, "XLM")
	options := f.options()
	options.MaxOperationsPerTx = 1

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, options)
	require.NoError(t, err)

	latched := false
	for _, snapshot := range f.snapshots {
		if latched {
			assert.False(t, snapshot.OverallSuccess)
		}
		if len(snapshot.CompletedBatches) >= 2 {
			latched = true
			assert.False(t, snapshot.OverallSuccess)
		}
	}
	assert.True(t, latched)
	assert.False(t, progress.OverallSuccess)
	assert.ErrorIs(t, progress.CompletedBatches[1].Err, constants.ErrSigningAgentFailure)
	assert.Equal(t, 4, len(f.transactor.Submitted))
}

func TestExecuteBulkPayrollBuildAndSubmitFailures(t *testing.T) {
	assert := assert.New(t)
	f := newPayrollFixture()
	f.transactor.BuildErrors[0] = errors.Join(constants.ErrAccountLoadFailed, errors.New("horizon unavailable"))
	f.transactor.SubmitErrors[0] = errors.New("Transaction failed: tx_failed op_underfunded")
	recipients := mock.GenerateRecipients(3, "XLM")
	options := f.options()
	options.MaxOperationsPerTx = 1

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, options)
	require.NoError(t, err)
	require.Len(t, progress.CompletedBatches, 3)

	assert.ErrorIs(progress.CompletedBatches[0].Err, constants.ErrAccountLoadFailed)
	assert.Equal("failed to load source account: horizon unavailable", progress.CompletedBatches[0].Error)
	assert.Equal("Transaction failed: tx_failed op_underfunded", progress.CompletedBatches[1].Error)
	assert.True(progress.CompletedBatches[2].Success)
	assert.False(progress.OverallSuccess)
}

func TestExecuteBulkPayrollRecoversFromPanics(t *testing.T) {
	f := newPayrollFixture()
	f.signer.Panics[0] = true
	recipients := mock.GenerateRecipients(2, "XLM")
	options := f.options()
	options.MaxOperationsPerTx = 1

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, options)
	require.NoError(t, err)
	require.Len(t, progress.CompletedBatches, 2)
	assert.ErrorIs(t, progress.CompletedBatches[0].Err, constants.ErrBatchPanicked)
	assert.Contains(t, progress.CompletedBatches[0].Error, "signer exploded")
	assert.True(t, progress.CompletedBatches[1].Success)
}

func TestExecuteBulkPayrollRejectsTamperedSignature(t *testing.T) {
	f := newPayrollFixture()
	f.signer.Tamper[0] = true
	recipients := mock.GenerateRecipients(1, "XLM")

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, f.options())
	require.NoError(t, err)
	require.Len(t, progress.CompletedBatches, 1)
	assert.ErrorIs(t, progress.CompletedBatches[0].Err, constants.ErrSigningAgentFailure)
	assert.ErrorIs(t, progress.CompletedBatches[0].Err, constants.ErrSignedTxMismatch)
	assert.Equal(t, 0, f.transactor.SubmitCalls())
}

func TestExecuteBulkPayrollCooperativeStop(t *testing.T) {
	assert := assert.New(t)
	f := newPayrollFixture()
	recipients := mock.GenerateRecipients(4, "XLM")
	options := f.options()
	options.MaxOperationsPerTx = 1
	options.ShouldStop = func() bool {
		return f.signer.Calls() >= 2
	}

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, options)
	require.NoError(t, err)
	require.Len(t, progress.CompletedBatches, 4)

	assert.True(progress.CompletedBatches[0].Success)
	assert.True(progress.CompletedBatches[1].Success)
	assert.ErrorIs(progress.CompletedBatches[2].Err, constants.ErrExecutionTerminated)
	assert.ErrorIs(progress.CompletedBatches[3].Err, constants.ErrExecutionTerminated)
	assert.Equal(2, f.signer.Calls())
	assert.Equal(4, progress.ProcessedRecipients)
	assert.False(progress.OverallSuccess)
	assert.Len(f.adminMsgs, 1)
	assert.Equal(recipients[2:], progress.GetFailedRecipients())
	assert.Equal([]string{"success", "success", "terminated", "terminated"}, f.observed)
}

func TestExecuteBulkPayrollDryRun(t *testing.T) {
	f := newPayrollFixture()
	options := f.options()
	options.DryRun = true

	progress, err := ExecuteBulkPayroll(context.Background(), mock.GenerateRecipients(120, "XLM"), f.engines, options)
	require.NoError(t, err)
	assert.True(t, progress.OverallSuccess)
	assert.Equal(t, 2, f.transactor.BuildCalls())
	assert.Equal(t, 0, f.signer.Calls())
	assert.Equal(t, 0, f.transactor.SubmitCalls())
	assert.Equal(t, []string{"dry_run", "dry_run"}, f.observed)
}

func TestExecuteBulkPayrollValidationGate(t *testing.T) {
	assert := assert.New(t)
	f := newPayrollFixture()
	recipients := mock.GenerateRecipients(5, "XLM")
	recipients[2].Address = "GINVALID"

	progress, err := ExecuteBulkPayroll(context.Background(), recipients, f.engines, f.options())
	assert.Nil(progress)
	assert.ErrorIs(err, constants.ErrRecipientsValidationFailed)
	assert.Contains(err.Error(), "Recipient 3 (employee 3): Invalid Stellar address")
	assert.Equal(0, f.transactor.BuildCalls())
	assert.Equal(0, f.signer.Calls())
	assert.Empty(f.snapshots)

	_, err = ExecuteBulkPayroll(context.Background(), nil, f.engines, f.options())
	assert.ErrorIs(err, constants.ErrRecipientsValidationFailed)
}

func TestExecuteBulkPayrollRequiresEngines(t *testing.T) {
	f := newPayrollFixture()
	_, err := ExecuteBulkPayroll(context.Background(), mock.GenerateRecipients(1, "XLM"), common.NewExecuteBulkPayrollEngineContext(f.transactor, nil, nil, nil), f.options())
	assert.ErrorIs(t, err, constants.ErrMissingSignerEngine)

	options := f.options()
	options.SourceAccount = ""
	_, err = ExecuteBulkPayroll(context.Background(), mock.GenerateRecipients(1, "XLM"), f.engines, options)
	assert.ErrorIs(t, err, constants.ErrMissingSourceAccount)
}

func TestRetryFailedRecipients(t *testing.T) {
	assert := assert.New(t)
	a := mock.GenerateRecipients(2, "XLM")
	b := mock.GenerateRecipients(3, "XLM")
	c := mock.GenerateRecipients(1, "XLM")
	prior := common.BatchResults{
		*common.NewSuccessBatchResult("1/3", a, "hash-a"),
		*common.NewFailedBatchResult("2/3", b, constants.ErrSigningRejected),
		*common.NewFailedBatchResult("3/3", c, constants.ErrTransactionFailed),
	}

	f := newPayrollFixture()
	options := f.options()
	options.RunId = "retry-run"
	progress, err := RetryFailedRecipients(context.Background(), prior, f.engines, options)
	require.NoError(t, err)

	assert.Equal("retry-run", progress.RunId)
	assert.Equal(4, progress.TotalRecipients)
	require.Len(t, progress.CompletedBatches, 1)
	assert.Equal(common.RecipientBatch(append(append([]common.PaymentRecipient{}, b...), c...)), progress.CompletedBatches[0].Recipients)
	assert.True(progress.OverallSuccess)
}

func TestRetryWithoutFailuresTouchesNothing(t *testing.T) {
	assert := assert.New(t)
	prior := common.BatchResults{
		*common.NewSuccessBatchResult("1/1", mock.GenerateRecipients(3, "XLM"), "hash"),
	}

	f := newPayrollFixture()
	progress, err := RetryFailedRecipients(context.Background(), prior, f.engines, f.options())
	require.NoError(t, err)

	assert.False(progress.IsProcessing)
	assert.True(progress.OverallSuccess)
	assert.Equal(0, progress.TotalBatches)
	assert.Empty(progress.CompletedBatches)
	assert.Equal(0, f.transactor.BuildCalls())
	assert.Equal(0, f.signer.Calls())

	progress, err = RetryFailedRecipients(context.Background(), nil, f.engines, f.options())
	require.NoError(t, err)
	assert.False(progress.IsProcessing)
}
