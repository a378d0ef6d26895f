package common

import (
	"errors"
	"time"

	"github.com/lumepay/lumepay/constants"
)

// BatchObserver receives per batch measurements, e.g. prometheus metrics.
type BatchObserver interface {
	ObserveBatch(outcome string, recipients int, duration time.Duration)
	ObserveRun(progress BulkPaymentProgress)
}

type ExecuteBulkPayrollEngineContext struct {
	Transactor  TransactorEngine
	Signer      SignerEngine
	Observer    BatchObserver
	adminNotify func(string)
}

func NewExecuteBulkPayrollEngineContext(transactor TransactorEngine, signer SignerEngine, observer BatchObserver, adminNotify func(string)) *ExecuteBulkPayrollEngineContext {
	return &ExecuteBulkPayrollEngineContext{
		Transactor:  transactor,
		Signer:      signer,
		Observer:    observer,
		adminNotify: adminNotify,
	}
}

func (ctx *ExecuteBulkPayrollEngineContext) Validate() error {
	if ctx == nil {
		return constants.ErrMissingEngine
	}
	if ctx.Transactor == nil {
		return errors.Join(constants.ErrMissingEngine, constants.ErrMissingTransactorEngine)
	}
	if ctx.Signer == nil {
		return errors.Join(constants.ErrMissingEngine, constants.ErrMissingSignerEngine)
	}
	return nil
}

func (ctx *ExecuteBulkPayrollEngineContext) GetTransactor() TransactorEngine {
	return ctx.Transactor
}

func (ctx *ExecuteBulkPayrollEngineContext) GetSigner() SignerEngine {
	return ctx.Signer
}

func (ctx *ExecuteBulkPayrollEngineContext) AdminNotify(msg string) {
	if ctx.adminNotify == nil {
		return
	}
	ctx.adminNotify(msg)
}

type ExecuteBulkPayrollOptions struct {
	SourceAccount      string
	MaxOperationsPerTx int
	Assets             AssetRegistry
	// RunId is generated when empty
	RunId      string
	OnProgress ProgressCallback
	// ShouldStop is polled between batches, remaining batches are recorded as terminated
	ShouldStop func() bool
	DryRun     bool
}

type EstimateCostOptions struct {
	MaxOperationsPerTx int
	BaseFeeStroops     int64
	Assets             AssetRegistry
}
