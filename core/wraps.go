package core

import (
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/core/execute"
)

type PayrollContext interface {
	*execute.PayrollExecutionContext
}

type PayrollOptions interface {
	*common.ExecuteBulkPayrollOptions
}

type Stage[T PayrollContext, U PayrollOptions] func(ctx T, options U) (T, error)

type WrappedStageResult[T PayrollContext, U PayrollOptions] struct {
	Ctx T
	Err error
}

type WrappedStage[T PayrollContext, U PayrollOptions] func(previous WrappedStageResult[T, U], options U) WrappedStageResult[T, U]

func (result WrappedStageResult[T, U]) ExecuteStages(options U, stages ...Stage[T, U]) WrappedStageResult[T, U] {
	for _, stage := range stages {
		result = WrapStage(stage)(result, options)
	}
	return result
}

func WrapStage[T PayrollContext, U PayrollOptions](stage Stage[T, U]) WrappedStage[T, U] {
	return func(previous WrappedStageResult[T, U], options U) WrappedStageResult[T, U] {
		if previous.Err != nil {
			return previous
		}
		ctx, err := stage(previous.Ctx, options)
		return WrappedStageResult[T, U]{
			Ctx: ctx,
			Err: err,
		}
	}
}

func WrapContext[T PayrollContext, U PayrollOptions](ctx T) WrappedStageResult[T, U] {
	return WrappedStageResult[T, U]{
		Ctx: ctx,
	}
}

func (result WrappedStageResult[T, U]) Unwrap() (T, error) {
	return result.Ctx, result.Err
}
