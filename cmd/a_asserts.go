package cmd

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
)

func assertRunWithErrorMessage(toExecute func() error, exitCode int, msg string, args ...any) {
	err := toExecute()
	if err != nil {
		args = append(args, "error", common.DescribeError(err))
		slog.Error(msg, args...)
		os.Exit(exitCode)
	}
}

func assertRunWithParamAndErrorMessage[T any](toExecute func(T) error, param T, exitCode int, msg string, args ...any) {
	assertRunWithErrorMessage(func() error { return toExecute(param) }, exitCode, msg, args...)
}

func assertRunWithResultAndErrorMessage[T any](toExecute func() (T, error), exitCode int, msg string, args ...any) T {
	result, err := toExecute()
	if err != nil {
		args = append(args, "error", common.DescribeError(err))
		slog.Error(msg, args...)
		os.Exit(exitCode)
	}
	return result
}

func assertRunWithResult[T any](toExecute func() (T, error), exitCode int) T {
	return assertRunWithResultAndErrorMessage(toExecute, exitCode, "operation failed")
}
