package main

import (
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/cmd"
	"github.com/lumepay/lumepay/common"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if panicStatus, ok := r.(common.PanicStatus); ok {
				if panicStatus.Error != nil {
					slog.Error(panicStatus.Message, "error", panicStatus.Error.Error())
				}
				os.Exit(panicStatus.ExitCode)
			}
			slog.Error("unhandled panic", "panic", r)
			os.Exit(common.EXIT_UNHANDLED_ERROR)
		}
	}()

	if err := cmd.Execute(); err != nil {
		os.Exit(common.EXIT_COMMON_FAILURE)
	}
}
