package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/state"
	"github.com/lumepay/lumepay/utils"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LOG_LEVEL_FLAG     = "log-level"
	LOG_FILE_FLAG      = "log-file"
	PATH_FLAG          = "path"
	VERSION_FLAG       = "version"
	OUTPUT_FORMAT_FLAG = "output-format"
)

var (
	LOG_LEVEL_MAP = map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func setupLumberjackLogger(logFile string) io.Writer {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

func setupJsonLogger(level slog.Level, logFile string) {
	writers := make([]io.Writer, 0, 2)
	writers = append(writers, os.Stdout)
	if logFile != "" {
		writers = append(writers, setupLumberjackLogger(logFile))
	}

	handler := slog.NewJSONHandler(utils.NewMultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func setupTextLogger(level slog.Level, logFile string) {
	var handler slog.Handler = utils.NewPrettyTextLogHandler(os.Stdout, utils.PrettyHandlerOptions{
		HandlerOptions: slog.HandlerOptions{Level: level},
	})
	if logFile != "" {
		// the file gets plain lines, colors are for the terminal only
		handler = utils.NewPrettyTextLogHandler(utils.NewMultiWriter(os.Stdout, setupLumberjackLogger(logFile)), utils.PrettyHandlerOptions{
			HandlerOptions: slog.HandlerOptions{Level: level},
			NoColor:        true,
		})
	}
	slog.SetDefault(slog.New(handler))
}

var (
	RootCmd = &cobra.Command{
		Use:   "lumepay",
		Short: "LUMEPAY",
		Long: fmt.Sprintf(`LUMEPAY %s - payroll payments on the Stellar network
Copyright © %d lumepay
`, constants.VERSION, time.Now().Year()),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString(OUTPUT_FORMAT_FLAG)
			level, _ := cmd.Flags().GetString(LOG_LEVEL_FLAG)
			logFile, _ := cmd.Flags().GetString(LOG_FILE_FLAG)

			wantsJson := format == "json"
			switch format {
			case "json":
				setupJsonLogger(LOG_LEVEL_MAP[level], logFile)
			case "text":
				setupTextLogger(LOG_LEVEL_MAP[level], logFile)
			default:
				if !utils.IsTty() {
					wantsJson = true
					setupJsonLogger(LOG_LEVEL_MAP[level], logFile)
				} else {
					setupTextLogger(LOG_LEVEL_MAP[level], logFile)
				}
			}
			slog.Debug("logger configured", "format", format, "level", level)

			workingDirectory, _ := cmd.Flags().GetString(PATH_FLAG)
			signerOverride, _ := cmd.Flags().GetString(SIGNER_FLAG)

			stateOptions := state.StateInitOptions{
				WantsJsonOutput: wantsJson,
				SignerOverride:  signerOverride,
				Debug:           level == "debug",
			}
			if err := state.Init(workingDirectory, stateOptions); err != nil {
				slog.Error("failed to initialize state", "error", err.Error())
				os.Exit(common.EXIT_STATE_LOAD_FAILURE)
			}

			skipVersionCheck, _ := cmd.Flags().GetBool(SKIP_VERSION_CHECK_FLAG)
			if !skipVersionCheck && utils.IsTty() {
				promptIfNewVersionAvailable()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			version, _ := cmd.Flags().GetBool(VERSION_FLAG)
			if version {
				fmt.Println(constants.VERSION)
				return
			}

			cmd.Help()
		},
	}
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Flags().Bool(VERSION_FLAG, false, "Prints version")
	RootCmd.PersistentFlags().StringP(PATH_FLAG, "p", ".", "path to working directory")
	RootCmd.PersistentFlags().StringP(OUTPUT_FORMAT_FLAG, "o", "auto", "Sets output log format (json/text/auto)")
	RootCmd.PersistentFlags().StringP(LOG_LEVEL_FLAG, "l", "info", "Sets log level format (debug/info/warn/error)")
	RootCmd.PersistentFlags().String(LOG_FILE_FLAG, "", "Logs to file")
	RootCmd.PersistentFlags().String(SIGNER_FLAG, "", "Override signer (signer mode, key:<secret seed> or remote:<url>)")
	RootCmd.PersistentFlags().Bool(SKIP_VERSION_CHECK_FLAG, false, "Skip version check")
}
