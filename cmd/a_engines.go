package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/constants"
	reporter_engines "github.com/lumepay/lumepay/engines/reporter"
	signer_engines "github.com/lumepay/lumepay/engines/signer"
	transactor_engines "github.com/lumepay/lumepay/engines/transactor"
	"github.com/lumepay/lumepay/metrics"
	"github.com/lumepay/lumepay/state"
)

type ConfigurationAndEngines struct {
	Configuration *configuration.RuntimeConfiguration
	Signer        common.SignerEngine
	Transactor    common.TransactorEngine
}

func (cae *ConfigurationAndEngines) Unwrap() (*configuration.RuntimeConfiguration, common.SignerEngine, common.TransactorEngine) {
	return cae.Configuration, cae.Signer, cae.Transactor
}

// Close releases the signer, the wallet bridge keeps a listener open
func (cae *ConfigurationAndEngines) Close() {
	if closer, ok := cae.Signer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Debug("failed to close signer", "error", err.Error())
		}
	}
}

// UseRecipientMemo switches the transactor to per recipient memos, transfers only
func (cae *ConfigurationAndEngines) UseRecipientMemo() {
	if transactor, ok := cae.Transactor.(interface{ UseRecipientMemo() }); ok {
		transactor.UseRecipientMemo()
	}
}

type addressProvider interface {
	GetAddress() string
}

func loadConfigurationAndTransactor() (*ConfigurationAndEngines, error) {
	config, err := configuration.Load()
	if err != nil {
		return nil, err
	}
	transactor, err := transactor_engines.InitHorizonTransactor(config)
	if err != nil {
		return nil, err
	}
	return &ConfigurationAndEngines{
		Configuration: config,
		Transactor:    transactor,
	}, nil
}

func loadConfigurationAndEngines(ctx context.Context) (*ConfigurationAndEngines, error) {
	result, err := loadConfigurationAndTransactor()
	if err != nil {
		return nil, err
	}
	signer, err := signer_engines.Load(ctx, state.Global.GetSignerOverride(), result.Configuration.Signer)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	result.Signer = signer

	if result.Configuration.SourceAccount == "" {
		provider, ok := signer.(addressProvider)
		if !ok {
			result.Close()
			return nil, constants.ErrMissingSourceAccount
		}
		result.Configuration.SourceAccount = provider.GetAddress()
	}
	return result, nil
}

func requireSourceAccount(config *configuration.RuntimeConfiguration) string {
	if config.SourceAccount == "" {
		slog.Error("source account is required", "error", constants.ErrMissingSourceAccount.Error())
		os.Exit(common.EXIT_CONFIGURATION_LOAD_FAILURE)
	}
	return config.SourceAccount
}

type reporterCloser func()

func loadReporter(ctx context.Context, config *configuration.RuntimeConfiguration, dryRun bool, toStdout bool) (common.ReporterEngine, reporterCloser, error) {
	if toStdout {
		return reporter_engines.NewStdioReporter(os.Stdout), func() {}, nil
	}
	reporter, err := reporter_engines.Load(ctx, config.Reporters, &reporter_engines.ReporterEngineOptions{
		DryRun: dryRun,
	})
	if err != nil {
		return nil, nil, err
	}
	return reporter, reporter.Close, nil
}

// startMetrics returns nil metrics when no endpoint is configured, observing nil metrics is a no-op
func startMetrics(ctx context.Context, config *configuration.RuntimeConfiguration) *metrics.Metrics {
	if config.Metrics.Listen == "" {
		return nil
	}
	m := metrics.NewMetrics()
	if err := m.Serve(ctx, config.Metrics.Listen); err != nil {
		slog.Warn("failed to start metrics endpoint", "listen", config.Metrics.Listen, "error", err.Error())
		return nil
	}
	slog.Info("metrics endpoint started", "listen", config.Metrics.Listen)
	return m
}
