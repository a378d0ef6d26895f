package reporter_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/configuration"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/constants/enums"
	"github.com/samber/lo"
)

// MultiReporter fans out to every configured reporter. Reads are served by
// the first reporter that has the run.
type MultiReporter struct {
	reporters []common.ReporterEngine
}

func NewMultiReporter(reporters ...common.ReporterEngine) *MultiReporter {
	return &MultiReporter{
		reporters: reporters,
	}
}

func (engine *MultiReporter) GetId() string {
	return fmt.Sprintf("MultiReporter(%d)", len(engine.reporters))
}

func (engine *MultiReporter) GetExistingReports(ctx context.Context, runId string) ([]common.PayoutReport, error) {
	errs := make([]error, 0, len(engine.reporters))
	for _, reporter := range engine.reporters {
		reports, err := reporter.GetExistingReports(ctx, runId)
		if err == nil {
			return reports, nil
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 && lo.EveryBy(errs, func(err error) bool { return errors.Is(err, constants.ErrReportNotFound) }) {
		return []common.PayoutReport{}, reportNotFound(runId)
	}
	return []common.PayoutReport{}, errors.Join(errs...)
}

func (engine *MultiReporter) ReportPayouts(ctx context.Context, reports []common.PayoutReport) error {
	errs := make([]error, 0)
	for _, reporter := range engine.reporters {
		if err := reporter.ReportPayouts(ctx, reports); err != nil {
			slog.Warn("failed to report payouts", "reporter", reporter.GetId(), "error", err.Error())
			errs = append(errs, fmt.Errorf("%s: %w", reporter.GetId(), err))
		}
	}
	return errors.Join(errs...)
}

func (engine *MultiReporter) ReportRunSummary(ctx context.Context, summary common.RunSummary) error {
	errs := make([]error, 0)
	for _, reporter := range engine.reporters {
		if err := reporter.ReportRunSummary(ctx, summary); err != nil {
			slog.Warn("failed to report run summary", "reporter", reporter.GetId(), "error", err.Error())
			errs = append(errs, fmt.Errorf("%s: %w", reporter.GetId(), err))
		}
	}
	return errors.Join(errs...)
}

func (engine *MultiReporter) Close() {
	for _, reporter := range engine.reporters {
		switch closer := reporter.(type) {
		case interface{ Close() error }:
			closer.Close()
		case interface{ Close() }:
			closer.Close()
		}
	}
}

func ValidateReporterConfiguration(kind enums.EReporterKind, configurationBytes []byte) error {
	switch kind {
	case enums.REPORTER_KIND_FS, enums.REPORTER_KIND_STDIO:
		return nil
	case enums.REPORTER_KIND_POSTGRES:
		return ValidatePostgresConfiguration(configurationBytes)
	case enums.REPORTER_KIND_GCS:
		return ValidateGCSConfiguration(configurationBytes)
	default:
		return errors.Join(constants.ErrReporterLoadFailed, fmt.Errorf("unsupported reporter type '%s'", kind))
	}
}

func LoadReporter(ctx context.Context, config configuration.RuntimeReporterConfiguration, options *ReporterEngineOptions) (common.ReporterEngine, error) {
	switch config.Type {
	case enums.REPORTER_KIND_FS:
		return InitFileSystemReporter(config.Configuration, options)
	case enums.REPORTER_KIND_STDIO:
		return NewStdioReporter(nil), nil
	case enums.REPORTER_KIND_POSTGRES:
		return InitPostgresReporter(ctx, config.Configuration, options)
	case enums.REPORTER_KIND_GCS:
		return InitGCSReporter(ctx, config.Configuration, options)
	default:
		return nil, errors.Join(constants.ErrReporterLoadFailed, fmt.Errorf("unsupported reporter type '%s'", config.Type))
	}
}

// Load initializes every valid reporter. Reporters that fail to load are
// skipped with a warning unless none is left.
func Load(ctx context.Context, configs []configuration.RuntimeReporterConfiguration, options *ReporterEngineOptions) (*MultiReporter, error) {
	reporters := make([]common.ReporterEngine, 0, len(configs))
	errs := make([]error, 0)
	for _, config := range configs {
		if !config.IsValid {
			continue
		}
		reporter, err := LoadReporter(ctx, config, options)
		if err != nil {
			slog.Warn("failed to load reporter", "type", config.Type, "error", err.Error())
			errs = append(errs, err)
			continue
		}
		reporters = append(reporters, reporter)
	}
	if len(reporters) == 0 && len(errs) > 0 {
		return nil, errors.Join(append([]error{constants.ErrReporterLoadFailed}, errs...)...)
	}
	return NewMultiReporter(reporters...), nil
}
