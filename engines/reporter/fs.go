package reporter_engines

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/state"
)

type fsReporterConfiguration struct {
	Directory string `json:"directory"`
}

type FsReporter struct {
	directory string
	options   *ReporterEngineOptions
}

func NewFileSystemReporter(directory string, options *ReporterEngineOptions) *FsReporter {
	if options == nil {
		options = &ReporterEngineOptions{}
	}
	return &FsReporter{
		directory: directory,
		options:   options,
	}
}

func InitFileSystemReporter(configurationBytes []byte, options *ReporterEngineOptions) (*FsReporter, error) {
	configuration := fsReporterConfiguration{}
	if len(configurationBytes) > 0 {
		if err := json.Unmarshal(configurationBytes, &configuration); err != nil {
			return nil, err
		}
	}
	directory := configuration.Directory
	if directory == "" {
		directory = state.Global.GetReportsDirectory()
	}
	return NewFileSystemReporter(directory, options), nil
}

func (engine *FsReporter) GetId() string {
	return "FsReporter"
}

func (engine *FsReporter) getReportsDirectory() (string, error) {
	directory := engine.directory
	if engine.options.DryRun {
		directory = path.Join(directory, "dry")
	}
	return directory, os.MkdirAll(directory, 0700)
}

func (engine *FsReporter) GetExistingReports(ctx context.Context, runId string) ([]common.PayoutReport, error) {
	reportsDirectory, err := engine.getReportsDirectory()
	if err != nil {
		return []common.PayoutReport{}, err
	}
	data, err := os.ReadFile(path.Join(reportsDirectory, payoutsObjectPath(runId)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []common.PayoutReport{}, reportNotFound(runId)
		}
		return []common.PayoutReport{}, err
	}
	return unmarshalPayouts(data)
}

// ReportPayouts overwrites the payouts file of every run present in reports
func (engine *FsReporter) ReportPayouts(ctx context.Context, reports []common.PayoutReport) error {
	if len(reports) == 0 {
		return nil
	}
	reportsDirectory, err := engine.getReportsDirectory()
	if err != nil {
		return err
	}

	byRun, runIds := groupByRun(reports)
	for _, runId := range runIds {
		targetFile := path.Join(reportsDirectory, payoutsObjectPath(runId))
		if err := os.MkdirAll(path.Dir(targetFile), 0700); err != nil {
			return err
		}
		csv, err := marshalPayouts(byRun[runId])
		if err != nil {
			return err
		}
		if err := os.WriteFile(targetFile, csv, 0644); err != nil {
			return err
		}
	}
	return nil
}

func (engine *FsReporter) ReportRunSummary(ctx context.Context, summary common.RunSummary) error {
	reportsDirectory, err := engine.getReportsDirectory()
	if err != nil {
		return err
	}
	targetFile := path.Join(reportsDirectory, summaryObjectPath(summary.RunId))
	if err := os.MkdirAll(path.Dir(targetFile), 0700); err != nil {
		return err
	}
	data, err := marshalSummary(summary)
	if err != nil {
		return err
	}
	return os.WriteFile(targetFile, data, 0644)
}

func (engine *FsReporter) GetExistingRunSummary(ctx context.Context, runId string) (*common.RunSummary, error) {
	reportsDirectory, err := engine.getReportsDirectory()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path.Join(reportsDirectory, summaryObjectPath(runId)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, reportNotFound(runId)
		}
		return nil, err
	}
	var summary common.RunSummary
	err = json.Unmarshal(data, &summary)
	return &summary, err
}
