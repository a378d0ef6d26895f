package reporter_engines

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lumepay/lumepay/common"
)

type StdioReporter struct {
	output io.Writer
}

func NewStdioReporter(output io.Writer) *StdioReporter {
	if output == nil {
		output = os.Stdout
	}
	return &StdioReporter{
		output: output,
	}
}

func (engine *StdioReporter) GetId() string {
	return "StdioReporter"
}

func (engine *StdioReporter) GetExistingReports(ctx context.Context, runId string) ([]common.PayoutReport, error) {
	return []common.PayoutReport{}, reportNotFound(runId)
}

type PayoutsReport struct {
	Payouts []common.PayoutReport `json:"payouts"`
}

func (engine *StdioReporter) print(data any) error {
	serialized, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(engine.output, string(serialized))
	return err
}

func (engine *StdioReporter) ReportPayouts(ctx context.Context, reports []common.PayoutReport) error {
	return engine.print(PayoutsReport{Payouts: reports})
}

type RunSummaryReport struct {
	RunSummary common.RunSummary `json:"run_summary"`
}

func (engine *StdioReporter) ReportRunSummary(ctx context.Context, summary common.RunSummary) error {
	return engine.print(RunSummaryReport{RunSummary: summary})
}
