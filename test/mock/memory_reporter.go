package mock

import (
	"context"
	"sync"

	"github.com/lumepay/lumepay/common"
)

type MemoryReporter struct {
	mtx       sync.Mutex
	Reports   map[string][]common.PayoutReport
	Summaries []common.RunSummary
}

func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{
		Reports:   map[string][]common.PayoutReport{},
		Summaries: []common.RunSummary{},
	}
}

func (engine *MemoryReporter) GetId() string {
	return "MemoryReporter"
}

func (engine *MemoryReporter) GetExistingReports(ctx context.Context, runId string) ([]common.PayoutReport, error) {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	return append([]common.PayoutReport{}, engine.Reports[runId]...), nil
}

// ReportPayouts replaces the stored reports of every run present in reports
func (engine *MemoryReporter) ReportPayouts(ctx context.Context, reports []common.PayoutReport) error {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	byRun := map[string][]common.PayoutReport{}
	for _, report := range reports {
		byRun[report.RunId] = append(byRun[report.RunId], report)
	}
	for runId, runReports := range byRun {
		engine.Reports[runId] = runReports
	}
	return nil
}

func (engine *MemoryReporter) ReportRunSummary(ctx context.Context, summary common.RunSummary) error {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	engine.Summaries = append(engine.Summaries, summary)
	return nil
}
