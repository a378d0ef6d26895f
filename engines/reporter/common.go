package reporter_engines

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/gocarina/gocsv"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/samber/lo"
)

type ReporterEngineOptions struct {
	DryRun bool
}

func groupByRun(reports []common.PayoutReport) (map[string][]common.PayoutReport, []string) {
	runIds := lo.Uniq(lo.Map(reports, func(report common.PayoutReport, _ int) string {
		return report.RunId
	}))
	return lo.GroupBy(reports, func(report common.PayoutReport) string {
		return report.RunId
	}), runIds
}

func payoutsObjectPath(runId string) string {
	return path.Join(runId, constants.PAYOUT_REPORT_FILE_NAME)
}

func summaryObjectPath(runId string) string {
	return path.Join(runId, constants.REPORT_SUMMARY_FILE_NAME)
}

func marshalPayouts(reports []common.PayoutReport) ([]byte, error) {
	return gocsv.MarshalBytes(reports)
}

func unmarshalPayouts(data []byte) ([]common.PayoutReport, error) {
	reports := make([]common.PayoutReport, 0)
	if err := gocsv.UnmarshalBytes(data, &reports); err != nil {
		return []common.PayoutReport{}, err
	}
	return reports, nil
}

func marshalSummary(summary common.RunSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "\t")
}

func reportNotFound(runId string) error {
	return errors.Join(constants.ErrReportNotFound, fmt.Errorf("run %s", runId))
}
