package utils

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/core/preflight"
	"github.com/samber/lo"
)

func columnsAsInterfaces[T any](row []T) []any {
	return lo.Map(row, func(c T, _ int) any {
		return c
	})
}

func fillRow[T any](val T, headers []string) []any {
	return lo.Map(headers, func(_ string, _ int) any {
		return val
	})
}

func replaceZeroFields[T comparable](items []T, value T) []T {
	var zero T
	for i, item := range items {
		if item == zero {
			items[i] = value
		}
	}
	return items
}

func newTable(header string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetOutputMirror(os.Stdout)
	if header != "" {
		t.SetTitle(header)
		t.Style().Title.Align = text.AlignCenter
	}
	return t
}

func formatTotals(totals map[string]string) string {
	assets := lo.Keys(totals)
	slices.Sort(assets)
	return strings.Join(lo.Map(assets, func(asset string, _ int) string {
		return fmt.Sprintf("%s %s", totals[asset], asset)
	}), ", ")
}

func formatSuccess(success bool) string {
	if success {
		return color.GreenString("yes")
	}
	return color.RedString("no")
}

func appendPrintables[T TablePrintable](t table.Writer, headers []string, items []T) {
	t.AppendHeader(columnsAsInterfaces(headers))
	for _, item := range items {
		t.AppendRow(columnsAsInterfaces(replaceZeroFields(item.ToTableRowData(), "-")))
	}
}

func PrintRecipients(recipients []common.PaymentRecipient, header string) {
	t := newTable(header)
	var empty common.PaymentRecipient
	headers := empty.GetTableHeaders()
	if len(recipients) == 0 {
		t.AppendRow(fillRow("No recipients", headers), table.RowConfig{AutoMerge: true})
		t.Render()
		return
	}
	appendPrintables(t, headers, lo.ToSlicePtr(recipients))
	t.AppendSeparator()
	totals := fmt.Sprintf("Total (%d): %s", len(recipients), formatTotals(common.SumAmountsByAsset(recipients)))
	t.AppendFooter(fillRow(totals, headers), table.RowConfig{AutoMerge: true})
	t.Render()
}

func PrintCostEstimate(estimate *common.CostEstimate, header string) {
	t := newTable(header)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}, {Number: 2, Align: text.AlignRight}})
	assets := lo.Keys(estimate.TotalAmount)
	slices.Sort(assets)
	for _, asset := range assets {
		t.AppendRow(table.Row{fmt.Sprintf("Total %s", strings.SplitN(asset, ":", 2)[0]), estimate.TotalAmount[asset]})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Transactions", estimate.NumberOfTransactions})
	t.AppendRow(table.Row{"Estimated Fees (XLM)", estimate.EstimatedFees})
	t.AppendRow(table.Row{"Max Network Fee (stroops)", estimate.MaxNetworkFeeStroops})
	t.Render()
}

func PrintValidationErrors(errors []string, header string) {
	t := newTable(header)
	t.AppendHeader(table.Row{"n.", "Problem"})
	for i, e := range errors {
		t.AppendRow(table.Row{i + 1, e})
	}
	t.Render()
}

func PrintDestinationIssues(issues []preflight.DestinationIssue, header string) {
	t := newTable(header)
	t.AppendHeader(table.Row{"Recipient", "Name", "Address", "Asset", "Issue"})
	if len(issues) == 0 {
		t.AppendRow(table.Row{"all destinations can receive their payments", "", "", "", ""}, table.RowConfig{AutoMerge: true})
	}
	for _, issue := range issues {
		t.AppendRow(table.Row{
			issue.Index + 1,
			lo.CoalesceOrEmpty(issue.Recipient.EmployeeName, "-"),
			common.ShortenAddress(issue.Recipient.Address),
			issue.Recipient.AssetCode,
			common.DescribeError(issue.Err),
		})
	}
	t.Render()
}

func PrintBatchResults(results []common.BatchResult, header string, explorerUrl string) {
	if len(results) == 0 {
		return
	}
	t := newTable(header)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}, {Number: 2, Align: text.AlignRight}})
	t.AppendHeader(table.Row{"Batch", "Recipients", "Success", "Reference"})
	for _, result := range results {
		reference := GetTxReference(result.TransactionHash, explorerUrl)
		if !result.Success {
			reference = result.Error
		}
		t.AppendRow(table.Row{result.Id, len(result.Recipients), formatSuccess(result.Success), reference})
	}
	t.Render()
}

func PrintPayoutReports(reports []common.PayoutReport, header string) {
	t := newTable(header)
	var empty common.PayoutReport
	appendPrintables(t, empty.GetTableHeaders(), lo.ToSlicePtr(reports))
	t.Render()
}

func PrintRunSummary(summary *common.RunSummary, header string, explorerUrl string) {
	t := newTable(header)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}, {Number: 2, Align: text.AlignRight}})
	t.AppendRow(table.Row{"Run", summary.RunId})
	t.AppendRow(table.Row{"Network", summary.Network})
	t.AppendRow(table.Row{"Source Account", summary.SourceAccount})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Recipients", summary.TotalRecipients})
	t.AppendRow(table.Row{"Paid", summary.PaidRecipients})
	t.AppendRow(table.Row{"Failed", summary.FailedRecipients})
	t.AppendRow(table.Row{"Batches", summary.TotalBatches})
	t.AppendRow(table.Row{"Failed Batches", summary.FailedBatches})
	t.AppendRow(table.Row{"Paid Totals", lo.CoalesceOrEmpty(formatTotals(summary.PaidTotals), "-")})
	t.AppendRow(table.Row{"Success", formatSuccess(summary.OverallSuccess)})
	if len(summary.TransactionIds) > 0 {
		t.AppendSeparator()
		for _, txId := range summary.TransactionIds {
			t.AppendRow(table.Row{"Transaction", GetTxReference(txId, explorerUrl)})
		}
	}
	t.Render()
}

func IsTty() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
