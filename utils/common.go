package utils

import (
	"context"
	"time"
)

type TablePrintable interface {
	GetTableHeaders() []string
	ToTableRowData() []string
}

func SleepContext(ctx context.Context, delay time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}
