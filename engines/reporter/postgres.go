package reporter_engines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

const (
	DuplicateKeyValue string = "23505"
)

var (
	ErrDuplicateKeyValue = errors.New("duplicate key value")

	tableNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

	payoutColumns = []string{
		"run_id", "batch_id", "position", "created_at", "recipient", "employee_name",
		"amount", "asset_code", "memo", "tx_hash", "success", "note",
	}
)

type postgresReporterConfiguration struct {
	ConnectionString string `json:"connection_string"`
	Table            string `json:"table"`
}

func parsePostgresConfiguration(configurationBytes []byte) (*postgresReporterConfiguration, error) {
	configuration := postgresReporterConfiguration{}
	if err := json.Unmarshal(configurationBytes, &configuration); err != nil {
		return nil, err
	}
	if configuration.ConnectionString == "" {
		return nil, errors.Join(constants.ErrReporterLoadFailed, errors.New("postgres reporter requires connection_string"))
	}
	if configuration.Table == "" {
		configuration.Table = constants.DEFAULT_REPORTS_TABLE
	}
	if !tableNameRegex.MatchString(configuration.Table) {
		return nil, errors.Join(constants.ErrReporterLoadFailed, fmt.Errorf("invalid table name '%s'", configuration.Table))
	}
	return &configuration, nil
}

func ValidatePostgresConfiguration(configurationBytes []byte) error {
	_, err := parsePostgresConfiguration(configurationBytes)
	return err
}

type PostgresReporter struct {
	pg          *pgxpool.Pool
	table       string
	pingTimeout time.Duration
	log         *slog.Logger
	options     *ReporterEngineOptions
}

func InitPostgresReporter(ctx context.Context, configurationBytes []byte, options *ReporterEngineOptions) (*PostgresReporter, error) {
	configuration, err := parsePostgresConfiguration(configurationBytes)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, configuration.ConnectionString)
	if err != nil {
		return nil, errors.Join(constants.ErrReporterLoadFailed, err)
	}
	if options == nil {
		options = &ReporterEngineOptions{}
	}
	reporter := &PostgresReporter{
		pg:          pool,
		table:       configuration.Table,
		pingTimeout: constants.DEFAULT_POSTGRES_PING_TIMEOUT * time.Second,
		log:         slog.With("component", "db"),
		options:     options,
	}
	if err := reporter.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(constants.ErrReporterLoadFailed, err)
	}
	if err := reporter.migrate(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(constants.ErrReporterLoadFailed, err)
	}
	return reporter, nil
}

func (p *PostgresReporter) GetId() string {
	return "PostgresReporter"
}

func (p *PostgresReporter) Ping(ctx context.Context) error {
	var err error
	for i := 1; i <= 3; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, p.pingTimeout)
		err = p.pg.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		p.log.Info("ping attempt was not successful", "attempt", i)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return err
}

func (p *PostgresReporter) payoutsTable() string {
	if p.options.DryRun {
		return p.table + "_dry"
	}
	return p.table
}

func (p *PostgresReporter) summariesTable() string {
	return p.payoutsTable() + "_summaries"
}

func (p *PostgresReporter) migrate(ctx context.Context) error {
	_, err := p.pg.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		run_id TEXT NOT NULL,
		batch_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		recipient TEXT NOT NULL,
		employee_name TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		asset_code TEXT NOT NULL,
		memo TEXT NOT NULL DEFAULT '',
		tx_hash TEXT NOT NULL DEFAULT '',
		success BOOLEAN NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, position)
	)`, pgx.Identifier{p.payoutsTable()}.Sanitize()))
	if err != nil {
		return err
	}
	_, err = p.pg.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		run_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		summary JSONB NOT NULL
	)`, pgx.Identifier{p.summariesTable()}.Sanitize()))
	return err
}

func toPayoutRows(reports []common.PayoutReport) [][]any {
	rows := make([][]any, len(reports))
	for i, report := range reports {
		rows[i] = []any{
			report.RunId, report.BatchId, i, report.Timestamp, report.Recipient, report.EmployeeName,
			report.Amount, report.AssetCode, report.Memo, report.TxHash, report.IsSuccess, report.Note,
		}
	}
	return rows
}

// ReportPayouts replaces the stored records of every run present in reports
func (p *PostgresReporter) ReportPayouts(ctx context.Context, reports []common.PayoutReport) error {
	if len(reports) == 0 {
		return nil
	}
	byRun, runIds := groupByRun(reports)

	tx, err := p.pg.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	table := p.payoutsTable()
	for _, runId := range runIds {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id = $1", pgx.Identifier{table}.Sanitize()), runId); err != nil {
			return fmt.Errorf("couldn't clear payouts of run %s: %w", runId, err)
		}
		rows := toPayoutRows(byRun[runId])
		p.log.Debug("COPY", "table", table, "rows", len(rows))
		inserted, err := tx.CopyFrom(ctx, pgx.Identifier{table}, payoutColumns, pgx.CopyFromRows(rows))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == DuplicateKeyValue {
				return ErrDuplicateKeyValue
			}
			return fmt.Errorf("couldn't persist payouts: %w", err)
		}
		if inserted != int64(len(rows)) {
			return fmt.Errorf("persist payouts of run %s: %d of %d rows inserted", runId, inserted, len(rows))
		}
	}
	return tx.Commit(ctx)
}

func (p *PostgresReporter) GetExistingReports(ctx context.Context, runId string) ([]common.PayoutReport, error) {
	rows, err := p.pg.Query(ctx, fmt.Sprintf(`SELECT run_id, batch_id, created_at, recipient, employee_name,
		amount, asset_code, memo, tx_hash, success, note FROM %s WHERE run_id = $1 ORDER BY position`,
		pgx.Identifier{p.payoutsTable()}.Sanitize()), runId)
	if err != nil {
		return []common.PayoutReport{}, err
	}
	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (common.PayoutReport, error) {
		var report common.PayoutReport
		err := row.Scan(&report.RunId, &report.BatchId, &report.Timestamp, &report.Recipient, &report.EmployeeName,
			&report.Amount, &report.AssetCode, &report.Memo, &report.TxHash, &report.IsSuccess, &report.Note)
		return report, err
	})
	if err != nil {
		return []common.PayoutReport{}, err
	}
	if len(reports) == 0 {
		return reports, reportNotFound(runId)
	}
	return reports, nil
}

func (p *PostgresReporter) ReportRunSummary(ctx context.Context, summary common.RunSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	_, err = p.pg.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (run_id, created_at, summary) VALUES ($1, $2, $3)
		ON CONFLICT (run_id) DO UPDATE SET created_at = EXCLUDED.created_at, summary = EXCLUDED.summary`,
		pgx.Identifier{p.summariesTable()}.Sanitize()), summary.RunId, summary.Timestamp, data)
	return err
}

func (p *PostgresReporter) Close() {
	p.pg.Close()
}
