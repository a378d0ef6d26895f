package reporter_engines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"google.golang.org/api/option"
)

type gcsReporterConfiguration struct {
	Bucket          string `json:"bucket"`
	Prefix          string `json:"prefix"`
	CredentialsFile string `json:"credentials_file"`
}

func parseGCSConfiguration(configurationBytes []byte) (*gcsReporterConfiguration, error) {
	configuration := gcsReporterConfiguration{}
	if err := json.Unmarshal(configurationBytes, &configuration); err != nil {
		return nil, err
	}
	if configuration.Bucket == "" {
		return nil, errors.Join(constants.ErrReporterLoadFailed, errors.New("gcs reporter requires bucket"))
	}
	return &configuration, nil
}

func ValidateGCSConfiguration(configurationBytes []byte) error {
	_, err := parseGCSConfiguration(configurationBytes)
	return err
}

type GCSReporter struct {
	client  *storage.Client
	bucket  string
	prefix  string
	options *ReporterEngineOptions
}

// InitGCSReporter uses the application default credentials unless
// credentials_file is configured.
func InitGCSReporter(ctx context.Context, configurationBytes []byte, options *ReporterEngineOptions) (*GCSReporter, error) {
	configuration, err := parseGCSConfiguration(configurationBytes)
	if err != nil {
		return nil, err
	}
	clientOptions := []option.ClientOption{}
	if configuration.CredentialsFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(configuration.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, errors.Join(constants.ErrReporterLoadFailed, fmt.Errorf("failed to create GCS client: %w", err))
	}
	if options == nil {
		options = &ReporterEngineOptions{}
	}
	return &GCSReporter{
		client:  client,
		bucket:  configuration.Bucket,
		prefix:  configuration.Prefix,
		options: options,
	}, nil
}

func (engine *GCSReporter) GetId() string {
	return "GCSReporter"
}

func (engine *GCSReporter) objectPath(name string) string {
	if engine.options.DryRun {
		return path.Join(engine.prefix, "dry", name)
	}
	return path.Join(engine.prefix, name)
}

func (engine *GCSReporter) readObject(ctx context.Context, objectPath string) ([]byte, error) {
	rc, err := engine.client.Bucket(engine.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (engine *GCSReporter) writeObject(ctx context.Context, objectPath string, data []byte, contentType string) error {
	w := engine.client.Bucket(engine.bucket).Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (engine *GCSReporter) GetExistingReports(ctx context.Context, runId string) ([]common.PayoutReport, error) {
	data, err := engine.readObject(ctx, engine.objectPath(payoutsObjectPath(runId)))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return []common.PayoutReport{}, reportNotFound(runId)
		}
		return []common.PayoutReport{}, err
	}
	return unmarshalPayouts(data)
}

func (engine *GCSReporter) ReportPayouts(ctx context.Context, reports []common.PayoutReport) error {
	if len(reports) == 0 {
		return nil
	}
	byRun, runIds := groupByRun(reports)
	for _, runId := range runIds {
		csvData, err := marshalPayouts(byRun[runId])
		if err != nil {
			return err
		}
		if err := engine.writeObject(ctx, engine.objectPath(payoutsObjectPath(runId)), csvData, "text/csv"); err != nil {
			return err
		}
	}
	return nil
}

func (engine *GCSReporter) ReportRunSummary(ctx context.Context, summary common.RunSummary) error {
	data, err := marshalSummary(summary)
	if err != nil {
		return err
	}
	return engine.writeObject(ctx, engine.objectPath(summaryObjectPath(summary.RunId)), data, "application/json")
}

func (engine *GCSReporter) Close() error {
	return engine.client.Close()
}
