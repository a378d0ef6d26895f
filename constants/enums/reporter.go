package enums

type EReporterKind string

const (
	REPORTER_KIND_FS       EReporterKind = "fs"
	REPORTER_KIND_STDIO    EReporterKind = "stdio"
	REPORTER_KIND_POSTGRES EReporterKind = "postgres"
	REPORTER_KIND_GCS      EReporterKind = "gcs"
)

var (
	SUPPORTED_REPORTER_KINDS = []EReporterKind{
		REPORTER_KIND_FS,
		REPORTER_KIND_STDIO,
		REPORTER_KIND_POSTGRES,
		REPORTER_KIND_GCS,
	}
)
