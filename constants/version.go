package constants

const (
	CODENAME = "lumepay"
)

// overridden at build time through -ldflags
var VERSION = "0.1.0-dev"
