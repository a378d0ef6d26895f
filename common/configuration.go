package common

type ConfigurationVersionInfo struct {
	Version *uint `json:"lumepay_config_version,omitempty"`
}
