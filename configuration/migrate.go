package configuration

import (
	"errors"
	"fmt"
	"os"

	"github.com/hjson/hjson-go/v4"
	"github.com/lumepay/lumepay/common"
	lumepay_configuration "github.com/lumepay/lumepay/configuration/v"
	"github.com/lumepay/lumepay/constants"
)

type LatestConfigurationType = lumepay_configuration.ConfigurationV0

const LATEST_CONFIGURATION_VERSION = uint(0)

func WriteConfiguration(configurationFilePath string, configuration LatestConfigurationType) error {
	encoderOptions := hjson.DefaultOptions()
	encoderOptions.IndentBy = "\t"
	marshaled, err := hjson.MarshalWithOptions(configuration, encoderOptions)
	if err != nil {
		return err
	}
	return os.WriteFile(configurationFilePath, marshaled, 0600)
}

func Migrate(sourceBytes []byte, versionInfo *common.ConfigurationVersionInfo) (*LatestConfigurationType, error) {
	if versionInfo.Version != nil && *versionInfo.Version > LATEST_CONFIGURATION_VERSION {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, fmt.Errorf("unsupported configuration version %d", *versionInfo.Version))
	}

	/* here goes future migrations */

	configuration := lumepay_configuration.GetDefaultV0()
	if err := hjson.Unmarshal(sourceBytes, &configuration); err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}
	configuration.SourceBytes = sourceBytes
	return &configuration, nil
}
