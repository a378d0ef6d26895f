package state

import (
	"os"
	"path"

	"github.com/lumepay/lumepay/constants"
)

var (
	Global           State
	CONFIG_FILE_NAME = "config.hjson"
)

type StateInitOptions struct {
	WantsJsonOutput       bool
	InjectedConfiguration *string
	SignerOverride        string
	Debug                 bool
}

type State struct {
	workingDirectory         string
	wantsJsonOutput          bool
	injectedConfiguration    []byte
	hasInjectedConfiguration bool
	signerOverride           string
	debug                    bool
}

func Init(workingDirectory string, options StateInitOptions) error {
	injectedConfiguration, hasInjectedConfiguration := []byte{}, false
	if options.InjectedConfiguration != nil {
		injectedConfiguration, hasInjectedConfiguration = []byte(*options.InjectedConfiguration), true
	}
	if workingDirectory == "" {
		workingDirectory = "."
	}
	if _, err := os.Stat(workingDirectory); err != nil {
		return err
	}
	Global = State{
		workingDirectory:         workingDirectory,
		injectedConfiguration:    injectedConfiguration,
		wantsJsonOutput:          options.WantsJsonOutput,
		hasInjectedConfiguration: hasInjectedConfiguration,
		signerOverride:           options.SignerOverride,
		debug:                    options.Debug,
	}
	return nil
}

func (state *State) GetWorkingDirectory() string {
	return state.workingDirectory
}

func (state *State) GetWantsOutputJson() bool {
	return state.wantsJsonOutput
}

func (state *State) GetInjectedConfiguration() (bool, []byte) {
	return state.hasInjectedConfiguration, state.injectedConfiguration
}

func (state *State) GetConfigurationFilePath() string {
	configurationFilePath := os.Getenv("CONFIGURATION_FILE")
	if configurationFilePath != "" {
		return configurationFilePath
	}
	return path.Join(state.GetWorkingDirectory(), CONFIG_FILE_NAME)
}

func (state *State) GetReportsDirectory() string {
	return path.Join(state.GetWorkingDirectory(), constants.REPORTS_DIRECTORY)
}

func (state *State) GetLocksDirectory() string {
	return path.Join(state.GetWorkingDirectory(), constants.LOCKS_DIRECTORY)
}

// GetPrivateKeyFilePath resolves relative key files against the working directory
func (state *State) GetPrivateKeyFilePath(keyFile string) string {
	if keyFile == "" {
		keyFile = constants.DEFAULT_KEY_FILE_NAME
	}
	if path.IsAbs(keyFile) {
		return keyFile
	}
	return path.Join(state.GetWorkingDirectory(), keyFile)
}

// GetSignerOverride returns the signer mode or "key:"/"remote:" value passed on the command line
func (state *State) GetSignerOverride() string {
	return state.signerOverride
}

func (state *State) GetIsInDebugMode() bool {
	return state.debug
}
