package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hashicorp/go-version"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/utils"
)

type versionInfo struct {
	Version string `json:"tag_name"`
}

func requireConfirmation(msg string) error {
	proceed := false
	if utils.IsTty() {
		prompt := &survey.Confirm{
			Message: msg,
		}
		if err := survey.AskOne(prompt, &proceed); err != nil {
			return errors.Join(constants.ErrUserNotConfirmed, err)
		}
	}
	if !proceed {
		return constants.ErrUserNotConfirmed
	}
	return nil
}

func assertRequireConfirmation(msg string) {
	assertRunWithParamAndErrorMessage(requireConfirmation, msg, common.EXIT_OPERATION_CANCELED, "not confirmed")
}

func isNewerVersion(latest string, current string) (bool, error) {
	lv, err := version.NewVersion(latest)
	if err != nil {
		return false, err
	}
	cv, err := version.NewVersion(current)
	if err != nil {
		return false, err
	}
	return lv.GreaterThan(cv), nil
}

func checkForNewVersionAvailable() (bool, string) {
	slog.Debug("checking for new version")
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", constants.LUMEPAY_REPOSITORY))
	if err != nil {
		slog.Debug("failed to check latest version", "error", err.Error())
		return false, ""
	}
	defer resp.Body.Close()

	var info versionInfo
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		slog.Debug("failed to check latest version", "error", err.Error())
		return false, ""
	}
	if info.Version == "" {
		slog.Debug("failed to check latest version", "error", "empty tag")
		return false, ""
	}

	newer, err := isNewerVersion(info.Version, constants.VERSION)
	if err != nil {
		slog.Debug("failed to check latest version", "error", err.Error())
		return false, ""
	}
	if !newer {
		slog.Debug("running the latest version")
		return false, ""
	}
	slog.Info("new version available", "version", info.Version)
	return true, info.Version
}

func promptIfNewVersionAvailable() {
	if available, latestVersion := checkForNewVersionAvailable(); available {
		err := requireConfirmation(fmt.Sprintf("You are not running the latest version of lumepay (new version: '%s', current version: '%s').\n Do you want to continue anyway?", latestVersion, constants.VERSION))
		if errors.Is(err, constants.ErrUserNotConfirmed) {
			slog.Info("new version available", "url", fmt.Sprintf("https://github.com/%s/releases", constants.LUMEPAY_REPOSITORY))
			os.Exit(common.EXIT_OPERATION_CANCELED)
		}
	}
}
