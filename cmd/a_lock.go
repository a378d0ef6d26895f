package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"code.cloudfoundry.org/filelock"
	"github.com/lumepay/lumepay/state"
)

type lockResult struct {
	unlock func() error
	err    error
}

func lockSourceAccount(address string, resultChan chan<- lockResult) {
	lockFileDir := state.Global.GetLocksDirectory()
	if err := os.MkdirAll(lockFileDir, 0700); err != nil {
		slog.Debug("failed to create lock file directory", "error", err.Error())
		resultChan <- lockResult{err: err}
		return
	}
	lockFilePath := path.Join(lockFileDir, fmt.Sprintf("%s.lock", address))
	lock := filelock.NewLocker(lockFilePath)

	f, err := lock.Open()
	if err != nil {
		slog.Debug("failed to lock file", "error", err.Error())
		resultChan <- lockResult{err: err}
		return
	}
	slog.Debug("locked file", "file", lockFilePath)

	resultChan <- lockResult{unlock: func() error {
		err := f.Close()
		os.Remove(lockFilePath)
		return err
	}}
}

// lockSource makes sure only one run pays from the source account at a time,
// concurrent runs would race on the account sequence number.
func lockSource(ctx context.Context, address string) (unlock func() error, err error) {
	resultChan := make(chan lockResult, 1)
	slog.Debug("locking source account", "address", address)
	go lockSourceAccount(address, resultChan)

	select {
	case <-ctx.Done():
		slog.Debug("context canceled")
		go func() {
			// the lock may still be acquired after we gave up on it
			if result := <-resultChan; result.unlock != nil {
				result.unlock()
			}
		}()
		return nil, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return nil, result.err
		}
		return result.unlock, nil
	}
}

func lockSourceWithTimeout(timeout time.Duration, address string) (unlock func() error, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return lockSource(ctx, address)
}
