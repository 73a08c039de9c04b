package daemon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
)

// Uninstall stops the service and removes its definition. A missing
// definition is not an error.
func (i *Installer) Uninstall() error {
	unitPath, err := i.UnitPath()
	if err != nil {
		return err
	}

	logrus.Infof("stopping battnotify")

	if i.GOOS == "darwin" {
		err = i.Run("/bin/launchctl", "unload", unitPath)
		if err != nil {
			return fmt.Errorf("failed to unload %s: %w. Are you root?", unitPath, err)
		}
	} else {
		err = i.Run("systemctl", "disable", "--now", systemdName)
		if err != nil {
			return fmt.Errorf("failed to disable %s: %w. Are you root?", systemdName, err)
		}
	}

	logrus.Infof("removing service definition")

	err = os.Remove(unitPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to remove %s: %w. Are you root?", unitPath, err)
	}

	if i.GOOS == "linux" {
		if err := i.Run("systemctl", "daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}
	}

	return nil
}
