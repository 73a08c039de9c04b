package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Runner runs an external command. Swapped out in tests.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Installer registers the daemon with the service manager of the running
// OS: launchd on macOS, systemd on Linux.
type Installer struct {
	GOOS string
	// Root is prepended to every file path. Empty means "/".
	Root string
	Run  Runner
	// Chown is skipped when false, for unprivileged tests.
	Chown bool
}

// NewInstaller returns an Installer for the running OS.
func NewInstaller() *Installer {
	return &Installer{GOOS: runtime.GOOS, Run: execRunner, Chown: true}
}

// UnitPath is where the service definition is written.
func (i *Installer) UnitPath() (string, error) {
	switch i.GOOS {
	case "darwin":
		return filepath.Join(i.root(), "Library", "LaunchDaemons", launchdLabel+".plist"), nil
	case "linux":
		return filepath.Join(i.root(), "etc", "systemd", "system", systemdName), nil
	default:
		return "", fmt.Errorf("service installation is not supported on %s", i.GOOS)
	}
}

func (i *Installer) root() string {
	if i.Root == "" {
		return "/"
	}
	return i.Root
}

// Install writes the service definition for exePath and starts it. args are
// appended to the daemon command line.
func (i *Installer) Install(exePath string, args []string) error {
	exePath, err := filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the executable: %w", err)
	}

	unitPath, err := i.UnitPath()
	if err != nil {
		return err
	}

	logrus.Infof("executable path: %s", exePath)

	var content string
	if i.GOOS == "darwin" {
		content = renderPlist(exePath, args)
	} else {
		content = renderSystemdUnit(exePath, args)
	}

	logrus.Infof("writing service definition to %s", unitPath)

	err = os.MkdirAll(filepath.Dir(unitPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(unitPath), err)
	}

	_, err = os.Stat(unitPath)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	err = os.WriteFile(unitPath, []byte(content), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	if i.Chown {
		err = os.Chown(unitPath, 0, 0)
		if err != nil {
			return fmt.Errorf("failed to chown %s: %w", unitPath, err)
		}
	}

	logrus.Infof("starting battnotify")

	if i.GOOS == "darwin" {
		err = i.Run("/bin/launchctl", "load", unitPath)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", unitPath, err)
		}
		return nil
	}

	err = i.Run("systemctl", "daemon-reload")
	if err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}
	err = i.Run("systemctl", "enable", "--now", systemdName)
	if err != nil {
		return fmt.Errorf("failed to enable %s: %w", systemdName, err)
	}

	return nil
}
