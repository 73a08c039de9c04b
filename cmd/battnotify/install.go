package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	daemonutils "github.com/charlie0129/battnotify/pkg/utils/daemon"
)

// daemonArgs are the flags the installed service passes to "battnotify daemon".
func daemonArgs(allowNonRootAccess bool) []string {
	args := []string{
		"--config=" + configPath,
		"--daemon-socket=" + unixSocketPath,
		"--health-state=" + healthStatePath,
	}
	if allowNonRootAccess {
		args = append(args, "--always-allow-non-root-access")
	}
	return args
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install battnotify daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Install battnotify daemon to launchd (macOS) or systemd (Linux).

This makes battnotify run in the background and automatically start on boot. You must run this command as root.

By default, only root user is allowed to access the daemon. Use --allow-non-root-access so you don't have to use sudo every time you change a threshold.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exePath, err := os.Executable()
			if err != nil {
				return pkgerrors.Wrap(err, "failed to get the path to the current executable")
			}

			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the battnotify daemon.")
			} else {
				logrus.Info("only root user is allowed to access the battnotify daemon.")
			}

			err = daemonutils.NewInstaller().Install(exePath, daemonArgs(allowNonRootAccess))
			if err != nil {
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %w", err)
			}

			logrus.Infof("installation succeeded")

			cmd.Printf("The service will use the current binary (%s) at startup so please make sure you do not move it. Once it is moved or deleted, run `battnotify install' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access battnotify daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall battnotify daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Uninstall battnotify daemon from launchd (macOS) or systemd (Linux).

You must run this command as root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.NewInstaller().Uninstall()
			if err != nil {
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %w", err)
			}

			cmd.Println("successfully uninstalled")
			cmd.Printf("Your config is kept in %s and the charge cycle history in %s. Remove them manually for a complete uninstall.\n", configPath, healthStatePath)

			return nil
		},
	}

	return cmd
}
