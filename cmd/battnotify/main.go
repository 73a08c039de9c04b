package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/battnotify/pkg/client"
	"github.com/charlie0129/battnotify/pkg/version"
)

var (
	logLevel        = "info"
	unixSocketPath  = "/var/run/battnotify.sock"
	configPath      = "/etc/battnotify.json"
	healthStatePath = "/var/lib/battnotify/health.json"
)

var apiClient *client.Client

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
		gInstallation,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: battnotify daemon is not running")
		fmt.Fprintln(os.Stderr, "Install it with 'sudo battnotify install' or run 'sudo battnotify daemon' in the foreground.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with '--always-allow-non-root-access' to grant permissions to your user")
	}
}

// getVersion returns the client and daemon versions.
func getVersion() (string, string, error) {
	daemonVersion, err := apiClient.GetVersion()
	if err != nil {
		return version.Version, "", err
	}
	return version.Version, daemonVersion, nil
}

func main() {
	// battnotify only polls the battery, it does not need many CPUs.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(2)
	}

	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

// needsDaemon reports whether cmd talks to the daemon.
func needsDaemon(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "daemon", "version", "simulate", "install", "uninstall", "help", "completion":
		return false
	}
	return true
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battnotify",
		Short: "battnotify notifies you about your battery level and tracks battery wear",
		Long: `battnotify notifies you when your battery runs low or finishes charging, and estimates battery health from the charge cycles it observes.

Website: https://github.com/charlie0129/battnotify
Report issues: https://github.com/charlie0129/battnotify/issues`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			if !needsDaemon(cmd) {
				return nil
			}

			if clientVersion, daemonVersion, err := getVersion(); err == nil {
				if daemonVersion != clientVersion {
					logrus.WithFields(logrus.Fields{
						"clientVersion": clientVersion,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. battnotify may not work as expected. Restart the daemon after upgrading.")
				}
			} else if errors.Is(err, client.ErrNotFound) {
				logrus.Error("battnotify daemon is too old to report its version. Restart the daemon after upgrading.")
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "battnotify daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewStatusCommand(),
		NewHealthCommand(),
		NewWarningLevelCommand(),
		NewCriticalLevelCommand(),
		NewAlertEveryTickCommand(),
		NewWarningNotifyCommand(),
		NewFullNotifyCommand(),
		NewStickyCommand(),
		NewAlertTimeCommand(),
		NewEventsCommand(),
		NewSimulateCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
