package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battnotify/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewWarningLevelCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "warning-level [percentage]",
		Short:   "Set the low battery warning level",
		GroupID: gBasic,
		Long: `Set the low battery warning level.

This is a percentage from 1 to 100 and must be above the critical level. When the battery discharges to this level, you get a single warning notification.`,
		RunE: func(_ *cobra.Command, args []string) error {
			level, err := parseIntArg(args, "warning level")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetWarningLevel(level)
			if err != nil {
				return fmt.Errorf("failed to set warning level: %w", err)
			}
			logResponse(ret)

			logrus.Infof("successfully set warning level to %d%%", level)

			return nil
		},
	}
}

func NewCriticalLevelCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "critical-level [percentage]",
		Short:   "Set the critical battery level",
		GroupID: gBasic,
		Long: `Set the critical battery level.

This is a percentage from 1 to 100 and must be below the warning level. When the battery discharges to this level, you get a critical notification. See 'battnotify alert-every-tick' to repeat it on every percent drop.`,
		RunE: func(_ *cobra.Command, args []string) error {
			level, err := parseIntArg(args, "critical level")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetCriticalLevel(level)
			if err != nil {
				return fmt.Errorf("failed to set critical level: %w", err)
			}
			logResponse(ret)

			logrus.Infof("successfully set critical level to %d%%", level)

			return nil
		},
	}
}
