package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "health",
		Short:   "Show or reset the estimated battery health",
		GroupID: gBasic,
		Long: `Show or reset the estimated battery health.

battnotify counts a charge cycle every time the battery drops to 20% or below and is then charged to 95% or above. The health estimate is derived from that count. It is an estimate, not a measurement.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the estimated battery health",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				h, err := apiClient.GetHealth()
				if err != nil {
					return fmt.Errorf("failed to get battery health: %w", err)
				}
				printHealth(cmd, h)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget all charge cycles counted so far",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := apiClient.ResetHealth()
				if err != nil {
					return fmt.Errorf("failed to reset battery health: %w", err)
				}
				logResponse(ret)
				logrus.Infof("successfully reset battery health history")
				return nil
			},
		},
	)

	return cmd
}
