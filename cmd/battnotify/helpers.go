package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

func logResponse(ret string) {
	if ret != "" {
		logrus.Infof("daemon responded: %s", ret)
	}
}

func newEnableDisableCommand(
	use, short, long string,
	setFunc func(bool) (string, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		GroupID: gAdvanced,
	}

	sub := func(enable bool) *cobra.Command {
		verb, title := "disable", "Disable "
		if enable {
			verb, title = "enable", "Enable "
		}
		return &cobra.Command{
			Use:   verb,
			Short: title + use,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := setFunc(enable)
				if err != nil {
					return fmt.Errorf("failed to %s %s: %w", verb, use, err)
				}
				logResponse(ret)
				logrus.Infof("successfully %sd %s", verb, use)
				return nil
			},
		}
	}

	cmd.AddCommand(sub(true), sub(false))

	return cmd
}
