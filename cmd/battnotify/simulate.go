package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/health"
	"github.com/charlie0129/battnotify/pkg/monitor"
	"github.com/charlie0129/battnotify/pkg/notifier"
	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/utils/units"
)

// parseReadings parses percentage,charging,full,source lines. A header line
// and lines starting with # are skipped. full and source are optional.
func parseReadings(r io.Reader) ([]notify.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var snapshots []notify.Snapshot
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to read readings")
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "percentage") {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected at least percentage,charging", line)
		}

		pct, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid percentage: %v", line, err)
		}
		s := notify.Snapshot{Percentage: units.Clamp(pct, 0, 100)}

		s.Charging, err = strconv.ParseBool(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid charging flag: %v", line, err)
		}
		if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
			s.Full, err = strconv.ParseBool(strings.TrimSpace(record[2]))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid full flag: %v", line, err)
			}
		}

		if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
			if err := s.Source.UnmarshalText([]byte(strings.TrimSpace(record[3]))); err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
		} else if s.Charging {
			s.Source = notify.SourceOther
		}

		snapshots = append(snapshots, s)
	}

	return snapshots, nil
}

// printNotifier prints notifications instead of showing them.
type printNotifier struct {
	cmd *cobra.Command
}

func (p *printNotifier) Notify(n notifier.Notification) error {
	p.cmd.Printf("    notify: %s: %s\n", bold("%s", n.Title), n.Content)
	return nil
}

func (p *printNotifier) Clear() error {
	p.cmd.Println("    clear notifications")
	return nil
}

// replaySource satisfies powerinfo.Source for the monitor; simulate feeds
// snapshots through Process directly.
type replaySource struct{}

func (replaySource) Read() (notify.Snapshot, error) {
	return notify.Snapshot{}, pkgerrors.New("replay source is not readable")
}

func NewSimulateCommand() *cobra.Command {
	var (
		start string
		step  time.Duration
	)

	cmd := &cobra.Command{
		Use:     "simulate [file]",
		Short:   "Replay battery readings from a CSV file without the daemon",
		GroupID: gAdvanced,
		Long: `Replay battery readings from a CSV file without the daemon.

Each line is 'percentage,charging,full,source', e.g. '18,true,false,AC'. full and source are optional. Source is one of battery, AC, USB, wireless, charger. Use '-' to read from stdin.

Notification settings are read from the config file (--config), so you can check how your thresholds behave.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			readings, err := parseReadings(in)
			if err != nil {
				return err
			}

			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			now := time.Now()
			if start != "" {
				now, err = time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("invalid start time: %v", err)
				}
			}

			mon := monitor.New(conf, replaySource{}, &printNotifier{cmd: cmd}, &health.MemoryStore{}, nil)
			for i, s := range readings {
				state := "discharging"
				if s.Full {
					state = "full"
				} else if s.Charging {
					state = "charging"
				}
				cmd.Printf("%s %3d%% %s on %s\n", now.Format(time.Kitchen), s.Percentage, state, s.Source)

				out := mon.Process(s, now)
				if out.ChargeChanged {
					cmd.Printf("    charge session: started=%t source=%s healthy=%t\n", out.Charge.Started, out.Charge.Source, out.Charge.Healthy)
				}
				if out.Transition != health.TransitionNone {
					cmd.Printf("    charge cycle %s\n", out.Transition)
				}

				if i < len(readings)-1 {
					now = now.Add(step)
				}
			}

			cmd.Println()
			cmd.Println(bold("Battery health (estimated):"))
			h := mon.HealthSummary(now)
			printHealth(cmd, &h)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&start, "start", "", "Time of the first reading (RFC3339), defaults to now")
	f.DurationVar(&step, "step", time.Minute, "Time between readings")

	return cmd
}
