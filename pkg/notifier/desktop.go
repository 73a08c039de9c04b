package notifier

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedPlatform is returned when no desktop notification backend
// exists for the running OS.
var ErrUnsupportedPlatform = pkgerrors.New("desktop notifications are not supported on this platform")

// Runner runs an external command. Swapped out in tests.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return pkgerrors.Wrapf(err, "%s: %s", name, strings.TrimSpace(string(out)))
	}
	return nil
}

var _ Notifier = &DesktopNotifier{}

// DesktopNotifier posts notifications through the desktop notification
// service: osascript on macOS, notify-send on Linux.
type DesktopNotifier struct {
	GOOS string
	Run  Runner
}

// NewDesktopNotifier returns a DesktopNotifier for the running OS.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{GOOS: runtime.GOOS, Run: execRunner}
}

func (d *DesktopNotifier) Notify(n Notification) error {
	name, args, err := d.command(n)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"command": name,
		"kind":    n.Kind.String(),
	}).Trace("posting desktop notification")

	return pkgerrors.Wrap(d.Run(name, args...), "failed to post desktop notification")
}

// Clear is a no-op: neither backend can withdraw a posted notification
// without keeping a handle to it.
func (d *DesktopNotifier) Clear() error {
	return nil
}

func (d *DesktopNotifier) command(n Notification) (string, []string, error) {
	switch d.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification \"%s\" with title \"%s\" subtitle \"%s\"",
			escapeAppleScript(n.Content), escapeAppleScript(n.Title), escapeAppleScript(n.Ticker))
		if n.Audible {
			script += " sound name \"default\""
		}
		return "/usr/bin/osascript", []string{"-e", script}, nil
	case "linux":
		urgency := "normal"
		if n.Urgent() {
			urgency = "critical"
		} else if !n.Audible {
			urgency = "low"
		}
		args := []string{"-a", "battnotify", "-u", urgency}
		if n.Sticky {
			args = append(args, "-t", "0")
		}
		args = append(args, n.Title, n.Content)
		return "notify-send", args, nil
	default:
		return "", nil, ErrUnsupportedPlatform
	}
}

// escapeAppleScript escapes a string for use inside an AppleScript string
// literal.
func escapeAppleScript(in string) string {
	out := strings.Builder{}
	for _, r := range in {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
