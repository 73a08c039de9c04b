package daemon

import (
	"strings"
)

const (
	launchdLabel = "cc.chlc.battnotify"
	systemdName  = "battnotify.service"
)

const launchDaemonPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>cc.chlc.battnotify</string>
    <key>ProgramArguments</key>
    <array>
        <string>/path/to/battnotify</string>
        <string>daemon</string>
        <string>--log-level=info</string>
__EXTRA_ARGS__    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <true/>
    <key>StandardOutPath</key>
    <string>/tmp/battnotify.log</string>
    <key>StandardErrorPath</key>
    <string>/tmp/battnotify.log</string>
</dict>
</plist>
`

const systemdUnitTemplate = `[Unit]
Description=battnotify battery notification daemon
After=multi-user.target

[Service]
Type=simple
ExecStart=/path/to/battnotify daemon --log-level=info__EXTRA_ARGS__
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`

// renderPlist fills the launchd template. Extra daemon flags become one
// <string> element each.
func renderPlist(exePath string, args []string) string {
	var extra strings.Builder
	for _, a := range args {
		extra.WriteString("        <string>")
		extra.WriteString(xmlEscape(a))
		extra.WriteString("</string>\n")
	}
	out := strings.ReplaceAll(launchDaemonPlistTemplate, "/path/to/battnotify", xmlEscape(exePath))
	return strings.ReplaceAll(out, "__EXTRA_ARGS__", extra.String())
}

func renderSystemdUnit(exePath string, args []string) string {
	var extra strings.Builder
	for _, a := range args {
		extra.WriteByte(' ')
		extra.WriteString(a)
	}
	out := strings.ReplaceAll(systemdUnitTemplate, "/path/to/battnotify", exePath)
	return strings.ReplaceAll(out, "__EXTRA_ARGS__", extra.String())
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	return r.Replace(s)
}
