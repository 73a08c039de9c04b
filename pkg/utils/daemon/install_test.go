package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) run(name string, args ...string) error {
	r.calls = append(r.calls, strings.Join(append([]string{name}, args...), " "))
	return r.err
}

func TestInstallDarwin(t *testing.T) {
	rec := &recorder{}
	i := &Installer{GOOS: "darwin", Root: t.TempDir(), Run: rec.run}

	require.NoError(t, i.Install("/usr/local/bin/battnotify", []string{"--always-allow-non-root-access"}))

	p, err := i.UnitPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(i.Root, "Library/LaunchDaemons/cc.chlc.battnotify.plist"), p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "<string>/usr/local/bin/battnotify</string>")
	assert.Contains(t, s, "<string>daemon</string>")
	assert.Contains(t, s, "<string>--always-allow-non-root-access</string>")
	assert.NotContains(t, s, "__EXTRA_ARGS__")

	assert.Equal(t, []string{"/bin/launchctl load " + p}, rec.calls)
}

func TestInstallLinux(t *testing.T) {
	rec := &recorder{}
	i := &Installer{GOOS: "linux", Root: t.TempDir(), Run: rec.run}

	require.NoError(t, i.Install("/usr/bin/battnotify", nil))

	p, _ := i.UnitPath()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "ExecStart=/usr/bin/battnotify daemon --log-level=info\n")
	assert.Equal(t, []string{
		"systemctl daemon-reload",
		"systemctl enable --now battnotify.service",
	}, rec.calls)
}

func TestInstallUnsupported(t *testing.T) {
	i := &Installer{GOOS: "windows", Root: t.TempDir(), Run: (&recorder{}).run}
	assert.Error(t, i.Install("/bin/battnotify", nil))
}

func TestInstallLoadFailure(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	i := &Installer{GOOS: "darwin", Root: t.TempDir(), Run: rec.run}
	err := i.Install("/bin/battnotify", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestUninstall(t *testing.T) {
	rec := &recorder{}
	i := &Installer{GOOS: "linux", Root: t.TempDir(), Run: rec.run}
	require.NoError(t, i.Install("/usr/bin/battnotify", nil))
	rec.calls = nil

	require.NoError(t, i.Uninstall())
	p, _ := i.UnitPath()
	_, err := os.Stat(p)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, []string{
		"systemctl disable --now battnotify.service",
		"systemctl daemon-reload",
	}, rec.calls)

	// Second uninstall finds nothing to remove.
	require.NoError(t, i.Uninstall())
}

func TestRenderPlistEscapes(t *testing.T) {
	s := renderPlist("/Apps/a&b/battnotify", []string{"--config=<x>"})
	assert.Contains(t, s, "/Apps/a&amp;b/battnotify")
	assert.Contains(t, s, "--config=&lt;x&gt;")
}
