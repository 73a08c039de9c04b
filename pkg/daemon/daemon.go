package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/events"
	"github.com/charlie0129/battnotify/pkg/health"
	"github.com/charlie0129/battnotify/pkg/monitor"
	"github.com/charlie0129/battnotify/pkg/notifier"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
)

// Options configures Run.
type Options struct {
	ConfigPath      string
	UnixSocketPath  string
	HealthStatePath string
	AllowNonRoot    bool
}

// newHTTPServer returns a server whose request contexts are cancelled once
// Shutdown is called, so open event streams end instead of holding the
// shutdown until its timeout.
func newHTTPServer(handler http.Handler) *http.Server {
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelRequests)
	return srv
}

func Run(opts Options) error {
	conf, err := config.NewFile(opts.ConfigPath)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	hub := events.NewEventHub()
	source := powerinfo.NewSystemSource()
	n := notifier.Multi{
		&notifier.LogNotifier{},
		&notifier.HubNotifier{Hub: hub},
		notifier.When(conf.DesktopNotifications, notifier.NewDesktopNotifier()),
	}

	mon := monitor.New(conf, source, n, health.NewFileStore(opts.HealthStatePath), hub)
	if err := mon.Load(); err != nil {
		logrus.Errorf("failed to load health state, starting fresh: %v", err)
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
		}
	}()

	srv := newHTTPServer(NewServer(conf, mon, source, hub).Router())

	// A stale socket from a crashed daemon blocks Listen.
	if err := os.Remove(opts.UnixSocketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", opts.UnixSocketPath)
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", opts.UnixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", opts.UnixSocketPath)
	}

	if conf.AllowNonRootAccess() || opts.AllowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", opts.UnixSocketPath)
		err = os.Chmod(opts.UnixSocketPath, 0777)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to change permissions of %s", opts.UnixSocketPath)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	ctx, stop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		logrus.Debugln("monitor loop starts")
		mon.Run(ctx)
		logrus.Debugln("monitor loop stopped")
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("stopping monitor loop")
	stop()
	<-loopDone

	if err := mon.SaveHealth(); err != nil {
		logrus.Errorf("failed to save health state before exiting: %v", err)
	}

	if err := source.Close(); err != nil {
		logrus.Errorf("failed to close battery source: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
