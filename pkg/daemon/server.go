package daemon

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/events"
	"github.com/charlie0129/battnotify/pkg/monitor"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
)

// BatteryInfoReader reads detailed battery information.
type BatteryInfoReader interface {
	Info() (*powerinfo.Battery, error)
}

// Server serves the HTTP API.
type Server struct {
	conf    config.Config
	monitor *monitor.Monitor
	battery BatteryInfoReader
	hub     *events.EventHub
	now     func() time.Time
}

// NewServer returns a Server.
func NewServer(conf config.Config, mon *monitor.Monitor, battery BatteryInfoReader, hub *events.EventHub) *Server {
	return &Server{
		conf:    conf,
		monitor: mon,
		battery: battery,
		hub:     hub,
		now:     time.Now,
	}
}

// Router returns the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))

	router.GET("/config", s.getConfig)
	router.GET("/thresholds", s.getThresholds)
	router.PUT("/warning-level", s.setWarningLevel)
	router.PUT("/critical-level", s.setCriticalLevel)
	router.PUT("/alert-every-tick", s.setAlertEveryTick)
	router.PUT("/warning-notify", s.setWarningNotify)
	router.PUT("/full-notify", s.setFullNotify)
	router.PUT("/sticky", s.setSticky)
	router.PUT("/alert-time", s.setAlertTime)
	router.GET("/status", s.getStatus)
	router.GET("/battery-info", s.getBatteryInfo)
	router.GET("/health", s.getHealth)
	router.DELETE("/health", s.resetHealth)
	router.GET("/events", s.streamEvents)
	router.GET("/version", getVersion)

	return router
}
