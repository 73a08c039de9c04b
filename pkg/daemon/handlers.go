package daemon

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/alertwindow"
	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
	"github.com/charlie0129/battnotify/pkg/version"
)

func abort(c *gin.Context, code int, err error) {
	c.IndentedJSON(code, err.Error())
	_ = c.AbortWithError(code, err)
}

func (s *Server) save(c *gin.Context) bool {
	if err := s.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		abort(c, http.StatusInternalServerError, err)
		return false
	}
	return true
}

func (s *Server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func (s *Server) getThresholds(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.conf.Thresholds())
}

func bindLevel(c *gin.Context, name string) (int, bool) {
	var l int
	if err := c.BindJSON(&l); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		return 0, false
	}

	if l < 1 || l > 100 {
		abort(c, http.StatusBadRequest, fmt.Errorf("%s level must be between 1 and 100, got %d", name, l))
		return 0, false
	}

	return l, true
}

func (s *Server) setWarningLevel(c *gin.Context) {
	l, ok := bindLevel(c, "warning")
	if !ok {
		return
	}

	t := s.conf.Thresholds()
	t.WarningLevel = l
	if err := t.Validate(); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	s.conf.SetWarningLevel(l)
	if !s.save(c) {
		return
	}

	logrus.Infof("set warning level to %d", l)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set warning level to %d%%", l))
}

func (s *Server) setCriticalLevel(c *gin.Context) {
	l, ok := bindLevel(c, "critical")
	if !ok {
		return
	}

	t := s.conf.Thresholds()
	t.CriticalLevel = l
	if err := t.Validate(); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	s.conf.SetCriticalLevel(l)
	if !s.save(c) {
		return
	}

	logrus.Infof("set critical level to %d", l)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set critical level to %d%%", l))
}

// boolSetter builds a handler for a boolean setting.
func (s *Server) boolSetter(name string, set func(bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var b bool
		if err := c.BindJSON(&b); err != nil {
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			return
		}

		set(b)
		if !s.save(c) {
			return
		}

		logrus.Infof("set %s to %t", name, b)

		c.IndentedJSON(http.StatusCreated, "ok")
	}
}

func (s *Server) setAlertEveryTick(c *gin.Context) {
	s.boolSetter("alert every tick", s.conf.SetAlertEveryTick)(c)
}

func (s *Server) setWarningNotify(c *gin.Context) {
	s.boolSetter("warning notification", s.conf.SetWarningEnabled)(c)
}

func (s *Server) setFullNotify(c *gin.Context) {
	s.boolSetter("full notification", s.conf.SetFullNotifyEnabled)(c)
}

func (s *Server) setSticky(c *gin.Context) {
	s.boolSetter("sticky notifications", s.conf.SetStickyNotifications)(c)
}

func (s *Server) setAlertTime(c *gin.Context) {
	var at config.AlertTime
	if err := c.BindJSON(&at); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		return
	}

	msg := "alert time limit disabled"
	if at.Enabled {
		w, err := alertwindow.Parse(at.Start, at.End)
		if err != nil {
			abort(c, http.StatusBadRequest, err)
			return
		}
		at.Start, at.End = w.Start.String(), w.End.String()
		msg = fmt.Sprintf("alerts are audible from %s to %s", at.Start, at.End)
	}

	s.conf.SetAlertTime(at.Enabled, at.Start, at.End)
	if !s.save(c) {
		return
	}

	logrus.WithFields(logrus.Fields{
		"enabled": at.Enabled,
		"start":   at.Start,
		"end":     at.End,
	}).Info("set alert time")

	c.IndentedJSON(http.StatusCreated, msg)
}

func (s *Server) getStatus(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.monitor.Status(s.now()))
}

func (s *Server) getBatteryInfo(c *gin.Context) {
	bat, err := s.battery.Info()
	if err != nil {
		logrus.Errorf("getBatteryInfo failed: %v", err)
		code := http.StatusInternalServerError
		if errors.Is(err, powerinfo.ErrNoBattery) {
			code = http.StatusNotFound
		}
		abort(c, code, err)
		return
	}

	c.IndentedJSON(http.StatusOK, bat)
}

func (s *Server) getHealth(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.monitor.HealthSummary(s.now()))
}

func (s *Server) resetHealth(c *gin.Context) {
	if err := s.monitor.ResetHealth(); err != nil {
		logrus.Errorf("resetHealth failed: %v", err)
		abort(c, http.StatusInternalServerError, err)
		return
	}

	logrus.Info("health history reset")

	c.IndentedJSON(http.StatusOK, "health history reset")
}

func (s *Server) streamEvents(c *gin.Context) {
	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
