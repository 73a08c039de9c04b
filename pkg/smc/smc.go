//go:build darwin

package smc

import (
	"fmt"
	"sync"

	"github.com/charlie0129/gosmc"
	"github.com/sirupsen/logrus"
)

// AppleSMC is a read-only, lazily opened wrapper of gosmc.Connection. It is
// safe for concurrent use.
type AppleSMC struct {
	mu     sync.Mutex
	conn   gosmc.Connection
	opened bool
}

// New returns a new AppleSMC. The connection is opened on first read.
func New() *AppleSMC {
	return &AppleSMC{
		conn: gosmc.New(),
	}
}

// NewMock returns an already opened mock AppleSMC holding values.
func NewMock(values map[string][]byte) *AppleSMC {
	conn := gosmc.NewMockConnection()

	for key, value := range values {
		if err := conn.Write(key, value); err != nil {
			panic(err)
		}
	}

	return &AppleSMC{
		conn:   conn,
		opened: true,
	}
}

// Close closes the connection if it was opened.
func (c *AppleSMC) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.opened {
		return nil
	}
	c.opened = false
	return c.conn.Close()
}

// Read reads the raw value of key, opening the connection if needed.
func (c *AppleSMC) Read(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.opened {
		if err := c.conn.Open(); err != nil {
			return nil, fmt.Errorf("failed to open SMC: %w", err)
		}
		c.opened = true
	}

	v, err := c.conn.Read(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read SMC key %s: %w", key, err)
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
		"val": v.Bytes,
	}).Trace("read from SMC")

	return v.Bytes, nil
}
