// Package logrus adapts github.com/sirupsen/logrus into the log.Log
// interface.
package logrus

import (
	"fmt"
	"sync/atomic"

	logrus "github.com/sirupsen/logrus"

	"github.com/agatazaleska/foldertree/telemetry/log"
)

type Logrus struct {
	Logger  *logrus.Logger
	Enable  log.Topics
	counter uint64
}

func (l *Logrus) Enabled(topics log.Topics) bool {
	return (l.Enable & topics) != 0
}

func (l *Logrus) Call(name string, args log.M) string {
	if !l.Enabled(log.TopicCall) {
		return ""
	}
	cookie := fmt.Sprintf("%x", atomic.AddUint64(&l.counter, 1))
	l.Logger.WithFields(logrus.Fields{
		"name":   name,
		"cookie": cookie,
	}).WithFields(args).Info("call")
	return cookie
}

func (l *Logrus) Log(topics log.Topics, msg string) {
	if !l.Enabled(topics) {
		return
	}
	if topics&log.TopicError != 0 {
		l.Logger.Warn(msg)
		return
	}
	l.Logger.Info(msg)
}

func (l *Logrus) Logf(topics log.Topics, msg string, args ...any) {
	if !l.Enabled(topics) {
		return
	}
	if topics&log.TopicError != 0 {
		l.Logger.Warnf(msg, args...)
		return
	}
	l.Logger.Infof(msg, args...)
}

func (l *Logrus) Return(name, cookie string, rets log.M) {
	if !l.Enabled(log.TopicCall) {
		return
	}
	l.Logger.WithFields(logrus.Fields{
		"name":   name,
		"cookie": cookie,
	}).WithFields(rets).Info("return")
}

var _ log.Log = (*Logrus)(nil)

// Default returns a Logrus logger with all topics enabled.
func Default() *Logrus {
	return &Logrus{
		Logger: logrus.New(),
		Enable: log.AllTopics,
	}
}
