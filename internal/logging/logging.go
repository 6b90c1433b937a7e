// Package logging configures the process wide logrus logger.
package logging

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// sessionHook stamps every entry with the id of the current run.
type sessionHook struct {
	id string
}

func (h sessionHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h sessionHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["session"]; !ok {
		entry.Data["session"] = h.id
	}
	return nil
}

// Configure sets the level ("debug", "info", "warn", "error"; default
// "info") and the format ("text" or "json"; default "text") of the standard
// logrus logger, directs it to out and returns the session id.
func Configure(level, format string, out io.Writer) string {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if out != nil {
		logrus.SetOutput(out)
	}

	id := uuid.NewString()
	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.AddHook(sessionHook{id: id})

	return id
}
