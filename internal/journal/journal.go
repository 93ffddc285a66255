// Package journal appends lot events to a plain-text log file.
package journal

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/David0179/DS-Parking-Mngt-System/internal/logging"
	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
)

const timestampFormat = "2006-01-02 15:04:05"

// lineFormatter writes "[YYYY-MM-DD HH:MM:SS] message" lines.
type lineFormatter struct{}

func (lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	b.WriteString(entry.Time.Format(timestampFormat))
	b.WriteString("] ")
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Journal is a parking.Observer. A zero-value or disabled Journal drops
// events silently.
type Journal struct {
	log    *logrus.Logger
	closer io.Closer
}

// Open appends to path, creating it if needed. An empty path, or a file
// that cannot be opened, yields a disabled journal; the error is returned
// so the caller can report it, but the journal is always usable.
func Open(path string) (*Journal, error) {
	if path == "" {
		return &Journal{}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &Journal{}, err
	}

	j := New(f)
	j.closer = f
	return j, nil
}

// New writes journal lines to w.
func New(w io.Writer) *Journal {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(lineFormatter{})
	log.SetLevel(logrus.InfoLevel)
	return &Journal{log: log}
}

func (j *Journal) Enabled() bool {
	return j != nil && j.log != nil
}

func (j *Journal) Observe(e parking.Event) {
	if !j.Enabled() {
		return
	}

	entry := j.log.WithTime(e.At)
	if e.Kind == parking.EventCancelled {
		entry.Warn(e.String())
		return
	}
	entry.Info(e.String())
}

func (j *Journal) Close() error {
	if j == nil || j.closer == nil {
		return nil
	}
	if err := j.closer.Close(); err != nil {
		logging.Warn(context.Background(), "closing journal failed", "error", err)
		return err
	}
	return nil
}
