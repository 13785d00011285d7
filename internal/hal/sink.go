package hal

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/nvoss/lighthald/internal/metrics"
)

// Sink accepts ASCII-integer writes into named control files. The
// production implementation writes to sysfs; tests substitute an
// in-memory fake.
type Sink interface {
	// WriteInt formats value as decimal ASCII followed by a newline and
	// writes it to path. A short write is reported as io.ErrShortWrite.
	WriteInt(path string, value int) error
}

// sysfsSink writes to kernel-exposed LED control files.
type sysfsSink struct {
	logger   *slog.Logger
	warnOnce sync.Once
}

// NewSysfsSink returns a Sink bound to the real control files.
func NewSysfsSink(logger *slog.Logger) Sink {
	return &sysfsSink{logger: logger}
}

// WriteInt opens path read-write, writes the value and closes the file.
// The first open failure is logged; subsequent open failures on any path
// are silent to avoid flooding the journal when a driver is missing.
func (s *sysfsSink) WriteInt(path string, value int) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		s.warnOnce.Do(func() {
			s.logger.Warn("Control file open failed, suppressing further open warnings",
				"path", path, "error", err)
		})
		metrics.ControlWriteFailures.WithLabelValues(path).Inc()
		return err
	}
	defer f.Close()

	buf := strconv.AppendInt(make([]byte, 0, 16), int64(value), 10)
	buf = append(buf, '\n')

	n, err := f.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		metrics.ControlWriteFailures.WithLabelValues(path).Inc()
		return err
	}

	metrics.ControlWrites.WithLabelValues(path).Inc()
	return nil
}

// NopSink discards all writes. Used on boards without the expected LED
// class devices so callers still get success semantics.
type NopSink struct {
	Logger *slog.Logger
}

// WriteInt logs the request at debug level and reports success.
func (n NopSink) WriteInt(path string, value int) error {
	if n.Logger != nil {
		n.Logger.Debug("LED control not available, dropping write",
			"path", path, "value", value)
	}
	return nil
}
