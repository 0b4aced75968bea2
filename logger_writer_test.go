package libemit

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func fixedWriterLogger(buf *bytes.Buffer) Logger {
	l := NewWriterLogger(buf).(*writerLogger)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }
	return l
}

func TestWriterLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedWriterLogger(&buf)

	logger.Infof("hello %s", "world")
	logger.WithField("event", "foo").WithField("count", 3).Warn("too many")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"[2024-03-01 12:30:00] INFO: hello world",
		"[2024-03-01 12:30:00] WARN [count=3, event=foo]: too many",
	}, lines)
}

func TestWriterLoggerWithFieldDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := fixedWriterLogger(&buf)

	base.WithField("a", 1).Debug("scoped")
	base.Error("plain")

	assert.Contains(t, buf.String(), "DEBUG [a=1]: scoped")
	assert.Contains(t, buf.String(), "ERROR: plain")
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	ee := New(WithLogger(NewLogrusLogger(l)), WithMaxListeners(1))
	ee.AddListener(Name("foo"), noop())

	out := buf.String()
	assert.Contains(t, out, `level=debug msg="event defined" event=foo`)
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "possible listener leak detected")
	assert.Contains(t, out, "max=1")
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()

	assert.NotPanics(t, func() {
		l.WithField("a", 1).Debugf("x %d", 1)
		l.Info("x")
		l.Errorf("x")
	})
	assert.NotNil(t, NewLogrusLogger(nil))
}
