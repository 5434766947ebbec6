package peripheral

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"
)

type logRecord struct {
	level   commonlog.Level
	message string
}

// recordingBackend keeps every message sent to it.
type recordingBackend struct {
	records []logRecord
}

func (b *recordingBackend) Configure(verbosity int, path *string) {}

func (b *recordingBackend) GetWriter() io.Writer { return io.Discard }

func (b *recordingBackend) NewMessage(level commonlog.Level, depth int, name ...string) commonlog.Message {
	return &recordedMessage{backend: b, level: level}
}

func (b *recordingBackend) AllowLevel(level commonlog.Level, name ...string) bool { return true }

func (b *recordingBackend) SetMaxLevel(level commonlog.Level, name ...string) {}

func (b *recordingBackend) GetMaxLevel(name ...string) commonlog.Level { return commonlog.Debug }

type recordedMessage struct {
	backend *recordingBackend
	level   commonlog.Level
	text    string
}

func (m *recordedMessage) Set(key string, value any) commonlog.Message {
	if key == "_message" {
		m.text = fmt.Sprint(value)
	}
	return m
}

func (m *recordedMessage) Send() {
	m.backend.records = append(m.backend.records, logRecord{level: m.level, message: m.text})
}

func recordLogs(t *testing.T) *recordingBackend {
	t.Helper()
	backend := &recordingBackend{}
	commonlog.SetBackend(backend)
	t.Cleanup(func() { commonlog.SetBackend(nil) })
	return backend
}

func TestMergesAreLoggedAtNotice(t *testing.T) {
	logs := recordLogs(t)
	e := newTestExtractor(t)

	_, err := e.ExtractClass(filepath.Join(commonDir, "monitor", "MonitorPeripheral.java"))
	require.NoError(t, err)

	want := []logRecord{
		{commonlog.Notice, "merged method 'write' from projects/core/src/main/java/dan200/computercraft/core/apis/TermMethods.java"},
		{commonlog.Notice, "merged 4 methods from parent TermMethods into MonitorPeripheral"},
	}
	for _, r := range want {
		assert.Contains(t, logs.records, r)
	}

	// the default verbosity shows notices
	assert.Equal(t, commonlog.Notice, commonlog.VerbosityToMaxLevel(0))
}
