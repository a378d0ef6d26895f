package utils

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTxReference(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("abc", GetTxReference("abc", ""))
	assert.Equal("", GetTxReference("", "https://stellar.expert/explorer/public/"))
	assert.Equal("https://stellar.expert/explorer/public/tx/abc", GetTxReference("abc", "https://stellar.expert/explorer/public/"))
}

func TestPrettyTextLogHandlerHidesTopLevelFields(t *testing.T) {
	assert := assert.New(t)

	buffer := bytes.Buffer{}
	logger := slog.New(NewPrettyTextLogHandler(&buffer, PrettyHandlerOptions{NoColor: true}))
	logger.Info("executing batch", "phase", "executing_batches", "batch_id", "1/3")
	logger.Debug("not printed")

	output := buffer.String()
	assert.Contains(output, "[INFO] executing batch")
	assert.Contains(output, "batch_id=1/3")
	assert.NotContains(output, "phase=")
	assert.NotContains(output, "not printed")
}

func TestPrettyTextLogHandlerGroups(t *testing.T) {
	assert := assert.New(t)

	buffer := bytes.Buffer{}
	logger := slog.New(NewPrettyTextLogHandler(&buffer, PrettyHandlerOptions{NoColor: true})).WithGroup("run").With("id", "r1")
	logger.Warn("terminated", "phase", "visible in group")

	output := buffer.String()
	assert.Contains(output, "[WARN] terminated")
	assert.Contains(output, "run.id=r1")
	assert.Contains(output, "run.phase=visible in group")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestMultiWriterWritesToAll(t *testing.T) {
	assert := assert.New(t)

	first, second := bytes.Buffer{}, bytes.Buffer{}
	n, err := NewMultiWriter(&first, failingWriter{}, &second).Write([]byte("line"))
	assert.Equal(4, n)
	assert.Error(err)
	assert.Equal("line", first.String())
	assert.Equal("line", second.String())
}

func TestProtectedSectionSignal(t *testing.T) {
	assert := assert.New(t)

	section := NewProtectedSection("test")
	defer section.Close()
	assert.False(section.Signaled())
	section.Signal()
	assert.True(section.Signaled())
}
