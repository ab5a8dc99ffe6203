package css

import (
	"bytes"
	"testing"

	"github.com/lukehoban/csscore/log"
	"github.com/stretchr/testify/assert"
)

func TestMultiListenerFansOutInOrder(t *testing.T) {
	var order []string
	cfg := NewConfig()
	cfg.AddListener(ErrorListenerFunc(func(e ErrorEvent) { order = append(order, "first") }))
	cfg.AddListener(ErrorListenerFunc(func(e ErrorEvent) { order = append(order, "second") }))

	cfg.report(InvalidToken, Position{Line: 1, Col: 1})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestConfigAddListenerIgnoresNil(t *testing.T) {
	cfg := NewConfig()
	cfg.AddListener(nil)
	cfg.report(InvalidToken, Position{})
}

func TestNewLogListenerWritesWarnLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, log.WarnLevel)
	listener := NewLogListener(logger)
	listener.OnError(ErrorEvent{Code: ValueMissing, Pos: Position{Line: 3, Col: 4}})

	assert.Contains(t, buf.String(), "ValueMissing")
	assert.Contains(t, buf.String(), "[WARN]")
}

func TestNewLogListenerDefaultsOnNilLogger(t *testing.T) {
	listener := NewLogListener(nil)
	assert.NotPanics(t, func() {
		listener.OnError(ErrorEvent{Code: InvalidToken, Pos: Position{}})
	})
}

func TestErrorCodeStringUnknown(t *testing.T) {
	assert.Equal(t, "ErrorCode(?)", ErrorCode(999).String())
}
