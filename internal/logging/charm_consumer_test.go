package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharmConsumerWritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCharmConsumer(&buf, "debug")
	require.NoError(t, err)

	e := &MutableLogEvent{
		Level:         LevelInfo,
		LoggerName:    "svc",
		Message:       "hello world",
		CorrelationID: "corr-1",
		Context:       map[string]interface{}{"stage": "build"},
	}
	c.OnEvent(e)

	out := buf.String()
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "corr-1")
	assert.Contains(t, out, "stage")
}

func TestCharmConsumerRejectsInvalidLevel(t *testing.T) {
	_, err := NewCharmConsumer(&bytes.Buffer{}, "not-a-level")
	assert.Error(t, err)
}

func TestCharmConsumerOnErrorDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCharmConsumer(&buf, "")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		c.OnError(&MutableLogEvent{LoggerName: "svc"}, errors.New("boom"))
	})
	assert.Contains(t, buf.String(), "boom")
}
