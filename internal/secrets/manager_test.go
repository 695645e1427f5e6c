package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge/core/internal/environment"
	"github.com/pipeforge/core/internal/pipeline"
)

func TestBindUsernamePasswordPublishesEnv(t *testing.T) {
	env := environment.New(nil)
	m := NewManager(env)

	m.Bind("DB", UsernamePassword("admin", "s3cr3t"))

	assert.Equal(t, "admin", env.Get("DB_USERNAME", ""))
	assert.Equal(t, "s3cr3t", env.Get("DB_PASSWORD", ""))

	m.Unbind("DB")

	assert.Equal(t, "", env.Get("DB_USERNAME", ""))
	assert.Equal(t, "", env.Get("DB_PASSWORD", ""))
}

func TestBindPlainText(t *testing.T) {
	env := environment.New(nil)
	m := NewManager(env)

	m.Bind("TOKEN", PlainText("abc123"))
	assert.Equal(t, "abc123", env.Get("TOKEN", ""))
}

func TestUnbindIdempotent(t *testing.T) {
	env := environment.New(nil)
	m := NewManager(env)
	m.Bind("TOKEN", PlainText("abc"))

	m.Unbind("TOKEN")
	assert.NotPanics(t, func() { m.Unbind("TOKEN") })
}

func TestGetRoundTrip(t *testing.T) {
	env := environment.New(nil)
	m := NewManager(env)
	s := AwsCredentials("AKIA...", "secret")
	m.Bind("CLOUD", s)

	got, err := m.Get("CLOUD", KindAwsCredentials)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestGetTypeMismatch(t *testing.T) {
	env := environment.New(nil)
	m := NewManager(env)
	m.Bind("TOKEN", PlainText("abc"))

	_, err := m.Get("TOKEN", KindUsernamePassword)
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeTypeMismatch, engErr.Code)
	assert.Equal(t, "UsernamePassword", engErr.Context["requested"])
	assert.Equal(t, "PlainText", engErr.Context["actual"])
}

func TestGetMissing(t *testing.T) {
	env := environment.New(nil)
	m := NewManager(env)

	_, err := m.Get("NOPE", KindPlainText)
	require.Error(t, err)
	var engErr *pipeline.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, pipeline.ErrCodeMissingSecret, engErr.Code)
}

func TestBindUnbindLeavesEnvironmentUnchanged(t *testing.T) {
	env := environment.New(map[string]string{"BASE": "1"})
	before := env.Snapshot()

	m := NewManager(env)
	m.Bind("X", UsernamePassword("u", "p"))
	m.Unbind("X")

	after := env.Snapshot()
	assert.Equal(t, before, after)
}

func TestListSorted(t *testing.T) {
	env := environment.New(nil)
	m := NewManager(env)
	m.Bind("B", PlainText("1"))
	m.Bind("A", PlainText("2"))

	assert.Equal(t, []string{"A", "B"}, m.List())
}
