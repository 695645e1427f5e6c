package pipelinectx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberCachesOnce(t *testing.T) {
	sh := NewStateHolder()
	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	v1, err := sh.Remember("k", compute)
	require.NoError(t, err)
	v2, err := sh.Remember("k", compute)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, calls)
}

func TestRememberPropagatesError(t *testing.T) {
	sh := NewStateHolder()
	wantErr := errors.New("boom")
	_, err := sh.Remember("k", func() (interface{}, error) { return nil, wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestInvalidateRecomputes(t *testing.T) {
	sh := NewStateHolder()
	calls := 0
	compute := func() (interface{}, error) { calls++; return calls, nil }

	_, _ = sh.Remember("k", compute)
	sh.Invalidate()
	_, _ = sh.Remember("k", compute)

	assert.Equal(t, 2, calls)
}

func TestProvideConsumeScoping(t *testing.T) {
	sh := NewStateHolder()
	assert.Nil(t, sh.Consume("ctx"))

	sh.Provide("ctx", "outer", func() {
		assert.Equal(t, "outer", sh.Consume("ctx"))
		sh.Provide("ctx", "inner", func() {
			assert.Equal(t, "inner", sh.Consume("ctx"))
		})
		assert.Equal(t, "outer", sh.Consume("ctx"))
	})

	assert.Nil(t, sh.Consume("ctx"))
}
