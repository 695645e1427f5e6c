package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContextInjectsFieldsForBlockExtent(t *testing.T) {
	base := context.Background()
	var seen map[string]interface{}

	WithContext(base, map[string]interface{}{"request_id": "r1"}, func(ctx context.Context) {
		seen = contextFields(ctx)
	})

	assert.Equal(t, "r1", seen["request_id"])
	assert.Nil(t, contextFields(base))
}

func TestWithContextMergesNestedScopes(t *testing.T) {
	base := context.Background()
	var inner map[string]interface{}

	WithContext(base, map[string]interface{}{"a": 1}, func(outer context.Context) {
		WithContext(outer, map[string]interface{}{"b": 2}, func(ctx context.Context) {
			inner = contextFields(ctx)
		})
	})

	assert.Equal(t, 1, inner["a"])
	assert.Equal(t, 2, inner["b"])
}

func TestWithContextInnerScopeOverridesOuter(t *testing.T) {
	base := context.Background()
	var inner map[string]interface{}

	WithContext(base, map[string]interface{}{"a": 1}, func(outer context.Context) {
		WithContext(outer, map[string]interface{}{"a": 2}, func(ctx context.Context) {
			inner = contextFields(ctx)
		})
	})

	assert.Equal(t, 2, inner["a"])
}
